package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.simSpeed = clampSpeed(g.simSpeed * 0.5)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.simSpeed = clampSpeed(g.simSpeed * 2)
	}

	// Overlay toggles
	if rl.IsKeyPressed(rl.KeyV) {
		g.showVision = !g.showVision
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.showGrid = !g.showGrid
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.showStats = !g.showStats
	}

	g.handleCameraInput()
	g.handleMouse()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(g.viewportWidth(), h)
	g.panel.SetPosition(int32(w)-SidebarWidth, 0)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	panSpeed := float32(8.0)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Wheel zooms toward the cursor so the point under it stays put.
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		mouse := rl.GetMousePosition()
		if mouse.X < g.viewportWidth() {
			g.camera.ZoomAt(mouse.X, mouse.Y, 1.0+wheelMove*0.1)
		}
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleMouse picks a bird under the cursor or drops food where the click
// landed. Clicks over the sidebar belong to raygui.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if mouse.X >= g.viewportWidth() {
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	if idx, ok := g.pickBird(mouse.X, mouse.Y); ok {
		g.selected = idx
		return
	}

	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.sim.SpawnFoodAt(wx, wy)
	g.selected = -1
}

// pickBird returns the index of the bird nearest the cursor within the
// pick radius.
func (g *Game) pickBird(mx, my float32) (int, bool) {
	pickRadius := g.cfg.World.BirdSize * 1.5 * g.camera.Scale()
	if pickRadius < 8 {
		pickRadius = 8
	}

	best := -1
	bestDist := pickRadius * pickRadius
	animals := g.sim.World().Animals()
	for i := range animals {
		pos := animals[i].Position()
		sx, sy := g.camera.WorldToScreen(pos.X, pos.Y)
		dx := sx - mx
		dy := sy - my
		if d := dx*dx + dy*dy; d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}

func clampSpeed(v float32) float32 {
	if v < 0.1 {
		return 0.1
	}
	if v > 10 {
		return 10
	}
	return v
}
