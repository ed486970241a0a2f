package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/ui"
)

var (
	backgroundColor = rl.Color{R: 15, G: 18, B: 22, A: 255}
	gridColor       = rl.Color{R: 35, G: 42, B: 50, A: 255}
	foodColor       = rl.Color{R: 50, G: 255, B: 50, A: 255}
	birdColor       = rl.White
	coneFillColor   = rl.Color{R: 255, G: 255, B: 0, A: 28}
	coneEdgeColor   = rl.Color{R: 255, G: 255, B: 0, A: 90}
)

// Draw renders one frame: the world through the camera, the HUD, and the
// sidebar. Sidebar results are stashed for the next Update.
func (g *Game) Draw() {
	snap := g.sim.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginScissorMode(0, 0, int32(g.viewportWidth()), int32(g.screenHeight))
	if g.showGrid {
		g.drawGrid()
	}
	g.drawFoods(snap.Foods)
	g.drawBirds(snap)
	rl.EndScissorMode()

	g.drawHUD(snap)
	g.drawTooltip(snap)
	g.drawSidebar(snap)

	rl.EndDrawing()
}

// drawGrid draws world-space lines every 0.1 units, the world border
// included.
func (g *Game) drawGrid() {
	viewH := int32(g.screenHeight)
	viewW := int32(g.viewportWidth())

	for i := 0; i <= 10; i++ {
		w := float32(i) * 0.1

		sx, _ := g.camera.WorldToScreen(w, g.camera.Y)
		if sx >= 0 && sx <= float32(viewW) {
			rl.DrawLine(int32(sx), 0, int32(sx), viewH, gridColor)
		}

		_, sy := g.camera.WorldToScreen(g.camera.X, w)
		if sy >= 0 && sy <= float32(g.screenHeight) {
			rl.DrawLine(0, int32(sy), viewW, int32(sy), gridColor)
		}
	}
}

func (g *Game) drawFoods(foods []sim.Vec2) {
	radius := g.cfg.World.FoodSize * g.camera.Scale()
	if radius < 2 {
		radius = 2
	}

	for _, f := range foods {
		if !g.camera.IsVisible(f.X, f.Y, g.cfg.World.FoodSize) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(f.X, f.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, foodColor)
		for _, ghost := range g.camera.GhostPositions(f.X, f.Y, g.cfg.World.FoodSize) {
			rl.DrawCircleV(rl.Vector2{X: ghost.X, Y: ghost.Y}, radius, foodColor)
		}
	}
}

func (g *Game) drawBirds(snap sim.Snapshot) {
	scale := g.camera.Scale()
	size := g.cfg.World.BirdSize
	radius := size * scale
	if radius < 3 {
		radius = 3
	}

	for i := range snap.Animals {
		a := &snap.Animals[i]
		if !g.camera.IsVisible(a.Position.X, a.Position.Y, g.cfg.BrainEye.FovRange) {
			continue
		}

		sx, sy := g.camera.WorldToScreen(a.Position.X, a.Position.Y)
		selected := i == g.selected

		if g.showVision || selected {
			g.drawVisionCone(sx, sy, a, selected)
		}

		color := birdColor
		if selected {
			color = rl.Gold
		}
		drawOrientedTriangle(sx, sy, a.Rotation, radius, color)
		for _, ghost := range g.camera.GhostPositions(a.Position.X, a.Position.Y, size) {
			drawOrientedTriangle(ghost.X, ghost.Y, a.Rotation, radius, color)
		}

		if selected {
			g.drawSelectionIndicator(sx, sy, radius)
		}
	}
}

// drawVisionCone shades the eye's field of view around the bird's heading.
// For the selected bird the cell boundaries are drawn too, shaded by how
// much each cell currently sees.
func (g *Game) drawVisionCone(sx, sy float32, a *sim.AnimalState, selected bool) {
	coneRadius := g.cfg.BrainEye.FovRange * g.camera.Scale()
	half := g.cfg.Derived.FovAngleRad / 2
	from := float64(a.Rotation - half)
	to := float64(a.Rotation + half)

	fill := coneFillColor
	edge := coneEdgeColor
	if selected {
		fill.A = 60
		edge.A = 160
	}

	center := rl.Vector2{X: sx, Y: sy}

	const segments = 24
	prev := conePoint(center, from, coneRadius)
	for s := 1; s <= segments; s++ {
		angle := from + (to-from)*float64(s)/segments
		next := conePoint(center, angle, coneRadius)
		rl.DrawTriangle(center, next, prev, fill)
		rl.DrawLineV(prev, next, edge)
		prev = next
	}
	rl.DrawLineV(center, conePoint(center, from, coneRadius), edge)
	rl.DrawLineV(center, conePoint(center, to, coneRadius), edge)

	if !selected {
		return
	}

	// One ray per cell boundary, plus a fill per cell scaled by activation.
	n := len(a.Vision)
	if n == 0 {
		return
	}
	cellAngle := (to - from) / float64(n)
	for c := 0; c < n; c++ {
		v := a.Vision[c]
		if v > 1 {
			v = 1
		}
		if v > 0 {
			cellFill := rl.Color{R: 255, G: 200, B: 50, A: uint8(30 + v*120)}
			cFrom := from + cellAngle*float64(c)
			cPrev := conePoint(center, cFrom, coneRadius)
			for s := 1; s <= 4; s++ {
				next := conePoint(center, cFrom+cellAngle*float64(s)/4, coneRadius)
				rl.DrawTriangle(center, next, cPrev, cellFill)
				cPrev = next
			}
		}
		if c > 0 {
			boundary := conePoint(center, from+cellAngle*float64(c), coneRadius)
			rl.DrawLineV(center, boundary, rl.Color{R: 255, G: 255, B: 0, A: 50})
		}
	}
}

func (g *Game) drawSelectionIndicator(sx, sy, radius float32) {
	pulse := float32(math.Sin(rl.GetTime()*4))*0.3 + 0.7
	alpha := uint8(255 * pulse)
	rl.DrawCircleLines(int32(sx), int32(sy), radius+5, rl.Color{R: 255, G: 255, B: 255, A: alpha})
	rl.DrawCircleLines(int32(sx), int32(sy), radius+6, rl.Color{R: 255, G: 255, B: 255, A: alpha / 2})
}

func (g *Game) drawHUD(snap sim.Snapshot) {
	g.hud.Draw(ui.HUDData{
		Generation:       snap.Generation,
		Age:              snap.Age,
		GenerationLength: g.cfg.Sim.GenerationLength,
		Birds:            len(snap.Animals),
		Foods:            len(snap.Foods),
		FPS:              rl.GetFPS(),
		SimSpeed:         g.simSpeed,
		Paused:           g.paused,
	})
	g.hud.DrawControls(int32(g.viewportWidth()), int32(g.screenHeight),
		"SPACE: Pause | < >: Speed | Click: Select / Drop food | Arrows: Pan | Wheel: Zoom | HOME: Reset view | V: Vision | G: Grid | F11: Fullscreen")
}

// drawTooltip shows a summary of the bird under the cursor.
func (g *Game) drawTooltip(snap sim.Snapshot) {
	mouse := rl.GetMousePosition()
	if mouse.X >= g.viewportWidth() {
		return
	}
	idx, ok := g.pickBird(mouse.X, mouse.Y)
	if !ok || idx >= len(snap.Animals) {
		return
	}
	a := &snap.Animals[idx]

	lines := []string{
		fmt.Sprintf("Bird %d", idx),
		fmt.Sprintf("Eaten: %d", a.FoodEaten),
		fmt.Sprintf("Speed: %.4f", a.Speed),
		fmt.Sprintf("Heading: %.0f deg", float64(a.Rotation)*180/math.Pi),
		fmt.Sprintf("Pos: %.3f, %.3f", a.Position.X, a.Position.Y),
	}

	const fontSize = 14
	const padding = 8
	const lineHeight = 16

	maxWidth := int32(0)
	for _, line := range lines {
		if width := rl.MeasureText(line, fontSize); width > maxWidth {
			maxWidth = width
		}
	}

	tooltipWidth := maxWidth + padding*2
	tooltipHeight := int32(len(lines)*lineHeight + padding*2)

	tooltipX := int32(mouse.X) + 15
	tooltipY := int32(mouse.Y) + 15
	if tooltipX+tooltipWidth > int32(g.viewportWidth())-10 {
		tooltipX = int32(mouse.X) - tooltipWidth - 10
	}
	if tooltipY+tooltipHeight > int32(g.screenHeight)-10 {
		tooltipY = int32(mouse.Y) - tooltipHeight - 10
	}

	rl.DrawRectangle(tooltipX, tooltipY, tooltipWidth, tooltipHeight, rl.Color{R: 20, G: 25, B: 30, A: 230})
	rl.DrawRectangleLines(tooltipX, tooltipY, tooltipWidth, tooltipHeight, rl.Color{R: 60, G: 70, B: 80, A: 255})

	for i, line := range lines {
		color := rl.LightGray
		if i == 0 {
			color = rl.White
		}
		rl.DrawText(line, tooltipX+padding, tooltipY+padding+int32(i*lineHeight), fontSize, color)
	}
}

// drawSidebar renders the control panel, the stats panel, and the inspector
// stacked down the right edge.
func (g *Game) drawSidebar(snap sim.Snapshot) {
	state, actions := g.panel.Draw(ui.State{
		Paused:     g.paused,
		SimSpeed:   g.simSpeed,
		ShowVision: g.showVision,
		ShowGrid:   g.showGrid,
		ShowStats:  g.showStats,
	})
	g.pending.state = state
	g.pending.actions = actions
	g.pending.valid = true

	sidebarX := int32(g.screenWidth) - SidebarWidth
	y := g.panel.Bottom()

	if g.showStats {
		g.stats.SetPosition(sidebarX, y)
		g.stats.Draw(g.statsData(snap))
		y += g.stats.Height()
	}

	if g.selected >= 0 && g.selected < len(snap.Animals) {
		g.inspector.SetPosition(sidebarX, y)
		g.inspector.Draw(ui.InspectorData{
			Index:   g.selected,
			Animal:  snap.Animals[g.selected],
			Network: g.selectedNetwork(),
		})
	}
}

func (g *Game) statsData(snap sim.Snapshot) ui.StatsData {
	data := ui.StatsData{Generation: snap.Generation}

	latest, ok := g.history.Latest()
	if !ok {
		return data
	}
	best, _ := g.history.Best()

	data.HasStats = true
	data.Min = latest.MinFitness
	data.Max = latest.MaxFitness
	data.Avg = latest.AvgFitness
	data.Median = latest.MedianFitness
	data.BestEver = best.MaxFitness
	data.MaxSeries = g.history.MaxSeries()
	return data
}

func (g *Game) selectedNetwork() *neural.Network {
	animals := g.sim.World().Animals()
	if g.selected < 0 || g.selected >= len(animals) {
		return nil
	}
	return animals[g.selected].Brain().Network()
}

// drawOrientedTriangle draws a triangle centered at x, y pointing toward
// the heading.
func drawOrientedTriangle(x, y, heading, r float32, color rl.Color) {
	frontX := x + float32(math.Cos(float64(heading)))*r*1.5
	frontY := y + float32(math.Sin(float64(heading)))*r*1.5

	backLeftX := x + float32(math.Cos(float64(heading)+math.Pi*0.8))*r
	backLeftY := y + float32(math.Sin(float64(heading)+math.Pi*0.8))*r

	backRightX := x + float32(math.Cos(float64(heading)-math.Pi*0.8))*r
	backRightY := y + float32(math.Sin(float64(heading)-math.Pi*0.8))*r

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, color)
}

func conePoint(center rl.Vector2, angle float64, radius float32) rl.Vector2 {
	return rl.Vector2{
		X: center.X + float32(math.Cos(angle))*radius,
		Y: center.Y + float32(math.Sin(angle))*radius,
	}
}
