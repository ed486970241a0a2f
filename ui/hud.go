package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Generation       int
	Age              int
	GenerationLength int
	Birds            int
	Foods            int
	FPS              int32
	SimSpeed         float32
	Paused           bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Generation %d", data.Generation), 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Birds: %d | Food: %d", data.Birds, data.Foods),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Step: %d / %d | Speed: %.2fx | FPS: %d", data.Age, data.GenerationLength, data.SimSpeed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsData holds data for the fitness statistics panel.
type StatsData struct {
	HasStats   bool
	Generation int
	Min        float32
	Max        float32
	Avg        float32
	Median     float32
	BestEver   float32
	MaxSeries  []float32
}

// StatsPanel renders per-generation fitness statistics and a sparkline of
// the best fitness over time.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width, height int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetPosition updates the panel position.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height in pixels.
func (p *StatsPanel) Height() int32 {
	return p.height
}

// Draw renders the stats panel.
func (p *StatsPanel) Draw(data StatsData) {
	r := p.renderer
	padding := r.Theme.Padding

	r.DrawPanel(p.x, p.y, p.width, p.height)

	x := p.x + padding
	y := p.y + padding

	y = r.DrawSectionHeader(x, y, "Fitness")

	if !data.HasStats {
		rl.DrawText("no completed generations yet", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		return
	}

	y = r.DrawLabelValue(x, y, "Latest", fmt.Sprintf("min %.1f / avg %.1f / max %.1f", data.Min, data.Avg, data.Max))
	y = r.DrawLabelValue(x, y, "Median", fmt.Sprintf("%.1f", data.Median))
	y = r.DrawLabelValue(x, y, "Best ever", fmt.Sprintf("%.1f", data.BestEver))
	y = r.DrawSpacer(y, 4)

	r.DrawSparkline(x, y, p.width-2*padding, p.y+p.height-y-padding, data.MaxSeries)
}
