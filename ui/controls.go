package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/config"
)

// State carries the live toggles the panel edits directly. The game owns
// these values and passes them in every frame.
type State struct {
	Paused     bool
	SimSpeed   float32
	ShowVision bool
	ShowGrid   bool
	ShowStats  bool
}

// Actions reports one-shot requests triggered by panel buttons. ApplyConfig
// fires once the user releases the mouse after dragging a config slider, so
// the world is rebuilt once per drag rather than on every frame.
type Actions struct {
	Reset            bool
	SpawnBird        bool
	SpawnFood        bool
	Train            bool
	TrainGenerations int
	ApplyConfig      bool
	SaveConfig       bool
	LoadConfig       bool
	ExportHistory    bool
}

// ControlPanel renders the sidebar with simulation controls and config
// sliders. Config edits accumulate in a draft until the drag ends.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32

	draft      config.Config
	draftDirty bool

	trainGens float32

	bottom int32
}

// NewControlPanel creates the panel and seeds the draft from cfg.
func NewControlPanel(x, y, width int32, cfg *config.Config) *ControlPanel {
	return &ControlPanel{
		renderer:  NewRenderer(),
		x:         x,
		y:         y,
		width:     width,
		draft:     *cfg,
		trainGens: 10,
	}
}

// SetPosition updates the panel position.
func (p *ControlPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Bottom returns the Y coordinate just below the drawn content.
func (p *ControlPanel) Bottom() int32 {
	return p.bottom
}

// SyncDraft resets the draft to cfg, discarding pending slider edits.
func (p *ControlPanel) SyncDraft(cfg *config.Config) {
	p.draft = *cfg
	p.draftDirty = false
}

// CommitDraft copies the draft sections the panel edits into dst and
// refreshes its derived values.
func (p *ControlPanel) CommitDraft(dst *config.Config) {
	dst.World = p.draft.World
	dst.BrainEye = p.draft.BrainEye
	dst.Genetic = p.draft.Genetic
	dst.Recompute()
}

// Draw renders the panel and returns the updated state plus any actions.
func (p *ControlPanel) Draw(s State) (State, Actions) {
	var a Actions

	r := p.renderer
	pad := r.Theme.Padding

	panelHeight := p.height
	if panelHeight == 0 {
		panelHeight = 700
	}
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := p.x + pad
	w := p.width - 2*pad
	y := p.y + pad

	y = r.DrawSectionHeader(x, y, "Simulation")

	s.SimSpeed = p.sliderRow(x, w, &y, "Speed", s.SimSpeed, 0.1, 10, "%.1fx")

	pauseLabel := "Pause"
	if s.Paused {
		pauseLabel = "Resume"
	}
	half := (w - 6) / 2
	if gui.Button(rect(x, y, half, 22), pauseLabel) {
		s.Paused = !s.Paused
	}
	if gui.Button(rect(x+half+6, y, half, 22), "Reset World") {
		a.Reset = true
	}
	y += 26

	rl.DrawText(fmt.Sprintf("Train %d generations", roundInt(p.trainGens)), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	p.trainGens = gui.SliderBar(rect(x, y, w-70, 16), "", "", p.trainGens, 1, 100)
	if gui.Button(rect(x+w-64, y-2, 64, 20), "Train") {
		a.Train = true
		a.TrainGenerations = roundInt(p.trainGens)
	}
	y += 22

	if gui.Button(rect(x, y, half, 22), "Spawn Bird") {
		a.SpawnBird = true
	}
	if gui.Button(rect(x+half+6, y, half, 22), "Drop Food") {
		a.SpawnFood = true
	}
	y += 26

	third := w / 3
	s.ShowVision = gui.CheckBox(rect(x, y, 16, 16), "Vision", s.ShowVision)
	s.ShowGrid = gui.CheckBox(rect(x+third, y, 16, 16), "Grid", s.ShowGrid)
	s.ShowStats = gui.CheckBox(rect(x+2*third, y, 16, 16), "Stats", s.ShowStats)
	y += 24

	y = r.DrawSectionHeader(x, y, "World")
	p.intSliderRow(x, w, &y, "Food Count", &p.draft.World.NumFoods, 5, 100)
	p.intSliderRow(x, w, &y, "Bird Count", &p.draft.World.NumAnimals, 1, 100)
	p.draftSliderRow(x, w, &y, "Food Size", &p.draft.World.FoodSize, 0.001, 0.05, "%.3f")
	p.draftSliderRow(x, w, &y, "Bird Size", &p.draft.World.BirdSize, 0.001, 0.05, "%.3f")

	y = r.DrawSectionHeader(x, y, "Brain & Eye")
	p.draftSliderRow(x, w, &y, "FOV Angle", &p.draft.BrainEye.FovAngleDeg, 5, 360, "%.0f deg")
	p.draftSliderRow(x, w, &y, "FOV Range", &p.draft.BrainEye.FovRange, 0.1, 1.0, "%.2f")
	p.intSliderRow(x, w, &y, "Eye Cells", &p.draft.BrainEye.NumCells, 1, 16)
	p.intSliderRow(x, w, &y, "Neurons", &p.draft.BrainEye.NumNeurons, 1, 16)

	y = r.DrawSectionHeader(x, y, "Genetic")
	p.draftSliderRow(x, w, &y, "Mut. Chance", &p.draft.Genetic.MutationChance, 0.001, 0.5, "%.3f")
	p.draftSliderRow(x, w, &y, "Mut. Coeff", &p.draft.Genetic.MutationCoeff, 0.01, 1.0, "%.2f")

	reverse := gui.CheckBox(rect(x, y, 16, 16), "Reverse selection", p.draft.Genetic.Reverse)
	if reverse != p.draft.Genetic.Reverse {
		p.draft.Genetic.Reverse = reverse
		p.draftDirty = true
	}
	y += 24

	if p.draftDirty {
		rl.DrawText("world resets when the drag ends", x, y, r.Theme.FontSize, rl.Orange)
	}
	y += 16

	y = r.DrawSectionHeader(x, y, "Config")
	if gui.Button(rect(x, y, half, 22), "Save YAML") {
		a.SaveConfig = true
	}
	if gui.Button(rect(x+half+6, y, half, 22), "Load YAML") {
		a.LoadConfig = true
	}
	y += 26
	if gui.Button(rect(x, y, w, 22), "Export History CSV") {
		a.ExportHistory = true
	}
	y += 26

	p.bottom = y + pad
	p.height = p.bottom - p.y

	if p.draftDirty && !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		p.draftDirty = false
		a.ApplyConfig = true
	}

	return s, a
}

// sliderRow draws a labelled slider for a live value and returns the new one.
func (p *ControlPanel) sliderRow(x, w int32, y *int32, label string, value, min, max float32, format string) float32 {
	t := p.renderer.Theme

	rl.DrawText(label, x, *y, t.FontSize, t.LabelColor)
	valText := fmt.Sprintf(format, value)
	rl.DrawText(valText, x+w-rl.MeasureText(valText, t.FontSize), *y, t.FontSize, t.ValueColor)
	*y += 14

	nv := gui.SliderBar(rect(x, *y, w, 16), "", "", value, min, max)
	*y += 22
	return nv
}

// draftSliderRow edits a float config field in place, marking the draft dirty
// on change.
func (p *ControlPanel) draftSliderRow(x, w int32, y *int32, label string, field *float32, min, max float32, format string) {
	nv := p.sliderRow(x, w, y, label, *field, min, max, format)
	if nv != *field {
		*field = nv
		p.draftDirty = true
	}
}

// intSliderRow edits an integer config field via a rounded slider.
func (p *ControlPanel) intSliderRow(x, w int32, y *int32, label string, field *int, min, max float32) {
	nv := roundInt(p.sliderRow(x, w, y, label, float32(*field), min, max, "%.0f"))
	if nv != *field {
		*field = nv
		p.draftDirty = true
	}
}

func rect(x, y, w, h int32) rl.Rectangle {
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
}

func roundInt(v float32) int {
	return int(v + 0.5)
}
