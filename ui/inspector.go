package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
)

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	Index   int
	Animal  sim.AnimalState
	Network *neural.Network
}

// Inspector renders the selected bird's panel: pose, vision cells, and the
// brain graph.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	panelHeight := int32(rl.GetScreenHeight()) - ins.y
	if panelHeight < 100 {
		panelHeight = 100
	}
	r.DrawPanel(ins.x, ins.y, ins.width, panelHeight)

	x := ins.x + padding
	w := ins.width - padding*2
	y := ins.y + padding

	rl.DrawText(fmt.Sprintf("Bird %d", data.Index), x, y, 18, rl.White)
	y += r.Theme.LineHeight + 6

	a := data.Animal
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.3f, %.3f", a.Position.X, a.Position.Y))
	heading := float64(a.Rotation) * 180 / math.Pi
	y = r.DrawLabelValue(x, y, "Heading", fmt.Sprintf("%.0f deg", heading))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.4f", a.Speed))
	y = r.DrawLabelValue(x, y, "Eaten", fmt.Sprintf("%d", a.FoodEaten))
	y = r.DrawSpacer(y, 4)

	y = r.DrawSectionHeader(x, y, "Vision")
	y = ins.drawVisionStrip(x, y, w, a.Vision)
	y = r.DrawSpacer(y, 6)

	if data.Network != nil {
		y = r.DrawSectionHeader(x, y, "Brain")
		graphHeight := ins.y + panelHeight - y - padding
		if graphHeight > 140 {
			graphHeight = 140
		}
		if graphHeight > 30 {
			ins.drawBrainGraph(x, y, w, graphHeight, data.Network, a.Vision)
			y += graphHeight
		}
	}

	return y
}

// drawVisionStrip renders the eye cells as a row of shaded boxes, leftmost
// cell first.
func (ins *Inspector) drawVisionStrip(x, y, width int32, vision []float32) int32 {
	t := ins.renderer.Theme

	height := int32(18)
	rl.DrawRectangle(x, y, width, height, t.BarBg)

	n := len(vision)
	if n == 0 {
		return y + height + 2
	}

	cellW := float32(width) / float32(n)
	for i, v := range vision {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		cx := float32(x) + float32(i)*cellW
		fill := t.BarFill
		fill.A = uint8(40 + v*215)
		rl.DrawRectangle(int32(cx)+1, y+1, int32(cellW)-2, height-2, fill)
	}
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)

	return y + height + 2
}

// drawBrainGraph draws the layered network with one column per layer.
// Connection color encodes the sign of the weight, opacity its magnitude.
func (ins *Inspector) drawBrainGraph(x, y, width, height int32, network *neural.Network, vision []float32) {
	rl.DrawRectangle(x, y, width, height, rl.Color{R: 30, G: 35, B: 40, A: 255})

	layers := network.Layers()
	if len(layers) == 0 {
		return
	}

	// Column sizes: the input arity followed by each layer's neuron count.
	sizes := make([]int, 0, len(layers)+1)
	sizes = append(sizes, layers[0].InputSize())
	for _, l := range layers {
		sizes = append(sizes, l.OutputSize())
	}

	padding := float32(15)
	colSpacing := (float32(width) - padding*2) / float32(len(sizes)-1)

	positions := make([][]rl.Vector2, len(sizes))
	for col, size := range sizes {
		positions[col] = make([]rl.Vector2, size)
		spacing := (float32(height) - padding*2) / float32(size)
		for i := 0; i < size; i++ {
			positions[col][i] = rl.Vector2{
				X: float32(x) + padding + float32(col)*colSpacing,
				Y: float32(y) + padding + float32(i)*spacing + spacing/2,
			}
		}
	}

	for li, layer := range layers {
		for j, neuron := range layer.Neurons() {
			wts := neuron.Weights()
			for i := 1; i < len(wts); i++ {
				weight := wts[i]
				from := positions[li][i-1]
				to := positions[li+1][j]

				mag := weight
				if mag < 0 {
					mag = -mag
				}
				if mag > 1 {
					mag = 1
				}
				alpha := uint8(40 + mag*180)
				lineColor := rl.Color{R: 100, G: 200, B: 100, A: alpha}
				if weight < 0 {
					lineColor = rl.Color{R: 200, G: 100, B: 100, A: alpha}
				}
				rl.DrawLineV(from, to, lineColor)
			}
		}
	}

	nodeRadius := float32(4)
	for col, pts := range positions {
		color := rl.Color{R: 180, G: 180, B: 180, A: 255}
		switch col {
		case 0:
			color = rl.Color{R: 100, G: 150, B: 255, A: 255}
		case len(positions) - 1:
			color = rl.Color{R: 255, G: 180, B: 100, A: 255}
		}
		for i, pos := range pts {
			rl.DrawCircleV(pos, nodeRadius, color)
			if col == 0 && i < len(vision) {
				v := vision[i]
				if v < 0 {
					v = 0
				}
				if v > 1 {
					v = 1
				}
				if v > 0 {
					rl.DrawCircleV(pos, nodeRadius*v, rl.White)
				}
			}
		}
	}
}
