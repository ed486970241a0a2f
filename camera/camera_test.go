package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	// Should be centered on world
	if cam.X != 0.5 || cam.Y != 0.5 {
		t.Errorf("expected camera at (0.5, 0.5), got (%f, %f)", cam.X, cam.Y)
	}
	// MinZoom is the aspect ratio, 1280/720
	if math.Abs(float64(cam.MinZoom-1280.0/720.0)) > 0.001 {
		t.Errorf("expected MinZoom %f, got %f", 1280.0/720.0, cam.MinZoom)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected initial zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(0.5, 0.5)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)

	// Test roundtrip at various positions
	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 0.05 // Near left edge

	// Entity at world right edge should appear on the left side of screen
	// (closer via toroidal distance)
	sx, _ := cam.WorldToScreen(0.97, 0.5)

	if sx >= 640 {
		t.Errorf("expected entity on left of screen, got x=%f", sx)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 0.05

	// Pan left should wrap to the right side of the world
	cam.Pan(-200, 0)

	if cam.X < 0.5 {
		t.Errorf("expected X to wrap around, got %f", cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(100) // Above max
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}
}

func TestMinZoomPreventsDeadSpace(t *testing.T) {
	cam := New(800, 600)

	// MinZoom should be 800/600
	if math.Abs(float64(cam.MinZoom-800.0/600.0)) > 0.001 {
		t.Errorf("expected MinZoom %f, got %f", 800.0/600.0, cam.MinZoom)
	}

	// At min zoom, the visible area exactly fits the world on the long axis
	cam.SetZoom(cam.MinZoom)
	minX, _, maxX, _ := cam.VisibleWorldBounds()
	if math.Abs(float64(maxX-minX-1)) > 0.001 {
		t.Errorf("at min zoom, visible width %f should equal world width 1", maxX-minX)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1000, 1000)
	cam.SetZoom(4)

	// Visible half-extent is 1000/(2*4000) = 0.125 world units

	if !cam.IsVisible(0.5, 0.5, 0.01) {
		t.Error("center should be visible")
	}

	if cam.IsVisible(0.9, 0.9, 0.01) {
		t.Error("far point should not be visible")
	}

	// Point just past the edge with a radius that reaches in
	if !cam.IsVisible(0.63, 0.5, 0.02) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestGhostPositions(t *testing.T) {
	cam := New(1000, 1000)

	// Entity in the middle never needs ghosts
	if ghosts := cam.GhostPositions(0.5, 0.5, 0.05); len(ghosts) != 0 {
		t.Errorf("expected no ghosts at center, got %d", len(ghosts))
	}

	// Entity at the right world edge mirrors to the left of the view
	ghosts := cam.GhostPositions(0.999, 0.5, 0.05)
	if len(ghosts) != 1 {
		t.Fatalf("expected 1 ghost near the right edge, got %d", len(ghosts))
	}
	sx, _ := cam.WorldToScreen(0.999, 0.5)
	if ghosts[0].X >= sx {
		t.Errorf("expected ghost left of primary %f, got %f", sx, ghosts[0].X)
	}

	// Corner entity mirrors horizontally, vertically and diagonally
	if ghosts := cam.GhostPositions(0.999, 0.999, 0.05); len(ghosts) != 3 {
		t.Errorf("expected 3 ghosts at the corner, got %d", len(ghosts))
	}
}

func TestZoomAtKeepsCursorAnchored(t *testing.T) {
	cam := New(1000, 1000)

	wx, wy := cam.ScreenToWorld(250, 250)
	cam.ZoomAt(250, 250, 2)

	nx, ny := cam.ScreenToWorld(250, 250)
	if math.Abs(float64(nx-wx)) > 0.001 || math.Abs(float64(ny-wy)) > 0.001 {
		t.Errorf("point under cursor moved: (%f,%f) -> (%f,%f)", wx, wy, nx, ny)
	}
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}
}

func TestResizeRaisesZoomFloor(t *testing.T) {
	cam := New(1000, 1000)

	cam.Resize(1280, 720)

	if math.Abs(float64(cam.MinZoom-1280.0/720.0)) > 0.001 {
		t.Errorf("expected MinZoom %f after resize, got %f", 1280.0/720.0, cam.MinZoom)
	}
	if cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f below new floor %f", cam.Zoom, cam.MinZoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 0.1
	cam.Y = 0.9
	cam.SetZoom(4)

	cam.Reset()

	if cam.X != 0.5 || cam.Y != 0.5 {
		t.Errorf("expected position (0.5, 0.5), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}
