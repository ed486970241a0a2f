// Package camera provides a 2D camera system for viewport control.
package camera

import "math"

// Camera controls the viewport into the unit-square world.
// The world wraps toroidally at 1.0 on both axes.
type Camera struct {
	// Position is the camera center in world coordinates [0, 1)
	X, Y float32

	// Zoom level relative to the shorter viewport side
	// (at 1.0 one world unit spans min(ViewportW, ViewportH) pixels)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world, zoomed out as far as allowed.
func New(viewportW, viewportH float32) *Camera {
	c := &Camera{
		X:         0.5,
		Y:         0.5,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   minZoomFor(viewportW, viewportH),
		MaxZoom:   8.0,
	}
	c.Zoom = c.MinZoom
	return c
}

// minZoomFor computes the zoom floor so the viewport never exceeds the world.
// At zoom Z the visible area is (viewportW, viewportH) / (Z * minSide) world
// units, which must stay <= 1 on both axes.
func minZoomFor(viewportW, viewportH float32) float32 {
	long := viewportW
	short := viewportH
	if short > long {
		long, short = short, long
	}
	return long / short
}

// Scale returns the number of screen pixels per world unit.
func (c *Camera) Scale() float32 {
	base := c.ViewportW
	if c.ViewportH < base {
		base = c.ViewportH
	}
	return c.Zoom * base
}

// WorldToScreen converts world coordinates to screen coordinates.
// The world wraps, so this maps via the shortest path to the camera center.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := toroidalDelta(wx, c.X)
	dy := toroidalDelta(wy, c.Y)

	scale := c.Scale()
	sx = c.ViewportW/2 + dx*scale
	sy = c.ViewportH/2 + dy*scale
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	scale := c.Scale()
	dx := (sx - c.ViewportW/2) / scale
	dy := (sy - c.ViewportH/2) / scale

	wx = wrap(c.X + dx)
	wy = wrap(c.Y + dy)
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with the given radius in
// world units could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	dx := toroidalDelta(wx, c.X)
	dy := toroidalDelta(wy, c.Y)

	scale := c.Scale()
	halfW := c.ViewportW/(2*scale) + radius
	halfH := c.ViewportH/(2*scale) + radius

	return absf(dx) <= halfW && absf(dy) <= halfH
}

// GhostPositions returns additional screen positions for entities near world
// edges. These ghost copies make entities appear on both sides mid-wrap.
// Returns up to 3 additional positions beyond the primary one.
func (c *Camera) GhostPositions(wx, wy, radius float32) []struct{ X, Y float32 } {
	var ghosts []struct{ X, Y float32 }

	scale := c.Scale()
	halfW := c.ViewportW / (2 * scale)
	halfH := c.ViewportH / (2 * scale)

	dx := toroidalDelta(wx, c.X)
	dy := toroidalDelta(wy, c.Y)

	// Near the right edge of the view the ghost shows on the left, and the
	// other way around
	needsHorizontalGhost := false
	var hGhostX float32
	if dx > halfW-radius && dx < halfW+radius {
		needsHorizontalGhost = true
		hGhostX = c.ViewportW/2 + (dx-1)*scale
	} else if dx < -halfW+radius && dx > -halfW-radius {
		needsHorizontalGhost = true
		hGhostX = c.ViewportW/2 + (dx+1)*scale
	}

	needsVerticalGhost := false
	var vGhostY float32
	if dy > halfH-radius && dy < halfH+radius {
		needsVerticalGhost = true
		vGhostY = c.ViewportH/2 + (dy-1)*scale
	} else if dy < -halfH+radius && dy > -halfH-radius {
		needsVerticalGhost = true
		vGhostY = c.ViewportH/2 + (dy+1)*scale
	}

	sx := c.ViewportW/2 + dx*scale
	sy := c.ViewportH/2 + dy*scale

	if needsHorizontalGhost {
		ghosts = append(ghosts, struct{ X, Y float32 }{hGhostX, sy})
	}
	if needsVerticalGhost {
		ghosts = append(ghosts, struct{ X, Y float32 }{sx, vGhostY})
	}
	if needsHorizontalGhost && needsVerticalGhost {
		ghosts = append(ghosts, struct{ X, Y float32 }{hGhostX, vGhostY})
	}

	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = minZoomFor(viewportW, viewportH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels.
// Automatically wraps around world boundaries.
func (c *Camera) Pan(dx, dy float32) {
	scale := c.Scale()
	c.X = wrap(c.X + dx/scale)
	c.Y = wrap(c.Y + dy/scale)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the given screen position fixed, so wheel zoom tracks the cursor.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)

	// Shift the camera so the anchored point lands back under the cursor
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = wrap(c.X + toroidalDelta(wx, nx))
	c.Y = wrap(c.Y + toroidalDelta(wy, ny))
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0.5
	c.Y = 0.5
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY); min may be negative or max above 1 when
// the view straddles a wrap seam.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	scale := c.Scale()
	halfW := c.ViewportW / (2 * scale)
	halfH := c.ViewportH / (2 * scale)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// on the unit torus.
func toroidalDelta(to, from float32) float32 {
	d := to - from
	if d > 0.5 {
		d--
	} else if d < -0.5 {
		d++
	}
	return d
}

// wrap folds a coordinate into [0, 1).
func wrap(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
