package sim

import "math"

// wrap maps v into [min, max) with negative correction, keeping positions
// on the torus.
func wrap(v, min, max float32) float32 {
	width := max - min
	w := float32(math.Mod(float64(v-min), float64(width)))
	if w < 0 {
		w += width
	}
	return w + min
}

// normalizeAngle wraps an angle difference into [-pi, pi].
func normalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// clamp32 clamps x to [min, max].
func clamp32(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
