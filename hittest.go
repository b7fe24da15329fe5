package spiralkeys

import "math"

// HitTester resolves a pointer position, already converted to spiral
// coordinates, to the key under it. It consumes a normalized angle and a
// spiral radius; screen-to-polar conversion is the PlotMapping's job.
type HitTester struct {
	spiral   Spiral
	registry *Registry
}

// NewHitTester builds a hit tester over the given spiral and registry.
func NewHitTester(sp Spiral, reg *Registry) *HitTester {
	return &HitTester{spiral: sp, registry: reg}
}

// Resolve maps a pointer (angle, radius) to the key under it. The angle may
// arrive outside [0, 2π) and is normalized first. Returns ok=false for radii
// below the innermost ring, at or beyond the outer bound, or when the
// resolved pair has no registered segment. Invalid input is a no-op by
// contract; there is no error path.
func (h *HitTester) Resolve(angle, radius float64) (Key, bool) {
	if radius < 1 || radius >= h.spiral.MaxRadius() {
		return Key{}, false
	}

	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}

	octave := int(math.Floor(math.Log2(radius)))
	pitch := int(math.Floor(a / pitchAngle))
	// Absorb float edge cases at the 2π boundary.
	if pitch > 11 {
		pitch = 11
	}
	if pitch < 0 {
		pitch = 0
	}

	key := Key{Octave: octave, PitchClass: pitch}
	if _, ok := h.registry.Get(key); !ok {
		return Key{}, false
	}
	return key, true
}
