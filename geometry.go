package spiralkeys

import "math"

// pitchAngle is the angular width of one pitch class: 1/12 of a full turn.
const pitchAngle = 2 * math.Pi / 12

// spiralB is the growth constant of the spiral: r(θ) = exp(spiralB·θ).
// One full turn doubles the radius, so each revolution is one octave.
var spiralB = math.Ln2 / (2 * math.Pi)

// Spiral is the pure geometry model of the keyboard. Angular position encodes
// pitch class, the unbounded angle encodes octave, and the radius grows
// exponentially so that consecutive octaves of the same pitch class line up
// on the same ray. Spiral has no mutable state.
type Spiral struct {
	Octaves int
}

// NewSpiral returns a spiral spanning the given number of octave turns.
func NewSpiral(octaves int) Spiral {
	if octaves < 1 {
		octaves = 1
	}
	return Spiral{Octaves: octaves}
}

// AngleRange returns the half-open angular interval [start, end) occupied by
// the key, measured as total unwound angle from the spiral origin. Adjacent
// pitch classes share a boundary angle exactly.
func (s Spiral) AngleRange(k Key) (start, end float64) {
	base := float64(k.Octave) * 2 * math.Pi
	// The end is computed with the exact expression the next key uses for its
	// start, so shared boundaries compare equal bit for bit.
	start = base + float64(k.PitchClass)*pitchAngle
	end = base + float64(k.PitchClass+1)*pitchAngle
	return start, end
}

// Radius evaluates r(θ) = exp(b·θ) at the given total angle. Strictly
// increasing in θ.
func (s Spiral) Radius(theta float64) float64 {
	return math.Exp(spiralB * theta)
}

// MaxRadius returns the radius at the outer edge of the outermost octave.
func (s Spiral) MaxRadius() float64 {
	return math.Exp2(float64(s.Octaves))
}

// Contains reports whether the key lies within the configured octave range.
func (s Spiral) Contains(k Key) bool {
	return k.Octave >= 0 && k.Octave < s.Octaves &&
		k.PitchClass >= 0 && k.PitchClass <= 11
}

// SampleSegment returns n evenly spaced angles across the key's angular
// interval together with the corresponding radii: the polyline approximating
// that 1/12-turn arc of the spiral. Endpoints inclusive, so consecutive keys
// share their boundary sample. n must be at least 2.
func (s Spiral) SampleSegment(k Key, n int) (thetas, radii []float64) {
	if n < 2 {
		n = 2
	}
	start, end := s.AngleRange(k)
	thetas = make([]float64, n)
	radii = make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range thetas {
		t := start + float64(i)*step
		thetas[i] = t
		radii[i] = s.Radius(t)
	}
	// Land on the boundary exactly; step accumulation drifts in the last ulp.
	thetas[n-1] = end
	radii[n-1] = s.Radius(end)
	return thetas, radii
}

// Keys returns every key on the spiral in octave-then-pitch order.
func (s Spiral) Keys() []Key {
	keys := make([]Key, 0, s.Octaves*12)
	for oct := 0; oct < s.Octaves; oct++ {
		for pc := 0; pc < 12; pc++ {
			keys = append(keys, Key{Octave: oct, PitchClass: pc})
		}
	}
	return keys
}

// PlotMapping converts between spiral coordinates (total angle, radius) and
// screen pixels. The radial axis is logarithmic: display radius is linear in
// log2(r), so every octave ring has the same radial thickness and the
// exponential spiral renders as evenly spaced turns.
//
// PlotMapping is the boundary collaborator of the core: the hit tester and
// geometry model never see pixels.
type PlotMapping struct {
	CenterX, CenterY float64
	InnerRadius      float64 // display radius at r = 1
	OuterRadius      float64 // display radius at r = 2^octaves
	Octaves          int
}

// NewPlotMapping builds a mapping centered in a w×h viewport with a small
// outer margin.
func NewPlotMapping(w, h, octaves int) PlotMapping {
	half := math.Min(float64(w), float64(h)) / 2
	return PlotMapping{
		CenterX:     float64(w) / 2,
		CenterY:     float64(h) / 2,
		InnerRadius: half * 0.12,
		OuterRadius: half * 0.95,
		Octaves:     octaves,
	}
}

// DisplayRadius maps a spiral radius to a display radius in pixels.
func (m PlotMapping) DisplayRadius(r float64) float64 {
	if r <= 0 {
		return m.InnerRadius
	}
	t := math.Log2(r) / float64(m.Octaves)
	return m.InnerRadius + t*(m.OuterRadius-m.InnerRadius)
}

// ToScreen converts a (total angle, radius) point to screen pixels.
// Angles run counterclockwise from the positive x axis, as on a polar plot;
// the screen y axis points down.
func (m PlotMapping) ToScreen(theta, r float64) (x, y float64) {
	d := m.DisplayRadius(r)
	return m.CenterX + d*math.Cos(theta), m.CenterY - d*math.Sin(theta)
}

// ToPolar converts a screen point to a normalized angle in [0, 2π) and a
// spiral radius. ok is false when the point falls outside the plot area
// (beyond the outermost ring); radii below the innermost ring are returned
// as-is for the hit tester to reject.
func (m PlotMapping) ToPolar(x, y float64) (angle, r float64, ok bool) {
	dx := x - m.CenterX
	dy := m.CenterY - y
	d := math.Hypot(dx, dy)
	if d > m.OuterRadius {
		return 0, 0, false
	}
	angle = math.Atan2(dy, dx)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	t := (d - m.InnerRadius) / (m.OuterRadius - m.InnerRadius)
	r = math.Exp2(t * float64(m.Octaves))
	return angle, r, true
}
