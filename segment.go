package spiralkeys

import "fmt"

// State is the logical highlight state of a segment.
type State uint8

const (
	// StateIdle means invisible and inactive.
	StateIdle State = iota
	// StateSustained means fully lit, not fading.
	StateSustained
	// StateDecaying means fading toward invisible under the scheduler.
	StateDecaying
)

// String returns the state name for diagnostics.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSustained:
		return "Sustained"
	case StateDecaying:
		return "Decaying"
	default:
		return "Unknown"
	}
}

// Segment is the persistent drawable and state record for one key. The polar
// sample arrays are immutable after creation; only the visual parameters and
// the logical state mutate, and only through the Registry.
type Segment struct {
	Key    Key
	Thetas []float64 // sample angles across the key's interval
	Radii  []float64 // r(θ) at each sample, before radial scaling

	Alpha        float64 // 0 = invisible, 1 = fully lit
	RadialFactor float64 // (0, 1]; scales Radii toward the center while fading
	State        State
}

// Registry owns the Key → Segment mapping. It is a pure store with
// single-writer mutation methods; no transition logic lives here. Every
// mutation re-checks the alpha/state invariant as a postcondition when debug
// mode is on.
type Registry struct {
	segments map[Key]*Segment
	keys     []Key // octave-then-pitch order for deterministic iteration
}

// NewRegistry creates one segment per key on the spiral, each with the given
// number of polar samples, all starting Idle and invisible.
func NewRegistry(sp Spiral, samples int) *Registry {
	keys := sp.Keys()
	r := &Registry{
		segments: make(map[Key]*Segment, len(keys)),
		keys:     keys,
	}
	for _, k := range keys {
		thetas, radii := sp.SampleSegment(k, samples)
		r.segments[k] = &Segment{
			Key:          k,
			Thetas:       thetas,
			Radii:        radii,
			RadialFactor: 1,
		}
	}
	return r
}

// Get returns the segment for key, or false if no such key is registered.
func (r *Registry) Get(key Key) (*Segment, bool) {
	seg, ok := r.segments[key]
	return seg, ok
}

// Len returns the number of registered segments.
func (r *Registry) Len() int {
	return len(r.segments)
}

// ForEach calls fn for every segment in octave-then-pitch order.
func (r *Registry) ForEach(fn func(*Segment)) {
	for _, k := range r.keys {
		fn(r.segments[k])
	}
}

// SetVisual updates the painted parameters of a key's segment.
func (r *Registry) SetVisual(key Key, alpha, radialFactor float64) {
	seg, ok := r.segments[key]
	if !ok {
		return
	}
	seg.Alpha = alpha
	seg.RadialFactor = radialFactor
	if globalDebug {
		debugCheckVisualRange(seg)
	}
}

// SetState updates the logical state of a key's segment.
func (r *Registry) SetState(key Key, state State) {
	seg, ok := r.segments[key]
	if !ok {
		return
	}
	seg.State = state
	if globalDebug {
		debugCheckSegment(seg)
	}
}

// debugCheckVisualRange panics when visual parameters leave their domains.
// Called after SetVisual; the state pairing is checked once the transition
// completes with SetState.
func debugCheckVisualRange(seg *Segment) {
	if seg.Alpha < 0 || seg.Alpha > 1 || seg.RadialFactor <= 0 || seg.RadialFactor > 1 {
		panic(fmt.Sprintf("spiralkeys debug: %s has visual (%v, %v) out of range",
			seg.Key.Name(), seg.Alpha, seg.RadialFactor))
	}
}

// debugCheckSegment panics on an alpha/state combination that should be
// unreachable after a completed transition: Idle with nonzero alpha, or
// Sustained at anything but (1, 1). Every transition writes the visual first
// and the state last, so this runs on settled values.
func debugCheckSegment(seg *Segment) {
	switch seg.State {
	case StateIdle:
		if seg.Alpha != 0 {
			panic(fmt.Sprintf("spiralkeys debug: %s is Idle with alpha %v", seg.Key.Name(), seg.Alpha))
		}
	case StateSustained:
		if seg.Alpha != 1 || seg.RadialFactor != 1 {
			panic(fmt.Sprintf("spiralkeys debug: %s is Sustained with visual (%v, %v)",
				seg.Key.Name(), seg.Alpha, seg.RadialFactor))
		}
	}
}
