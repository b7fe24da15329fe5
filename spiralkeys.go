package spiralkeys

import "strconv"

// PitchClassNames maps a pitch class index in [0, 11] to its note name,
// starting at C.
var PitchClassNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// Key identifies one clickable pitch: an octave ring on the spiral and a
// pitch class within it. Octave 0 is the innermost ring.
type Key struct {
	Octave     int // 0-based octave index
	PitchClass int // 0 = C .. 11 = B
}

// Name returns the display name of the key, e.g. "C3" for octave index 2,
// pitch class 0. Display octaves are 1-based.
func (k Key) Name() string {
	return PitchClassNames[k.PitchClass] + strconv.Itoa(k.Octave+1)
}

// Less orders keys by octave, then pitch class. Used for the status summary.
func (k Key) Less(other Key) bool {
	if k.Octave != other.Octave {
		return k.Octave < other.Octave
	}
	return k.PitchClass < other.PitchClass
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Vec2 is a 2D vector used for screen positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Defaults matching the reference behavior of the instrument.
const (
	// DefaultOctaves is the number of spiral turns (octave rings).
	DefaultOctaves = 5
	// DefaultSegmentSamples is the number of polar sample points per key
	// segment; enough that the 1/12-turn arc renders as a smooth curve.
	DefaultSegmentSamples = 30
)

// BlackKeyPitchClasses lists the pitch classes rendered with sector shading
// in the static background, matching a piano's black keys.
var BlackKeyPitchClasses = [5]int{1, 3, 6, 8, 10}
