package spiralkeys

import (
	"math"
	"testing"
)

func newTestHitTester(octaves int) *HitTester {
	sp := NewSpiral(octaves)
	return NewHitTester(sp, NewRegistry(sp, 8))
}

func TestResolveCenterOfEveryKey(t *testing.T) {
	sp := NewSpiral(5)
	h := NewHitTester(sp, NewRegistry(sp, 8))

	for _, key := range sp.Keys() {
		start, end := sp.AngleRange(key)
		mid := (start + end) / 2
		angle := math.Mod(mid, 2*math.Pi)
		radius := sp.Radius(mid)

		got, ok := h.Resolve(angle, radius)
		if !ok {
			t.Fatalf("Resolve center of %v: not ok", key)
		}
		if got != key {
			t.Fatalf("Resolve center of %v = %v", key, got)
		}
	}
}

func TestResolveRejectsRadiusOutOfRange(t *testing.T) {
	h := newTestHitTester(5)

	if _, ok := h.Resolve(0.1, 0.5); ok {
		t.Error("radius below the innermost ring should miss")
	}
	if _, ok := h.Resolve(0.1, 32); ok {
		t.Error("radius at the outer bound should miss")
	}
	if _, ok := h.Resolve(0.1, 100); ok {
		t.Error("radius beyond the outer bound should miss")
	}
}

func TestResolveNormalizesAngle(t *testing.T) {
	h := newTestHitTester(5)

	// D in the second octave, addressed with wound-up and negative angles.
	angle := 2.5 * pitchAngle
	want := Key{Octave: 1, PitchClass: 2}
	radius := 3.0

	for _, a := range []float64{angle, angle + 4*math.Pi, angle - 2*math.Pi} {
		got, ok := h.Resolve(a, radius)
		if !ok || got != want {
			t.Errorf("Resolve(%f, %f) = %v, %v; want %v", a, radius, got, ok, want)
		}
	}
}

func TestResolvePitchBoundaryClamp(t *testing.T) {
	h := newTestHitTester(5)

	// Just below a full turn must land on B, never on a 12th pitch class.
	got, ok := h.Resolve(2*math.Pi-1e-12, 1.5)
	if !ok {
		t.Fatal("near-2π angle should resolve")
	}
	if got.PitchClass != 11 {
		t.Errorf("PitchClass = %d, want 11", got.PitchClass)
	}
}

func TestResolveOctaveFromRadius(t *testing.T) {
	h := newTestHitTester(5)

	cases := []struct {
		radius float64
		octave int
	}{
		{1.0, 0},
		{1.9, 0},
		{2.0, 1},
		{3.9, 1},
		{4.0, 2},
		{31.9, 4},
	}
	for _, c := range cases {
		got, ok := h.Resolve(0.1, c.radius)
		if !ok {
			t.Fatalf("Resolve(0.1, %f): not ok", c.radius)
		}
		if got.Octave != c.octave {
			t.Errorf("Resolve(0.1, %f).Octave = %d, want %d", c.radius, got.Octave, c.octave)
		}
	}
}
