package spiralkeys

import "testing"

func TestNewRegistryStartsAllIdle(t *testing.T) {
	sp := NewSpiral(3)
	reg := NewRegistry(sp, 12)

	if reg.Len() != 36 {
		t.Fatalf("Len = %d, want 36", reg.Len())
	}
	reg.ForEach(func(seg *Segment) {
		if seg.State != StateIdle {
			t.Errorf("%s starts %v, want Idle", seg.Key.Name(), seg.State)
		}
		if seg.Alpha != 0 {
			t.Errorf("%s starts with alpha %f, want 0", seg.Key.Name(), seg.Alpha)
		}
		if seg.RadialFactor != 1 {
			t.Errorf("%s starts with radial factor %f, want 1", seg.Key.Name(), seg.RadialFactor)
		}
		if len(seg.Thetas) != 12 || len(seg.Radii) != 12 {
			t.Errorf("%s has %d/%d samples, want 12/12", seg.Key.Name(), len(seg.Thetas), len(seg.Radii))
		}
	})
}

func TestForEachOctaveThenPitchOrder(t *testing.T) {
	reg := NewRegistry(NewSpiral(2), 4)

	var prev Key
	first := true
	reg.ForEach(func(seg *Segment) {
		if !first && !prev.Less(seg.Key) {
			t.Fatalf("iteration out of order: %v then %v", prev, seg.Key)
		}
		prev = seg.Key
		first = false
	})
}

func TestSetVisualAndSetState(t *testing.T) {
	reg := NewRegistry(NewSpiral(2), 4)
	key := Key{Octave: 1, PitchClass: 5}

	reg.SetVisual(key, 0.5, 0.75)
	reg.SetState(key, StateDecaying)

	seg, ok := reg.Get(key)
	if !ok {
		t.Fatal("key not registered")
	}
	if seg.Alpha != 0.5 || seg.RadialFactor != 0.75 {
		t.Errorf("visual = (%f, %f), want (0.5, 0.75)", seg.Alpha, seg.RadialFactor)
	}
	if seg.State != StateDecaying {
		t.Errorf("state = %v, want Decaying", seg.State)
	}
}

func TestMutationsIgnoreUnknownKeys(t *testing.T) {
	reg := NewRegistry(NewSpiral(2), 4)
	bogus := Key{Octave: 9, PitchClass: 0}

	reg.SetVisual(bogus, 1, 1)
	reg.SetState(bogus, StateSustained)

	if _, ok := reg.Get(bogus); ok {
		t.Error("unknown key must not be materialized by mutation")
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateIdle:      "Idle",
		StateSustained: "Sustained",
		StateDecaying:  "Decaying",
		State(99):      "Unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestDebugModeCatchesIdleWithAlpha(t *testing.T) {
	reg := NewRegistry(NewSpiral(1), 4)
	key := Key{Octave: 0, PitchClass: 0}

	SetDebugMode(true)
	defer SetDebugMode(false)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for Idle segment with nonzero alpha")
		}
	}()
	reg.SetVisual(key, 1, 1)
	reg.SetState(key, StateIdle)
}
