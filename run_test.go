package spiralkeys

import "testing"

func TestNewPianoDefaults(t *testing.T) {
	p := NewPiano(RunConfig{})

	w, h := p.Layout(0, 0)
	if w != 900 || h != 760 {
		t.Errorf("Layout = %dx%d, want 900x760", w, h)
	}
	if p.registry.Len() != DefaultOctaves*12 {
		t.Errorf("registry has %d keys, want %d", p.registry.Len(), DefaultOctaves*12)
	}
	if p.board.AutoDecay() {
		t.Error("auto-decay should default off")
	}
}

func TestKeyScreenPositionHitsItsOwnKey(t *testing.T) {
	p := NewPiano(RunConfig{})

	for _, key := range p.spiral.Keys() {
		x, y, ok := p.KeyScreenPosition(key)
		if !ok {
			t.Fatalf("no screen position for %s", key.Name())
		}
		angle, r, ok := p.compositor.Mapping().ToPolar(x, y)
		if !ok {
			t.Fatalf("%s center at (%f, %f) left the plot area", key.Name(), x, y)
		}
		got, ok := p.hit.Resolve(angle, r)
		if !ok || got != key {
			t.Fatalf("click at center of %s resolves to %v, %v", key.Name(), got, ok)
		}
	}
}

func TestKeyScreenPositionRejectsOffSpiralKeys(t *testing.T) {
	p := NewPiano(RunConfig{Octaves: 2})

	if _, _, ok := p.KeyScreenPosition(Key{Octave: 2, PitchClass: 0}); ok {
		t.Error("key beyond the configured octaves should have no position")
	}
}

func TestInjectedClicksStrikeOnePerUpdate(t *testing.T) {
	p := NewPiano(RunConfig{})
	c3 := Key{Octave: 2, PitchClass: 0}
	e3 := Key{Octave: 2, PitchClass: 4}

	x1, y1, _ := p.KeyScreenPosition(c3)
	x2, y2, _ := p.KeyScreenPosition(e3)
	p.InjectClick(x1, y1)
	p.InjectClick(x2, y2)

	p.drainInjected()
	if p.board.ActiveLen() != 1 {
		t.Fatalf("after one drain ActiveLen = %d, want 1", p.board.ActiveLen())
	}
	p.drainInjected()
	if p.board.ActiveLen() != 2 {
		t.Fatalf("after two drains ActiveLen = %d, want 2", p.board.ActiveLen())
	}

	names := p.board.ActiveNames()
	if names[0] != "C3" || names[1] != "E3" {
		t.Errorf("active = %v, want [C3 E3]", names)
	}
}

func TestClickOutsidePlotIsIgnored(t *testing.T) {
	p := NewPiano(RunConfig{})

	// Window corner (beyond the outer ring), then dead center (inside the
	// inner ring).
	p.click(0, 0)
	p.click(float64(p.width)/2, float64(p.height)/2)

	if p.board.ActiveLen() != 0 {
		t.Errorf("ActiveLen = %d after off-plot clicks, want 0", p.board.ActiveLen())
	}
}

func TestCustomDurationReachesScheduler(t *testing.T) {
	p := NewPiano(RunConfig{Duration: DefaultDecayDuration * 2})

	if p.board.Scheduler().Duration != DefaultDecayDuration*2 {
		t.Errorf("Duration = %v, want %v", p.board.Scheduler().Duration, DefaultDecayDuration*2)
	}
}
