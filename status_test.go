package spiralkeys

import "testing"

func TestStatusLineEmpty(t *testing.T) {
	b, _, _ := newTestBoard()
	s := NewStatusLine(b)

	if s.Text() != "Active Notes: None" {
		t.Errorf("Text = %q, want %q", s.Text(), "Active Notes: None")
	}
}

func TestStatusLineTracksActiveSet(t *testing.T) {
	b, _, _ := newTestBoard()
	s := NewStatusLine(b)

	b.Strike(Key{Octave: 2, PitchClass: 4}) // E3
	b.Strike(Key{Octave: 2, PitchClass: 0}) // C3
	if s.Text() != "Active Notes: C3, E3" {
		t.Errorf("Text = %q, want %q", s.Text(), "Active Notes: C3, E3")
	}

	b.Strike(Key{Octave: 2, PitchClass: 0})
	if s.Text() != "Active Notes: E3" {
		t.Errorf("Text = %q, want %q", s.Text(), "Active Notes: E3")
	}

	b.Strike(Key{Octave: 2, PitchClass: 4})
	if s.Text() != "Active Notes: None" {
		t.Errorf("Text = %q, want %q", s.Text(), "Active Notes: None")
	}
}

func TestStatusLineSurvivesBatchRelease(t *testing.T) {
	b, _, clock := newTestBoard()
	s := NewStatusLine(b)

	b.Strike(Key{Octave: 2, PitchClass: 0})
	b.Strike(Key{Octave: 2, PitchClass: 4})
	b.ReleaseAll()

	// Keys are still fading but have left the active set.
	if s.Text() != "Active Notes: None" {
		t.Errorf("Text after batch release = %q, want %q", s.Text(), "Active Notes: None")
	}

	clock.advance(DefaultDecayDuration)
	b.Scheduler().Advance()
	if s.Text() != "Active Notes: None" {
		t.Errorf("Text after fades finish = %q, want %q", s.Text(), "Active Notes: None")
	}
}
