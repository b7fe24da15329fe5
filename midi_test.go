package spiralkeys

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestNoteNumber(t *testing.T) {
	cases := []struct {
		key  Key
		want uint8
	}{
		{Key{Octave: 0, PitchClass: 0}, 24},  // C1
		{Key{Octave: 0, PitchClass: 9}, 33},  // A1
		{Key{Octave: 2, PitchClass: 0}, 48},  // C3
		{Key{Octave: 4, PitchClass: 11}, 83}, // B5
	}
	for _, c := range cases {
		if got := noteNumber(c.key); got != c.want {
			t.Errorf("noteNumber(%s) = %d, want %d", c.key.Name(), got, c.want)
		}
	}
}

func TestPortExcluded(t *testing.T) {
	cases := map[string]bool{
		"Midi Through 14:0":    true,
		"Midi Through Port-0":  true,
		"Dummy":                true,
		"FLUID Synth (qsynth)": false,
		"USB MIDI Interface":   false,
	}
	for name, want := range cases {
		if got := portExcluded(name); got != want {
			t.Errorf("portExcluded(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMIDIEchoNoteLifecycle(t *testing.T) {
	var sent []midi.Message
	e := &MIDIEcho{
		send:     func(msg midi.Message) error { sent = append(sent, msg); return nil },
		Velocity: 100,
		sounding: make(map[Key]bool),
	}
	key := Key{Octave: 2, PitchClass: 0} // C3, note 48

	e.KeyStruck(key)
	if len(sent) != 1 {
		t.Fatalf("got %d messages after strike, want 1", len(sent))
	}
	var ch, note, vel uint8
	if !sent[0].GetNoteStart(&ch, &note, &vel) {
		t.Fatalf("message %v is not a note start", sent[0])
	}
	if note != 48 || vel != 100 {
		t.Errorf("note start = (%d, %d), want (48, 100)", note, vel)
	}

	// A re-strike while sounding retriggers: off then on.
	e.KeyStruck(key)
	if len(sent) != 3 {
		t.Fatalf("got %d messages after re-strike, want 3", len(sent))
	}
	if !sent[1].GetNoteEnd(&ch, &note) || note != 48 {
		t.Errorf("re-strike did not lead with a note end: %v", sent[1])
	}
	if !sent[2].GetNoteStart(&ch, &note, &vel) {
		t.Errorf("re-strike did not retrigger: %v", sent[2])
	}

	e.KeyReleased(key)
	if len(sent) != 4 || !sent[3].GetNoteEnd(&ch, &note) {
		t.Fatalf("release did not send a note end: %v", sent)
	}

	// Releasing a silent key sends nothing.
	e.KeyReleased(key)
	if len(sent) != 4 {
		t.Errorf("release of a silent key sent %d extra messages", len(sent)-4)
	}
}
