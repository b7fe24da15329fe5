package spiralkeys

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// excludedPortPatterns are virtual/system ports never auto-selected.
var excludedPortPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// MIDIEcho forwards key activity to a MIDI output port: a strike becomes a
// NoteOn, leaving the active set becomes a NoteOff. Pure event egress — no
// synthesis happens here. Implements Listener.
type MIDIEcho struct {
	drv  *rtmididrv.Driver
	out  drivers.Out
	send func(msg midi.Message) error

	// Channel is the MIDI channel (0-15) notes are sent on.
	Channel uint8
	// Velocity is the NoteOn velocity for every strike.
	Velocity uint8

	sounding map[Key]bool
}

// NewMIDIEcho opens the first usable MIDI output port. Returns an error when
// no driver or no real port is available; the instrument works fine without
// one.
func NewMIDIEcho() (*MIDIEcho, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	outs, err := drv.Outs()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("list midi outputs: %w", err)
	}

	var out drivers.Out
	for _, o := range outs {
		if portExcluded(o.String()) {
			continue
		}
		out = o
		break
	}
	if out == nil {
		drv.Close()
		return nil, fmt.Errorf("no usable midi output port")
	}

	send, err := midi.SendTo(out)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open midi output %q: %w", out.String(), err)
	}

	return &MIDIEcho{
		drv:      drv,
		out:      out,
		send:     send,
		Velocity: 100,
		sounding: make(map[Key]bool),
	}, nil
}

// PortName returns the name of the connected output port.
func (e *MIDIEcho) PortName() string {
	return e.out.String()
}

// KeyStruck sends a NoteOn for the key. A re-strike of a key that is still
// sounding sends a NoteOff first so the receiver retriggers cleanly.
func (e *MIDIEcho) KeyStruck(key Key) {
	n := noteNumber(key)
	if e.sounding[key] {
		_ = e.send(midi.NoteOff(e.Channel, n))
	}
	_ = e.send(midi.NoteOn(e.Channel, n, e.Velocity))
	e.sounding[key] = true
}

// KeyReleased sends a NoteOff for the key if it is still sounding.
func (e *MIDIEcho) KeyReleased(key Key) {
	if !e.sounding[key] {
		return
	}
	_ = e.send(midi.NoteOff(e.Channel, noteNumber(key)))
	delete(e.sounding, key)
}

// Close silences anything still sounding and shuts the driver down.
func (e *MIDIEcho) Close() error {
	for key := range e.sounding {
		_ = e.send(midi.NoteOff(e.Channel, noteNumber(key)))
		delete(e.sounding, key)
	}
	return e.drv.Close()
}

// noteNumber maps a key to its MIDI note. Display octave 1 is the octave of
// MIDI note 24 (C1), so C on the innermost ring sounds as C1.
func noteNumber(k Key) uint8 {
	return uint8(12*(k.Octave+2) + k.PitchClass)
}

func portExcluded(name string) bool {
	for _, pat := range excludedPortPatterns {
		if strings.Contains(name, pat) {
			return true
		}
	}
	return false
}
