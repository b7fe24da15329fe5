// Command spiralkeys opens the interactive spiral piano keyboard.
//
// Click a segment to light it. With -auto-decay, every strike fades out on
// its own; without it, lit keys sustain until Space releases them all in one
// batch. A toggles auto-decay at runtime.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/arpeggia/spiralkeys"
)

func main() {
	octaves := flag.Int("octaves", spiralkeys.DefaultOctaves, "number of octave rings on the spiral")
	autoDecay := flag.Bool("auto-decay", false, "fade keys automatically after each strike")
	duration := flag.Duration("duration", spiralkeys.DefaultDecayDuration, "length of one fade")
	useMIDI := flag.Bool("midi", false, "echo strikes to the first available MIDI output")
	debug := flag.Bool("debug", false, "log per-tick stats and enable invariant checks")
	flag.Parse()

	piano := spiralkeys.NewPiano(spiralkeys.RunConfig{
		Octaves:   *octaves,
		AutoDecay: *autoDecay,
		Duration:  *duration,
		Debug:     *debug,
	})

	if *useMIDI {
		echo, err := spiralkeys.NewMIDIEcho()
		if err != nil {
			fmt.Fprintf(os.Stderr, "midi disabled: %v\n", err)
		} else {
			defer echo.Close()
			piano.Board().AddListener(echo)
			fmt.Fprintf(os.Stderr, "midi echo on %s\n", echo.PortName())
		}
	}

	if err := spiralkeys.Run(piano, "spiralkeys"); err != nil {
		log.Fatal(err)
	}
}
