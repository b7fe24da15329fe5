// Package spiralkeys implements an interactive logarithmic-spiral piano
// keyboard for [Ebitengine]: angular position encodes pitch class, each
// revolution is one octave, and the radius doubles per turn.
//
// Clicking a segment lights it. Depending on the auto-decay mode, a lit key
// either fades out on its own over a fixed wall-clock duration or sustains
// until an explicit batch release. Many keys fade concurrently from a single
// shared frame clock, and the renderer restores a cached snapshot of the
// static scene each frame instead of repainting it.
//
// # Quick start
//
//	piano := spiralkeys.NewPiano(spiralkeys.RunConfig{AutoDecay: true})
//	if err := spiralkeys.Run(piano, "spiralkeys"); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, [Piano] implements ebiten.Game directly.
//
// # Architecture
//
// [Spiral] is the pure geometry model; [Registry] owns one [Segment] per
// key; [HitTester] resolves pointer coordinates to keys; [Board] is the
// highlight state machine consuming discrete commands; [DecayScheduler]
// advances every live fade from one clock using [gween] tweens; and
// [Compositor] restores the static snapshot and paints only the segments
// that are currently visible.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package spiralkeys
