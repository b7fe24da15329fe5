package spiralkeys

import "sort"

// Listener receives key activity from the board. Implementations must not
// call back into the board. Used for egress such as the MIDI echo.
type Listener interface {
	// KeyStruck fires when a key lights up, including a re-strike of a
	// fading key.
	KeyStruck(key Key)
	// KeyReleased fires when a key leaves the active set: a toggle-off, a
	// completed fade, or a batch release.
	KeyReleased(key Key)
}

// Board is the highlight state machine. Every input event arrives as a
// discrete, synchronously processed command — Strike, ReleaseAll,
// SetAutoDecay — mutating the segment registry through well-defined
// transitions. The board owns the active set and the decay scheduler.
//
// Single-threaded by design: commands and scheduler ticks run on the same
// goroutine, so a strike and its visual feedback are never observed out of
// order.
type Board struct {
	registry  *Registry
	scheduler *DecayScheduler

	autoDecay bool
	active    map[Key]struct{}

	listeners []Listener
	onChanged func(names []string)

	namesBuf []string // reused by notifyChanged
	keysBuf  []Key
}

// NewBoard wires a board over the registry with a fresh decay scheduler.
func NewBoard(reg *Registry) *Board {
	b := &Board{
		registry: reg,
		active:   make(map[Key]struct{}),
	}
	sch := NewDecayScheduler(reg)
	sch.OnAdvance = b.decayAdvanced
	sch.OnComplete = b.decayFinished
	b.scheduler = sch
	return b
}

// Scheduler returns the board's decay scheduler, for tick driving and for
// configuring duration, end factor, and clock.
func (b *Board) Scheduler() *DecayScheduler {
	return b.scheduler
}

// AutoDecay reports whether a strike immediately schedules a fade.
func (b *Board) AutoDecay() bool {
	return b.autoDecay
}

// SetAutoDecay toggles automatic fading. Turning it on while keys are still
// sustained releases them all into a fade, so no key is left lit forever in
// a mode that has no manual release.
func (b *Board) SetAutoDecay(on bool) {
	if b.autoDecay == on {
		return
	}
	b.autoDecay = on
	if on {
		b.releaseAll()
	}
}

// AddListener registers a key activity listener.
func (b *Board) AddListener(l Listener) {
	b.listeners = append(b.listeners, l)
}

// OnActiveSetChanged registers a push callback invoked with the ordered
// active key names after every change to the active set. The slice is reused
// between calls; callers must not retain it.
func (b *Board) OnActiveSetChanged(fn func(names []string)) {
	b.onChanged = fn
	b.notifyChanged()
}

// Strike processes a resolved pointer click on a key. The transition depends
// on the key's current state:
//
//   - Idle: light the key; in auto-decay mode, also schedule its fade.
//   - Sustained: toggle it off immediately (a second strike of a lit,
//     non-fading key releases it).
//   - Decaying: re-strike — cancel the in-flight fade and restart from full
//     brightness. A second strike is never weaker than the remaining decay.
//
// Unknown keys are ignored.
func (b *Board) Strike(key Key) {
	seg, ok := b.registry.Get(key)
	if !ok {
		return
	}

	switch seg.State {
	case StateIdle:
		b.sustain(key)
	case StateSustained:
		b.release(key)
	case StateDecaying:
		b.scheduler.Cancel(key)
		b.sustain(key)
	}
	b.notifyChanged()
}

// ReleaseAll fades out every currently lit key in one pass: the active set
// empties immediately while each key fades under its own task. Consumed only
// when auto-decay is off (in auto mode every key already fades on its own);
// the board also uses it internally when auto-decay is switched on.
func (b *Board) ReleaseAll() {
	if b.autoDecay {
		return
	}
	b.releaseAll()
}

func (b *Board) releaseAll() {
	keys := b.keysBuf[:0]
	b.registry.ForEach(func(seg *Segment) {
		if seg.State == StateSustained {
			keys = append(keys, seg.Key)
		}
	})
	b.keysBuf = keys
	if len(keys) == 0 {
		return
	}

	for _, k := range keys {
		delete(b.active, k)
		for _, l := range b.listeners {
			l.KeyReleased(k)
		}
		b.registry.SetVisual(k, 1, 1)
		b.registry.SetState(k, StateDecaying)
		b.scheduler.Schedule(k)
	}
	b.notifyChanged()
}

// sustain lights the key at full brightness and, in auto-decay mode, queues
// its fade. The key stays logically Sustained until the scheduler first
// advances the task, so an immediate second strike still reads as a toggle.
func (b *Board) sustain(key Key) {
	b.registry.SetVisual(key, 1, 1)
	b.registry.SetState(key, StateSustained)
	b.active[key] = struct{}{}
	for _, l := range b.listeners {
		l.KeyStruck(key)
	}
	if b.autoDecay {
		b.scheduler.Schedule(key)
	}
}

// release returns the key to Idle immediately, cancelling any pending fade.
func (b *Board) release(key Key) {
	b.scheduler.Cancel(key)
	seg, _ := b.registry.Get(key)
	b.registry.SetVisual(key, 0, seg.RadialFactor)
	b.registry.SetState(key, StateIdle)
	delete(b.active, key)
	for _, l := range b.listeners {
		l.KeyReleased(key)
	}
}

// decayAdvanced runs every tick a fade is alive: a key that was struck with
// a pending fade moves from Sustained into Decaying on the first advance.
func (b *Board) decayAdvanced(key Key) {
	seg, ok := b.registry.Get(key)
	if !ok {
		return
	}
	if seg.State == StateSustained {
		b.registry.SetState(key, StateDecaying)
	}
}

// decayFinished is the "fade complete" transition: the key returns to Idle.
// After a batch release the key has already left the active set; listeners
// hear a release only when the key is still a member.
func (b *Board) decayFinished(key Key) {
	seg, ok := b.registry.Get(key)
	if !ok {
		return
	}
	b.registry.SetVisual(key, 0, seg.RadialFactor)
	b.registry.SetState(key, StateIdle)
	if _, member := b.active[key]; member {
		delete(b.active, key)
		for _, l := range b.listeners {
			l.KeyReleased(key)
		}
	}
	b.notifyChanged()
}

// ActiveNames returns the names of all keys in the active set, ordered by
// octave then pitch class. The pull interface for the status display; the
// returned slice is reused between calls.
func (b *Board) ActiveNames() []string {
	keys := b.keysBuf[:0]
	for k := range b.active {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	b.keysBuf = keys

	names := b.namesBuf[:0]
	for _, k := range keys {
		names = append(names, k.Name())
	}
	b.namesBuf = names
	return names
}

// ActiveLen returns the size of the active set.
func (b *Board) ActiveLen() int {
	return len(b.active)
}

// notifyChanged pushes the current ordered names to the registered callback.
func (b *Board) notifyChanged() {
	if b.onChanged == nil {
		return
	}
	b.onChanged(b.ActiveNames())
}
