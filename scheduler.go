package spiralkeys

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Defaults for the fade animation.
const (
	// DefaultDecayDuration is how long a fade takes from full brightness to
	// invisible, in wall-clock time.
	DefaultDecayDuration = 500 * time.Millisecond
)

// DefaultEndRadialFactor is the radial scale a segment shrinks to by the end
// of its fade.
const DefaultEndRadialFactor = 0.5

// decayTask is the transient fade record for one key. It exists only while
// the key is fading; it is destroyed on completion or cancellation.
type decayTask struct {
	key    Key
	start  time.Time
	last   time.Time
	alpha  *gween.Tween // 1 → 0 over Duration
	radial *gween.Tween // 1 → EndRadialFactor over Duration
}

// DecayScheduler advances every live fade from a single shared clock. Each
// task's progress is computed from wall-clock elapsed time, not tick count,
// so a fade completes in exactly Duration regardless of the tick rate.
// Tasks are fully independent of each other.
//
// At most one task is ever live per key: Schedule is cancel-and-replace.
type DecayScheduler struct {
	registry *Registry
	now      func() time.Time

	// Duration is the wall-clock length of every fade.
	Duration time.Duration
	// EndRadialFactor is the radial scale reached at the end of a fade.
	EndRadialFactor float64

	tasks []*decayTask
	index map[Key]*decayTask

	// OnAdvance fires after a task's visual parameters are written, every
	// tick the task is alive. The state machine uses it to move a freshly
	// struck key from Sustained into Decaying.
	OnAdvance func(Key)
	// OnComplete fires once when a fade reaches full progress, after the
	// task has been removed. The state machine uses it to return the key
	// to Idle.
	OnComplete func(Key)
}

// NewDecayScheduler creates a scheduler over the registry with default
// duration and end factor, clocked by time.Now.
func NewDecayScheduler(reg *Registry) *DecayScheduler {
	return &DecayScheduler{
		registry:        reg,
		now:             time.Now,
		Duration:        DefaultDecayDuration,
		EndRadialFactor: DefaultEndRadialFactor,
		index:           make(map[Key]*decayTask),
	}
}

// SetClock replaces the scheduler's wall clock. Tests inject a fake clock
// here; production code leaves time.Now in place.
func (s *DecayScheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Schedule starts a fade for key from full brightness. Any task already live
// for the key is cancelled and replaced, never stacked.
func (s *DecayScheduler) Schedule(key Key) {
	s.Cancel(key)

	dur := float32(s.Duration.Seconds())
	start := s.now()
	t := &decayTask{
		key:    key,
		start:  start,
		last:   start,
		alpha:  gween.New(1, 0, dur, ease.Linear),
		radial: gween.New(1, float32(s.EndRadialFactor), dur, ease.Linear),
	}
	s.tasks = append(s.tasks, t)
	s.index[key] = t
}

// Cancel removes the live task for key, if any, without touching the
// segment's visual state. Reports whether a task was removed.
func (s *DecayScheduler) Cancel(key Key) bool {
	t, ok := s.index[key]
	if !ok {
		return false
	}
	delete(s.index, key)
	for i, task := range s.tasks {
		if task == t {
			copy(s.tasks[i:], s.tasks[i+1:])
			s.tasks[len(s.tasks)-1] = nil
			s.tasks = s.tasks[:len(s.tasks)-1]
			break
		}
	}
	return true
}

// Has reports whether a fade is live for key.
func (s *DecayScheduler) Has(key Key) bool {
	_, ok := s.index[key]
	return ok
}

// Len returns the number of live fades.
func (s *DecayScheduler) Len() int {
	return len(s.tasks)
}

// Advance runs one tick of the shared clock: every live task's visual
// parameters are recomputed from its wall-clock elapsed time, and tasks that
// reach full progress are removed and reported through OnComplete. Work per
// call is O(live tasks). The callbacks must not call Schedule or Cancel;
// the sweep compacts the task list in place.
func (s *DecayScheduler) Advance() {
	if len(s.tasks) == 0 {
		return
	}
	now := s.now()

	// Completed tasks are compacted out in place during the sweep.
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		dt := float32(now.Sub(t.last).Seconds())
		if dt < 0 {
			dt = 0
		}
		t.last = now

		a, done := t.alpha.Update(dt)
		f, _ := t.radial.Update(dt)
		s.registry.SetVisual(t.key, float64(a), float64(f))

		if done {
			delete(s.index, t.key)
			if s.OnComplete != nil {
				s.OnComplete(t.key)
			}
			continue
		}
		kept = append(kept, t)
		if s.OnAdvance != nil {
			s.OnAdvance(t.key)
		}
	}
	// Clear the tail so dropped tasks are not retained.
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
