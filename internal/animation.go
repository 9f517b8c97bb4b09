package internal

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Animation samples a transition once per frame.
type Animation struct {
	id         uint64
	importance uint64
	target     uint64
	duration   time.Duration

	started bool
	start   time.Time

	// sample writes the value for factor in [0, 1]
	sample func(factor float64)
	// release gives the target back to plain writes without changing its value
	release func()
	// importanceOf reads the current modify importance of the target
	importanceOf func() uint64

	stopped  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once

	rt *Runtime
}

type Animations struct {
	mu      sync.Mutex
	nextID  uint64
	running []*Animation
}

func NewAnimations() *Animations {
	return &Animations{}
}

// AnimationConfig describes an animation to start.
type AnimationConfig struct {
	Target       uint64
	Duration     time.Duration
	Sample       func(factor float64)
	Release      func()
	ImportanceOf func() uint64
}

// StartAnimation registers an animation, cancelling any other animation on the same target.
// It is sampled on the next AdvanceAnimations.
func (r *Runtime) StartAnimation(config AnimationConfig) *Animation {
	a := &Animation{
		importance:   r.scheduler.NextImportance(),
		target:       config.Target,
		duration:     config.Duration,
		sample:       config.Sample,
		release:      config.Release,
		importanceOf: config.ImportanceOf,
		done:         make(chan struct{}),
		rt:           r,
	}

	r.animations.mu.Lock()
	r.animations.nextID++
	a.id = r.animations.nextID
	for _, other := range r.animations.running {
		if other.target == a.target {
			// the new animation takes over, its importance is higher
			other.cancel()
		}
	}
	r.animations.running = append(r.animations.running, a)
	n := len(r.animations.running)
	r.animations.mu.Unlock()

	r.Options().Metrics.setAnimations(n)

	return a
}

// AdvanceAnimations samples every running animation at now and returns how many are still running.
// The samples are queued writes, they are committed by the next Apply.
// It is driven by a single frame loop and must not be called concurrently.
func (r *Runtime) AdvanceAnimations(now time.Time) int {
	r.animations.mu.Lock()
	running := slices.Clone(r.animations.running)
	r.animations.mu.Unlock()

	var finished []*Animation
	for _, a := range running {
		if a.stopped.Load() {
			finished = append(finished, a)
			continue
		}

		if a.importanceOf != nil && a.importanceOf() > a.importance {
			// another animation wrote with higher importance
			a.cancel()
			finished = append(finished, a)
			continue
		}

		if !a.started {
			a.started = true
			a.start = now
		}

		factor := 1.0
		if a.duration > 0 {
			factor = min(float64(now.Sub(a.start))/float64(a.duration), 1)
		}
		final := factor >= 1

		info := ModifyInfo{Importance: a.importance, Animation: true, Final: final}
		r.tracker.RunWithModify(info, func() { a.sample(factor) })

		if final {
			a.finish()
			finished = append(finished, a)
		}
	}

	r.animations.mu.Lock()
	r.animations.running = slices.DeleteFunc(r.animations.running, func(a *Animation) bool {
		return slices.Contains(finished, a) || a.stopped.Load()
	})
	n := len(r.animations.running)
	r.animations.mu.Unlock()

	r.Options().Metrics.setAnimations(n)

	return n
}

// RunningAnimations returns how many animations are registered.
func (r *Runtime) RunningAnimations() int {
	r.animations.mu.Lock()
	defer r.animations.mu.Unlock()

	return len(r.animations.running)
}

func (a *Animation) Importance() uint64 { return a.importance }

func (a *Animation) IsStopped() bool { return a.stopped.Load() }

// Done is closed when the animation completes or stops.
func (a *Animation) Done() <-chan struct{} { return a.done }

// Stop ends the animation where it is and releases its target for plain writes.
func (a *Animation) Stop() {
	if !a.stopped.CompareAndSwap(false, true) {
		return
	}

	if a.release != nil {
		info := ModifyInfo{Importance: a.importance, Animation: true, Final: true}
		a.rt.tracker.RunWithModify(info, a.release)
	}
	a.closeDone()
}

func (a *Animation) cancel() {
	a.stopped.Store(true)
	a.closeDone()
}

func (a *Animation) finish() {
	a.stopped.Store(true)
	a.closeDone()
}

func (a *Animation) closeDone() {
	a.doneOnce.Do(func() { close(a.done) })
}
