package vars

import (
	"math"
	"time"

	"github.com/AnatoleLucet/vars/internal"
)

// Number is a type LerpNumber can interpolate.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// LerpFn returns the value at progress t between from and to.
type LerpFn[T any] func(from, to T, t float64) T

// LerpNumber interpolates linearly, integers are rounded to the nearest value.
func LerpNumber[T Number](from, to T, t float64) T {
	x := float64(from) + (float64(to)-float64(from))*t

	var one T = 1
	if one/2 == 0 {
		return T(math.Round(x))
	}
	return T(x)
}

// AnimationHandle controls a running animation.
type AnimationHandle struct {
	a *internal.Animation
}

// Stop ends the animation at its current value and lets plain writes through again.
func (h *AnimationHandle) Stop() { h.a.Stop() }

// IsStopped reports whether the animation completed, was stopped or was replaced.
func (h *AnimationHandle) IsStopped() bool { return h.a.IsStopped() }

// Done is closed when the animation ends for any reason.
func (h *AnimationHandle) Done() <-chan struct{} { return h.a.Done() }

func (h *AnimationHandle) Importance() uint64 { return h.a.Importance() }

// Ease animates v from its current value to to over d.
// The animation starts on the next Frame; until it ends, plain writes to v are ignored.
func Ease[T any](v Var[T], to T, d time.Duration, easing EasingFn, lerp LerpFn[T]) *AnimationHandle {
	return SetEase(v, v.Get(), to, d, easing, lerp)
}

// EaseNumber is Ease with linear interpolation of numbers.
func EaseNumber[T Number](v Var[T], to T, d time.Duration, easing EasingFn) *AnimationHandle {
	return Ease(v, to, d, easing, LerpNumber[T])
}

// SetEase animates v from from to to over d.
func SetEase[T any](v Var[T], from, to T, d time.Duration, easing EasingFn, lerp LerpFn[T]) *AnimationHandle {
	if easing == nil {
		easing = Linear
	}

	return animate(v, d, func(factor float64) (T, bool) {
		if factor >= 1 {
			return to, true
		}
		return lerp(from, to, easing(factor)), true
	})
}

// Step holds the value of v for delay and then sets it to to.
func Step[T any](v Var[T], to T, delay time.Duration) *AnimationHandle {
	return animate(v, delay, func(factor float64) (T, bool) {
		return to, factor >= 1
	})
}

// animate starts an animation writing sample(factor) to v on every frame.
// The animation holds v weakly, once v is collected the samples do nothing.
func animate[T any](v Var[T], d time.Duration, sample func(factor float64) (T, bool)) *AnimationHandle {
	w := v.Downgrade()
	rt := internal.GetRuntime()

	a := rt.StartAnimation(internal.AnimationConfig{
		Target:   v.ID(),
		Duration: d,
		Sample: func(factor float64) {
			v, ok := w.Upgrade()
			if !ok {
				return
			}
			value, ok := sample(factor)
			v.Modify(func(m *VarModify[T]) {
				if ok {
					m.Set(value)
				}
			})
		},
		Release: func() {
			if v, ok := w.Upgrade(); ok {
				v.Modify(func(*VarModify[T]) {})
			}
		},
		ImportanceOf: func() uint64 {
			if v, ok := w.Upgrade(); ok {
				return v.ModifyImportance()
			}
			return 0
		},
	})

	return &AnimationHandle{a}
}

// AdvanceAnimations samples every running animation at now and returns how many are still running.
// The samples are committed by the next Apply.
func AdvanceAnimations(now time.Time) int {
	return internal.GetRuntime().AdvanceAnimations(now)
}

// RunningAnimations returns how many animations are registered.
func RunningAnimations() int {
	return internal.GetRuntime().RunningAnimations()
}

// Frame advances the animations to now and applies the resulting writes.
// It is meant to be called once per frame by the host, it returns how many
// animations are still running.
func Frame(now time.Time) int {
	n := AdvanceAnimations(now)
	Apply()
	return n
}
