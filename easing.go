package vars

import "math"

// EasingFn maps linear time in [0, 1] to animation progress.
// Progress may leave [0, 1] for overshooting curves such as Back and Elastic,
// but it is 0 at 0 and 1 at 1.
//
// The predefined curves are in their "ease in" form, use EaseOut, EaseInOut and
// EaseOutIn to derive the other forms.
type EasingFn func(t float64) float64

var (
	Linear EasingFn = func(t float64) float64 { return t }
	Quad   EasingFn = func(t float64) float64 { return t * t }
	Cubic  EasingFn = func(t float64) float64 { return t * t * t }
	Quart  EasingFn = func(t float64) float64 { return t * t * t * t }
	Quint  EasingFn = func(t float64) float64 { return t * t * t * t * t }
	Sine   EasingFn = func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }
	Circ   EasingFn = func(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

	Expo EasingFn = func(t float64) float64 {
		if t == 0 {
			return 0
		}
		return math.Pow(2, 10*(t-1))
	}

	Back EasingFn = func(t float64) float64 {
		const s = 1.70158
		return t * t * ((s+1)*t - s)
	}

	Elastic EasingFn = func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		return -math.Pow(2, 10*(t-1)) * math.Sin((t-1.075)*(2*math.Pi)/0.3)
	}

	// Bounce hits the end value several times with decreasing height.
	Bounce EasingFn = func(t float64) float64 { return 1 - bounceOut(1-t) }
)

func bounceOut(t float64) float64 {
	const n, d = 7.5625, 2.75

	switch {
	case t < 1/d:
		return n * t * t
	case t < 2/d:
		t -= 1.5 / d
		return n*t*t + 0.75
	case t < 2.5/d:
		t -= 2.25 / d
		return n*t*t + 0.9375
	default:
		t -= 2.625 / d
		return n*t*t + 0.984375
	}
}

func EaseIn(f EasingFn) EasingFn { return f }

func EaseOut(f EasingFn) EasingFn {
	return func(t float64) float64 { return 1 - f(1-t) }
}

func EaseInOut(f EasingFn) EasingFn {
	return func(t float64) float64 {
		if t < 0.5 {
			return f(2*t) / 2
		}
		return 1 - f(2*(1-t))/2
	}
}

func EaseOutIn(f EasingFn) EasingFn {
	out := EaseOut(f)
	return func(t float64) float64 {
		if t < 0.5 {
			return out(2*t) / 2
		}
		return 0.5 + f(2*t-1)/2
	}
}

// StepEasing jumps in n equal steps, the last one at t = 1.
func StepEasing(n int) EasingFn {
	if n < 1 {
		n = 1
	}
	steps := float64(n)
	return func(t float64) float64 {
		return math.Floor(t*steps) / steps
	}
}
