package vars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEasing(t *testing.T) {
	curves := map[string]EasingFn{
		"linear":  Linear,
		"quad":    Quad,
		"cubic":   Cubic,
		"quart":   Quart,
		"quint":   Quint,
		"sine":    Sine,
		"expo":    Expo,
		"circ":    Circ,
		"back":    Back,
		"elastic": Elastic,
		"bounce":  Bounce,
	}
	modes := map[string]func(EasingFn) EasingFn{
		"in":     EaseIn,
		"out":    EaseOut,
		"in-out": EaseInOut,
		"out-in": EaseOutIn,
	}

	for name, curve := range curves {
		for mode, apply := range modes {
			t.Run(name+" "+mode, func(t *testing.T) {
				f := apply(curve)
				assert.InDelta(t, 0, f(0), 1e-3)
				assert.InDelta(t, 1, f(1), 1e-3)
			})
		}
	}

	t.Run("in-out is symmetric", func(t *testing.T) {
		f := EaseInOut(Cubic)
		assert.InDelta(t, 0.5, f(0.5), 1e-9)
		assert.InDelta(t, 1-f(0.2), f(0.8), 1e-9)
	})

	t.Run("back overshoots", func(t *testing.T) {
		assert.Less(t, Back(0.2), 0.0)
		assert.Greater(t, EaseOut(Back)(0.8), 1.0)
	})

	t.Run("steps", func(t *testing.T) {
		f := StepEasing(4)
		assert.Equal(t, 0.0, f(0.2))
		assert.Equal(t, 0.25, f(0.3))
		assert.Equal(t, 0.75, f(0.99))
		assert.Equal(t, 1.0, f(1))

		assert.Equal(t, 1.0, StepEasing(0)(1))
	})
}
