package vars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEase(t *testing.T) {
	start := time.Unix(0, 0)

	t.Run("samples over time", func(t *testing.T) {
		v := New(0.0)
		h := EaseNumber(v, 10, time.Second, Linear)

		Frame(start)
		assert.Equal(t, 0.0, v.Get())

		Frame(start.Add(500 * time.Millisecond))
		assert.Equal(t, 5.0, v.Get())
		assert.True(t, v.IsAnimating())
		assert.False(t, h.IsStopped())

		Frame(start.Add(time.Second))
		assert.Equal(t, 10.0, v.Get())
		assert.False(t, v.IsAnimating())
		assert.True(t, h.IsStopped())

		select {
		case <-h.Done():
		default:
			t.Error("done channel not closed")
		}
	})

	t.Run("snaps to the end value", func(t *testing.T) {
		v := New(0.0)
		EaseNumber(v, 10, time.Second, Elastic)

		Frame(start)
		Frame(start.Add(2 * time.Second))

		assert.Equal(t, 10.0, v.Get())
	})

	t.Run("plain writes wait for the animation", func(t *testing.T) {
		v := New(0)
		EaseNumber(v, 100, time.Second, Linear)

		Frame(start)
		Frame(start.Add(500 * time.Millisecond))

		v.Set(-1)
		Apply()
		assert.Equal(t, 50, v.Get())

		Frame(start.Add(time.Second))
		v.Set(-1)
		Apply()
		assert.Equal(t, -1, v.Get())
	})

	t.Run("new animation takes over", func(t *testing.T) {
		v := New(0.0)
		first := EaseNumber(v, 10, time.Second, Linear)
		Frame(start)

		second := EaseNumber(v, -10, time.Second, Linear)
		assert.True(t, first.IsStopped())
		assert.Greater(t, second.Importance(), first.Importance())

		Frame(start.Add(time.Second))
		Frame(start.Add(2 * time.Second))
		assert.Equal(t, -10.0, v.Get())
		assert.Equal(t, 0, RunningAnimations())
	})

	t.Run("animation through a mapped var takes over", func(t *testing.T) {
		v := New(0.0)
		doubled := MapBidi(v,
			func(v float64) float64 { return v * 2 },
			func(v float64) float64 { return v / 2 })

		first := EaseNumber(v, 10, time.Second, Linear)
		Frame(start)

		EaseNumber(doubled, 100, time.Second, Linear)
		Frame(start)
		Frame(start)

		assert.True(t, first.IsStopped())

		Frame(start.Add(time.Second))
		assert.Equal(t, 50.0, v.Get())
	})

	t.Run("stop releases the var", func(t *testing.T) {
		v := New(0)
		h := EaseNumber(v, 100, time.Second, Linear)

		Frame(start)
		Frame(start.Add(250 * time.Millisecond))
		h.Stop()
		Apply()

		assert.Equal(t, 25, v.Get())
		assert.False(t, v.IsAnimating())
		assert.Equal(t, uint64(0), v.ModifyImportance())

		v.Set(1)
		Apply()
		assert.Equal(t, 1, v.Get())
	})

	t.Run("step", func(t *testing.T) {
		v := New("off")
		Step(v, "on", 100*time.Millisecond)

		Frame(start)
		Frame(start.Add(50 * time.Millisecond))
		assert.Equal(t, "off", v.Get())

		Frame(start.Add(100 * time.Millisecond))
		assert.Equal(t, "on", v.Get())
	})

	t.Run("hooks see animation flag", func(t *testing.T) {
		v := New(0.0)

		var flags []bool
		v.Hook(func(args HookArgs[float64]) bool {
			flags = append(flags, args.IsAnimating)
			return true
		})

		SetEase(v, 1, 2, time.Second, Linear, LerpNumber[float64])
		Frame(start)
		Frame(start.Add(time.Second))

		assert.Equal(t, []bool{true, false}, flags)
	})
}

func TestLerpNumber(t *testing.T) {
	assert.Equal(t, 3, LerpNumber(0, 10, 0.26))
	assert.Equal(t, uint8(5), LerpNumber[uint8](10, 0, 0.5))
	assert.InDelta(t, 2.6, LerpNumber(0.0, 10.0, 0.26), 1e-9)
}
