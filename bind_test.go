package vars

import (
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBind(t *testing.T) {
	t.Run("one way", func(t *testing.T) {
		a, b := New(0), New(0)
		Bind(a, b)

		a.Set(5)
		id := Apply()

		assert.Equal(t, 5, b.Get())
		assert.Equal(t, id, b.LastUpdate(), "bound writes land in the same cycle")

		b.Set(7)
		Apply()
		assert.Equal(t, 5, a.Get())
	})

	t.Run("map", func(t *testing.T) {
		a, b := New(1), New("")
		BindMap(a, b, strconv.Itoa)

		a.Set(2)
		Apply()
		assert.Equal(t, "2", b.Get())
	})

	t.Run("set bind", func(t *testing.T) {
		a, b := New(3), New(0)
		SetBind(a, b)
		Apply()
		assert.Equal(t, 3, b.Get())

		a.Set(4)
		Apply()
		assert.Equal(t, 4, b.Get())
	})

	t.Run("bidi terminates", func(t *testing.T) {
		a, b := New(0), New(0)
		BindBidi(a, b)

		aCalls, bCalls := 0, 0
		a.Hook(func(HookArgs[int]) bool { aCalls++; return true })
		b.Hook(func(HookArgs[int]) bool { bCalls++; return true })

		a.Set(5)
		Apply()
		assert.Equal(t, 5, a.Get())
		assert.Equal(t, 5, b.Get())

		b.Set(6)
		Apply()
		assert.Equal(t, 6, a.Get())
		assert.Equal(t, 6, b.Get())

		assert.Equal(t, 2, aCalls)
		assert.Equal(t, 2, bCalls)
	})

	t.Run("bidi map", func(t *testing.T) {
		n, s := New(1), New("1")
		BindMapBidi(n, s, strconv.Itoa, func(s string) int {
			v, _ := strconv.Atoi(s)
			return v
		})

		s.Set("42")
		Apply()
		assert.Equal(t, 42, n.Get())

		n.Set(7)
		Apply()
		assert.Equal(t, "7", s.Get())
	})

	t.Run("unhook", func(t *testing.T) {
		a, b := New(0), New(0)
		h := BindBidi(a, b)
		h.Unhook()

		a.Set(1)
		Apply()
		assert.Equal(t, 0, b.Get())
	})

	t.Run("dropped target unbinds", func(t *testing.T) {
		a := New(0).(*rwVar[int])
		func() {
			Bind[int](a, New(0))
		}()
		assert.Equal(t, 1, a.hookCount())

		runtime.GC()

		a.Set(1)
		Apply()
		assert.Equal(t, 0, a.hookCount())
	})
}

func TestHandles(t *testing.T) {
	t.Run("release", func(t *testing.T) {
		a, b := New(0), New(0)

		calls := 0
		var handles Handles
		handles.Push(a.Hook(func(HookArgs[int]) bool { calls++; return true }))
		handles.PushBinding(BindBidi(a, b))

		released := false
		handles.OnRelease(func() { released = true })
		assert.Equal(t, 3, handles.Len())

		handles.Release()
		assert.True(t, released)
		assert.Equal(t, 0, handles.Len())

		a.Set(1)
		Apply()
		assert.Equal(t, 0, calls)
		assert.Equal(t, 0, b.Get())
	})

	t.Run("perm", func(t *testing.T) {
		a := New(0)

		calls := 0
		var handles Handles
		h := a.Hook(func(HookArgs[int]) bool { calls++; return true })
		handles.Push(h)
		handles.Perm()

		h.Unhook()
		a.Set(1)
		Apply()
		assert.Equal(t, 1, calls)
	})

	t.Run("stops animations", func(t *testing.T) {
		v := New(0.0)

		var handles Handles
		anim := EaseNumber(v, 1, 0, Linear)
		handles.PushAnimation(anim)
		handles.Release()

		assert.True(t, anim.IsStopped())
		Apply()
		AdvanceAnimations(time.Now())
		assert.Equal(t, 0, RunningAnimations())
	})
}
