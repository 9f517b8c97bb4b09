package internal

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHookList(t *testing.T) {
	t.Run("notify and drop", func(t *testing.T) {
		l := NewHookList()

		var log []string
		l.Add(func(*HookArgs) bool { log = append(log, "keep"); return true })
		l.Add(func(*HookArgs) bool { log = append(log, "once"); return false })

		assert.Equal(t, 2, l.Notify(&HookArgs{}))
		assert.Equal(t, 1, l.Notify(&HookArgs{}))
		assert.Equal(t, []string{"keep", "once", "keep"}, log)
	})

	t.Run("hooks added while notifying wait for the next notify", func(t *testing.T) {
		l := NewHookList()

		calls := 0
		l.Add(func(*HookArgs) bool {
			l.Add(func(*HookArgs) bool { calls++; return true })
			return false
		})

		l.Notify(&HookArgs{})
		assert.Equal(t, 0, calls)

		l.Notify(&HookArgs{})
		assert.Equal(t, 1, calls)
	})

	t.Run("handle", func(t *testing.T) {
		l := NewHookList()

		h := l.Add(func(*HookArgs) bool { return true })
		assert.True(t, h.IsAlive())
		assert.False(t, h.IsPerm())

		h.Unhook()
		assert.False(t, h.IsAlive())
		assert.Equal(t, 0, l.Len())
	})

	t.Run("perm handle", func(t *testing.T) {
		l := NewHookList()

		h := l.Add(func(*HookArgs) bool { return true })
		h.Perm()
		h.Unhook()

		assert.True(t, h.IsPerm())
		assert.Equal(t, 1, l.Len())
	})

	t.Run("nil handle", func(t *testing.T) {
		var h *HookHandle

		assert.NotPanics(t, h.Unhook)
		assert.NotPanics(t, h.Perm)
		assert.False(t, h.IsAlive())
	})

	t.Run("handle does not keep the list alive", func(t *testing.T) {
		h := NewHookList().Add(func(*HookArgs) bool { return true })

		runtime.GC()

		assert.False(t, h.IsAlive())
		assert.NotPanics(t, h.Unhook)
	})
}

func TestCaps(t *testing.T) {
	c := CapsReadOnly.With(CapsChange)

	assert.True(t, c.Has(CapsReadOnly))
	assert.True(t, c.Has(CapsReadOnly|CapsChange))
	assert.False(t, c.Has(CapsStatic))
	assert.False(t, c.Without(CapsChange).Has(CapsChange))
}
