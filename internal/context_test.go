package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextStack(t *testing.T) {
	t.Run("innermost wins", func(t *testing.T) {
		s := NewContextStack()

		popA := s.Push(1, "a")
		popB := s.Push(1, "b")
		popOther := s.Push(2, "other")

		v, ok := s.Get(1)
		assert.True(t, ok)
		assert.Equal(t, "b", v)

		popOther()
		popB()
		v, _ = s.Get(1)
		assert.Equal(t, "a", v)

		popA()
		_, ok = s.Get(1)
		assert.False(t, ok)
		assert.Equal(t, 0, s.Depth())
	})

	t.Run("pop twice is a no-op", func(t *testing.T) {
		s := NewContextStack()

		s.Push(1, "a")
		pop := s.Push(1, "b")
		pop()
		pop()

		assert.Equal(t, 1, s.Depth())
	})

	t.Run("misnested pop panics", func(t *testing.T) {
		s := NewContextStack()

		popA := s.Push(1, "a")
		s.Push(1, "b")

		assert.PanicsWithError(t, (&ContextStackError{Depth: 2}).Error(), popA)
	})
}

func TestAmbient(t *testing.T) {
	assert.Nil(t, AmbientStack())

	WithAmbient(1, "outer", func() {
		WithAmbient(1, "inner", func() {
			v, _ := AmbientStack().Get(1)
			assert.Equal(t, "inner", v)
		})

		v, _ := AmbientStack().Get(1)
		assert.Equal(t, "outer", v)

		var wg sync.WaitGroup
		wg.Go(func() {
			assert.Nil(t, AmbientStack())
		})
		wg.Wait()
	})

	assert.Nil(t, AmbientStack(), "empty stacks are dropped")
}
