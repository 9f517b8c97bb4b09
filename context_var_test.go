package vars

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextVar(t *testing.T) {
	t.Run("ambient scoping", func(t *testing.T) {
		theme := NewContextVar("light")
		assert.Equal(t, "light", theme.Get())

		WithContextValue(theme, "dark", func() {
			assert.Equal(t, "dark", theme.Get())

			WithContextValue(theme, "contrast", func() {
				assert.Equal(t, "contrast", theme.Get())
			})

			assert.Equal(t, "dark", theme.Get())
		})

		assert.Equal(t, "light", theme.Get())
	})

	t.Run("explicit scope", func(t *testing.T) {
		theme := NewContextVar("light")
		scope := NewScope()

		assert.Equal(t, "light", theme.GetIn(scope))

		WithContextVarIn(scope, theme, Const("dark"), func() {
			assert.Equal(t, "dark", theme.GetIn(scope))
			// the ambient stack is untouched
			assert.Equal(t, "light", theme.Get())
		})

		assert.Equal(t, "light", theme.GetIn(scope))
		assert.Equal(t, 0, scope.Depth())
	})

	t.Run("pop on panic", func(t *testing.T) {
		theme := NewContextVar("light")
		scope := NewScope()

		assert.Panics(t, func() {
			WithContextVarIn(scope, theme, Const("dark"), func() {
				panic("boom")
			})
		})
		assert.Equal(t, 0, scope.Depth())
	})

	t.Run("misnested pop panics", func(t *testing.T) {
		theme := NewContextVar("light")
		scope := NewScope()

		popOuter := PushContextVar(scope, theme, Const("dark"))
		popInner := PushContextVar(scope, theme, Const("contrast"))

		var stackErr *ContextStackError
		func() {
			defer func() {
				err, ok := recover().(error)
				require.True(t, ok)
				assert.ErrorAs(t, err, &stackErr)
			}()
			popOuter()
		}()

		popInner()
		assert.Equal(t, "dark", theme.GetIn(scope))
	})

	t.Run("goroutines have their own context", func(t *testing.T) {
		theme := NewContextVar("light")

		WithContextValue(theme, "dark", func() {
			var wg sync.WaitGroup
			var other string
			wg.Go(func() { other = theme.Get() })
			wg.Wait()

			assert.Equal(t, "light", other)
		})
	})

	t.Run("is read-only and follows the actual var", func(t *testing.T) {
		size := NewContextVar(1)
		source := New(10)

		assert.False(t, size.Set(2))
		assert.True(t, size.Capabilities().Has(CapsReadOnly|CapsChange))

		WithContextVar(size, source, func() {
			assert.Equal(t, source.ID(), size.ID())
			assert.Same(t, source, size.Actual())

			var got []int
			size.Hook(func(args HookArgs[int]) bool {
				got = append(got, args.Value)
				return true
			})

			source.Set(11)
			Apply()

			assert.Equal(t, 11, size.Get())
			assert.True(t, size.IsNew())
			assert.Equal(t, []int{11}, got)
		})
	})
}
