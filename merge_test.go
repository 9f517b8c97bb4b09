package vars

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Run("combines sources", func(t *testing.T) {
		first, last := New("Ada"), New("Lovelace")
		name := Merge2(first, last, func(f, l string) string { return f + " " + l })
		assert.Equal(t, "Ada Lovelace", name.Get())

		last.Set("Byron")
		Apply()

		assert.Equal(t, "Ada Byron", name.Get())
		assert.True(t, name.IsNew())
		assert.Equal(t, last.LastUpdate(), name.LastUpdate())
	})

	t.Run("recomputes only when a source changed", func(t *testing.T) {
		a, b := New(1), New(2)

		calls := 0
		sum := Merge2(a, b, func(a, b int) int {
			calls++
			return a + b
		})

		sum.Get()
		sum.Get()
		assert.Equal(t, 1, calls)

		Apply()
		sum.Get()
		assert.Equal(t, 1, calls, "an empty apply changes nothing")

		b.Set(3)
		Apply()
		assert.Equal(t, 4, sum.Get())
		assert.Equal(t, 2, calls)
	})

	t.Run("version is monotonic", func(t *testing.T) {
		a, b := New(1), New(2)
		sum := Merge2(a, b, func(a, b int) int { return a + b })

		last := sum.Version()
		for i := range 5 {
			if i%2 == 0 {
				a.Set(i)
			} else {
				b.Set(i)
			}
			Apply()

			v := sum.Version()
			assert.GreaterOrEqual(t, v, last)
			last = v
		}
	})

	t.Run("hook fires once per cycle", func(t *testing.T) {
		a, b, c := New(1), New(2), New(3)
		sum := Merge3(a, b, c, func(a, b, c int) int { return a + b + c })

		var got []int
		sum.Hook(func(args HookArgs[int]) bool {
			got = append(got, args.Value)
			return true
		})

		a.Set(10)
		b.Set(20)
		Apply()
		c.Set(30)
		Apply()

		if diff := cmp.Diff([]int{33, 60}, got); diff != "" {
			t.Errorf("hook values mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("n sources", func(t *testing.T) {
		parts := []Var[string]{New("a"), New("b"), New("c")}
		joined := MergeN(parts, func(values []string) string { return fmt.Sprint(values) })
		assert.Equal(t, "[a b c]", joined.Get())

		parts[1].Set("B")
		Apply()
		assert.Equal(t, "[a B c]", joined.Get())
	})

	t.Run("capabilities", func(t *testing.T) {
		static := Merge2(Const(1), Const(2), func(a, b int) int { return a + b })
		assert.True(t, static.Capabilities().Has(CapsStatic|CapsReadOnly))

		dynamic := Merge2(Const(1), New(2), func(a, b int) int { return a + b })
		assert.False(t, dynamic.Capabilities().Has(CapsStatic))
		assert.False(t, dynamic.Set(0))
	})

	t.Run("source hook unregisters once merge is collected", func(t *testing.T) {
		a := New(1).(*rwVar[int])

		func() {
			sum := Merge2(a, Const(1), func(a, b int) int { return a + b })
			sum.Hook(func(HookArgs[int]) bool { return true })
		}()
		assert.Equal(t, 1, a.hookCount())

		runtime.GC()

		a.Set(2)
		Apply()
		assert.Equal(t, 0, a.hookCount())
	})
}
