package vars

import (
	"fmt"
	"time"
)

func ExampleNew() {
	count := New(0)
	fmt.Println(count.Get())

	count.Set(10)
	fmt.Println(count.Get())

	Apply()
	fmt.Println(count.Get())

	// Output:
	// 0
	// 0
	// 10
}

func ExampleMap() {
	x := New(1)
	y := Map(x, func(v int) int {
		fmt.Println("doubling")
		return v * 2
	})
	fmt.Println(y.Get())
	fmt.Println(y.Get())

	x.Set(5)
	Apply()
	fmt.Println(y.Get(), y.IsNew())

	// Output:
	// doubling
	// 2
	// 2
	// doubling
	// 10 true
}

func ExampleBindBidi() {
	a, b := New("a"), New("b")
	BindBidi(a, b)

	a.Set("x")
	Apply()
	fmt.Println(a.Get(), b.Get())

	b.Set("y")
	Apply()
	fmt.Println(a.Get(), b.Get())

	// Output:
	// x x
	// y y
}

func ExampleWithContextValue() {
	theme := NewContextVar("light")

	WithContextValue(theme, "dark", func() {
		fmt.Println(theme.Get())
	})
	fmt.Println(theme.Get())

	// Output:
	// dark
	// light
}

func ExampleEaseNumber() {
	v := New(0)
	EaseNumber(v, 100, time.Second, Linear)

	start := time.Unix(0, 0)
	for i := 0; i <= 4; i++ {
		Frame(start.Add(time.Duration(i) * 250 * time.Millisecond))
		fmt.Println(v.Get(), v.IsAnimating())
	}

	// Output:
	// 0 true
	// 25 true
	// 50 true
	// 75 true
	// 100 false
}
