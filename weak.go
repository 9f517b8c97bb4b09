package vars

import "weak"

// WeakVar references a variable without keeping it alive.
type WeakVar[T any] interface {
	// Upgrade returns the variable, or false if it was collected.
	Upgrade() (Var[T], bool)
}

type weakVar[T any, P any] struct {
	p weak.Pointer[P]
}

func downgrade[T any, P any](p *P) WeakVar[T] {
	return weakVar[T, P]{weak.Make(p)}
}

func (w weakVar[T, P]) Upgrade() (Var[T], bool) {
	p := w.p.Value()
	if p == nil {
		return nil, false
	}

	return any(p).(Var[T]), true
}
