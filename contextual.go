package vars

import "sync"

type contextualVar[T any] struct {
	anyVar[T]
	init func() Var[T]

	once   sync.Once
	actual Var[T]
}

// Contextualized creates a variable that calls init on first use and then behaves
// as the variable it returned. init typically reads context variables, so each
// Clone builds its own instance the first time it is used.
func Contextualized[T any](init func() Var[T]) Var[T] {
	c := &contextualVar[T]{init: init}
	c.anyVar = anyVar[T]{c}

	return c
}

func (c *contextualVar[T]) get() Var[T] {
	c.once.Do(func() { c.actual = c.init() })
	return c.actual
}

func (c *contextualVar[T]) ID() uint64 { return c.get().ID() }

func (c *contextualVar[T]) Capabilities() Capabilities { return c.get().Capabilities() }

func (c *contextualVar[T]) LastUpdate() UpdateID { return c.get().LastUpdate() }

func (c *contextualVar[T]) Version() uint64 { return c.get().Version() }

func (c *contextualVar[T]) IsNew() bool { return c.get().IsNew() }

func (c *contextualVar[T]) IsAnimating() bool { return c.get().IsAnimating() }

func (c *contextualVar[T]) ModifyImportance() uint64 { return c.get().ModifyImportance() }

func (c *contextualVar[T]) Get() T { return c.get().Get() }

func (c *contextualVar[T]) With(visit func(v *T)) { c.get().With(visit) }

func (c *contextualVar[T]) Set(v T) bool { return c.get().Set(v) }

func (c *contextualVar[T]) Modify(fn func(*VarModify[T])) bool { return c.get().Modify(fn) }

func (c *contextualVar[T]) Update() bool { return c.get().Update() }

func (c *contextualVar[T]) Hook(fn func(args HookArgs[T]) bool) Handle { return c.get().Hook(fn) }

func (c *contextualVar[T]) Downgrade() WeakVar[T] { return downgrade[T](c) }

func (c *contextualVar[T]) Clone() Var[T] { return Contextualized(c.init) }
