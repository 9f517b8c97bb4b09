package vars

import (
	"github.com/AnatoleLucet/vars/internal"
)

type rwVar[T any] struct {
	anyVar[T]
	node *internal.Node
}

// New creates a read-write variable.
func New[T any](initial T) Var[T] {
	v := &rwVar[T]{
		node: internal.GetRuntime().NewNode(&initial, false),
	}
	v.anyVar = anyVar[T]{v}

	return v
}

func (v *rwVar[T]) ID() uint64 { return v.node.ID() }

func (v *rwVar[T]) Capabilities() Capabilities { return CapsShare }

func (v *rwVar[T]) LastUpdate() UpdateID { return v.node.LastUpdate() }

func (v *rwVar[T]) Version() uint64 { return v.node.Version() }

func (v *rwVar[T]) IsNew() bool { return isNew(v.node.LastUpdate()) }

func (v *rwVar[T]) IsAnimating() bool { return v.node.IsAnimating() }

func (v *rwVar[T]) ModifyImportance() uint64 { return v.node.Importance() }

func (v *rwVar[T]) Get() T {
	return *as[*T](v.node.Value())
}

func (v *rwVar[T]) With(visit func(v *T)) {
	visit(as[*T](v.node.Value()))
}

func (v *rwVar[T]) Set(value T) bool {
	return v.node.Modify(func(m *internal.Modify) {
		(&VarModify[T]{m}).Set(value)
	})
}

func (v *rwVar[T]) Modify(fn func(m *VarModify[T])) bool {
	return v.node.Modify(func(m *internal.Modify) {
		fn(&VarModify[T]{m})
	})
}

func (v *rwVar[T]) Update() bool {
	return v.node.Modify(func(m *internal.Modify) {
		m.Forced = true
	})
}

func (v *rwVar[T]) Hook(fn func(args HookArgs[T]) bool) Handle {
	return addHook(v.node.Hooks(), fn)
}

func (v *rwVar[T]) Downgrade() WeakVar[T] { return downgrade[T](v) }

func (v *rwVar[T]) Clone() Var[T] { return v }

func (v *rwVar[T]) hookCount() int { return v.node.Hooks().Len() }

type constVar[T any] struct {
	anyVar[T]
	id    uint64
	value T
}

// Const creates a static variable, it never changes and rejects writes.
func Const[T any](value T) Var[T] {
	c := &constVar[T]{id: internal.NextID(), value: value}
	c.anyVar = anyVar[T]{c}

	return c
}

func (c *constVar[T]) ID() uint64 { return c.id }

func (c *constVar[T]) Capabilities() Capabilities {
	return CapsStatic | CapsReadOnly | CapsShare
}

func (c *constVar[T]) LastUpdate() UpdateID { return 0 }

func (c *constVar[T]) Version() uint64 { return 0 }

func (c *constVar[T]) IsNew() bool { return false }

func (c *constVar[T]) IsAnimating() bool { return false }

func (c *constVar[T]) ModifyImportance() uint64 { return 0 }

func (c *constVar[T]) Get() T { return c.value }

func (c *constVar[T]) With(visit func(v *T)) { visit(&c.value) }

func (c *constVar[T]) Set(T) bool { return false }

func (c *constVar[T]) Modify(func(*VarModify[T])) bool { return false }

func (c *constVar[T]) Update() bool { return false }

func (c *constVar[T]) Hook(func(HookArgs[T]) bool) Handle { return Handle{} }

func (c *constVar[T]) Downgrade() WeakVar[T] { return downgrade[T](c) }

func (c *constVar[T]) Clone() Var[T] { return c }

// Into converts v into a variable: a Var[T] is returned as is, a T becomes a Const.
// Anything else is a programming error and panics with a *TypeMismatchError.
func Into[T any](v any) Var[T] {
	switch x := v.(type) {
	case Var[T]:
		return x
	case T:
		return Const(x)
	case nil:
		var zero T
		return Const(zero)
	default:
		panic(newTypeMismatch[T](v))
	}
}
