// Package vars implements reactive variables: shared value cells that observers
// hook into, updated in discrete apply cycles.
//
// Writes never take effect immediately. Set and Modify queue a request that the
// next Apply commits; every variable touched by one Apply reports the same update
// id, and hooks run after the whole batch is committed, so they always observe a
// consistent snapshot. Hooks may write to other variables; those writes are folded
// into the same cycle until the queue is empty.
//
//	x := vars.New(1)
//	y := vars.Map(x, func(v int) int { return v * 2 })
//
//	x.Set(5)
//	vars.Apply()
//	y.Get()   // 10
//	y.IsNew() // true
//
// Derived variables (Map, MapBidi, MapRef, MapRefBidi, Merge2, FlatMap, Switch,
// ReadOnly, Contextualized) hold strong references to their sources, while the
// hooks they and bindings install on sources only hold weak references back.
package vars

import (
	"github.com/AnatoleLucet/vars/internal"
)

// Capabilities describes what a variable can do.
type Capabilities = internal.Caps

const (
	CapsNone     = internal.CapsNone
	CapsStatic   = internal.CapsStatic
	CapsReadOnly = internal.CapsReadOnly
	CapsShare    = internal.CapsShare
	CapsChange   = internal.CapsChange
)

// UpdateID identifies an apply cycle. Zero means the variable never changed.
type UpdateID = internal.Tick

// AnyVar is the type-erased part of a variable.
type AnyVar interface {
	// ID identifies the variable that currently provides the value.
	ID() uint64
	Capabilities() Capabilities
	// LastUpdate is the apply cycle in which the value last changed.
	LastUpdate() UpdateID
	// Version increases every time the value changes.
	Version() uint64
	// IsNew reports whether the value changed in the latest apply cycle.
	IsNew() bool
	IsAnimating() bool
	ModifyImportance() uint64

	GetAny() any
	// SetAny panics with a *TypeMismatchError if v is not of the variable's type.
	SetAny(v any) bool
	HookAny(fn func(args AnyHookArgs) bool) Handle
}

// Var is a reactive variable of T.
type Var[T any] interface {
	AnyVar

	Get() T
	// With visits the committed value without copying it. The pointer must not be
	// retained or written through.
	With(visit func(v *T))
	// Set queues v for the next apply cycle. It returns false if the variable is read-only.
	Set(v T) bool
	// Modify queues fn for the next apply cycle, fn receives the previous value.
	// It returns false if the variable is read-only.
	Modify(fn func(m *VarModify[T])) bool
	// Update queues a notification without changing the value.
	Update() bool
	// Hook registers fn to run after each committed change.
	Hook(fn func(args HookArgs[T]) bool) Handle

	Downgrade() WeakVar[T]
	// Clone returns a handle to the same variable, except for Contextualized
	// variables where the clone is a fresh lazy instance.
	Clone() Var[T]
}

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	t, ok := v.(T)
	if !ok {
		panic(newTypeMismatch[T](v))
	}
	return t
}

func isNew(lastUpdate UpdateID) bool {
	return lastUpdate != 0 && lastUpdate == internal.GetRuntime().Time()
}

// anyVar implements the type-erased methods on top of a Var[T].
type anyVar[T any] struct {
	v Var[T]
}

func (a anyVar[T]) GetAny() any {
	return a.v.Get()
}

func (a anyVar[T]) SetAny(v any) bool {
	return a.v.Set(as[T](v))
}

func (a anyVar[T]) HookAny(fn func(args AnyHookArgs) bool) Handle {
	return a.v.Hook(func(args HookArgs[T]) bool {
		return fn(AnyHookArgs{Value: args.Value, Tags: args.Tags, IsAnimating: args.IsAnimating})
	})
}
