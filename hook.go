package vars

import (
	"slices"

	"github.com/AnatoleLucet/vars/internal"
)

// HookArgs describes a committed change.
type HookArgs[T any] struct {
	Value       T
	Tags        []any
	IsAnimating bool
}

// HasTag reports whether the change carries tag.
func (a HookArgs[T]) HasTag(tag any) bool {
	return slices.Contains(a.Tags, tag)
}

// AnyHookArgs is the type-erased form of HookArgs.
type AnyHookArgs struct {
	Value       any
	Tags        []any
	IsAnimating bool
}

// Handle keeps a hook registered. The zero Handle is a dummy that does nothing,
// it is returned by variables that never change.
type Handle struct {
	h *internal.HookHandle
}

// Unhook removes the hook, unless the handle was made permanent.
func (h Handle) Unhook() { h.h.Unhook() }

// Perm makes the hook live as long as the variable it is registered on.
func (h Handle) Perm() { h.h.Perm() }

func (h Handle) IsDummy() bool { return h.h == nil }

// IsAlive reports whether the hook is still registered.
func (h Handle) IsAlive() bool { return h.h.IsAlive() }

// addHook registers a typed hook on a list that is notified with *T values.
func addHook[T any](list *internal.HookList, fn func(args HookArgs[T]) bool) Handle {
	return Handle{list.Add(func(args *internal.HookArgs) bool {
		return fn(HookArgs[T]{
			Value:       *as[*T](args.Value),
			Tags:        args.Tags,
			IsAnimating: args.Animation,
		})
	})}
}

func notifyList[T any](list *internal.HookList, value T, tags []any, animating bool) {
	list.Notify(&internal.HookArgs{Value: &value, Tags: tags, Animation: animating})
}
