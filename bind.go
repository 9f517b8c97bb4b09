package vars

import "github.com/AnatoleLucet/vars/internal"

// bindingTag marks the writes made by one binding, so its reverse hook can
// recognize and skip its own echo.
type bindingTag struct {
	id uint64
}

// BindingHandles holds the two hooks of a bidirectional binding.
type BindingHandles struct {
	Forward  Handle
	Backward Handle
}

func (b BindingHandles) Unhook() {
	b.Forward.Unhook()
	b.Backward.Unhook()
}

func (b BindingHandles) Perm() {
	b.Forward.Perm()
	b.Backward.Perm()
}

// Bind sets target to every new value of source.
// The binding holds target weakly and lasts until the handle is unhooked or target is collected.
func Bind[T any](source, target Var[T]) Handle {
	return bindMap(source, target, func(v T) T { return v }, bindingTag{internal.NextID()})
}

// BindMap sets target to f of every new value of source.
func BindMap[S, T any](source Var[S], target Var[T], f func(S) T) Handle {
	return bindMap(source, target, f, bindingTag{internal.NextID()})
}

// SetBind sets target to the current value of source and binds it.
func SetBind[T any](source, target Var[T]) Handle {
	target.Set(source.Get())
	return Bind(source, target)
}

// BindBidi keeps a and b equal: a change on either side is written to the other.
func BindBidi[T any](a, b Var[T]) BindingHandles {
	identity := func(v T) T { return v }
	return BindMapBidi(a, b, identity, identity)
}

// BindMapBidi keeps b equal to f(a) and a equal to back(b).
func BindMapBidi[A, B any](a Var[A], b Var[B], f func(A) B, back func(B) A) BindingHandles {
	tag := bindingTag{internal.NextID()}

	return BindingHandles{
		Forward:  bindMap(a, b, f, tag),
		Backward: bindMap(b, a, back, tag),
	}
}

func bindMap[S, T any](source Var[S], target Var[T], f func(S) T, tag bindingTag) Handle {
	w := target.Downgrade()

	return source.Hook(func(args HookArgs[S]) bool {
		target, ok := w.Upgrade()
		if !ok {
			return false
		}
		if args.HasTag(tag) {
			return true
		}

		value := f(args.Value)
		target.Modify(func(m *VarModify[T]) {
			m.Set(value)
			m.PushTag(tag)
		})
		return true
	})
}
