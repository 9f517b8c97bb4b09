package vars

type readOnlyVar[T any] struct {
	anyVar[T]
	source Var[T]
}

// ReadOnly wraps v so that writes through the wrapper are rejected.
// The wrapper still observes every change of v.
func ReadOnly[T any](v Var[T]) Var[T] {
	if caps := v.Capabilities(); caps.Has(CapsReadOnly) && !caps.Has(CapsChange) {
		return v
	}

	r := &readOnlyVar[T]{source: v}
	r.anyVar = anyVar[T]{r}

	return r
}

func (r *readOnlyVar[T]) ID() uint64 { return r.source.ID() }

func (r *readOnlyVar[T]) Capabilities() Capabilities {
	return r.source.Capabilities() | CapsReadOnly
}

func (r *readOnlyVar[T]) LastUpdate() UpdateID { return r.source.LastUpdate() }

func (r *readOnlyVar[T]) Version() uint64 { return r.source.Version() }

func (r *readOnlyVar[T]) IsNew() bool { return r.source.IsNew() }

func (r *readOnlyVar[T]) IsAnimating() bool { return r.source.IsAnimating() }

func (r *readOnlyVar[T]) ModifyImportance() uint64 { return r.source.ModifyImportance() }

func (r *readOnlyVar[T]) Get() T { return r.source.Get() }

func (r *readOnlyVar[T]) With(visit func(v *T)) { r.source.With(visit) }

func (r *readOnlyVar[T]) Set(T) bool { return false }

func (r *readOnlyVar[T]) Modify(func(*VarModify[T])) bool { return false }

func (r *readOnlyVar[T]) Update() bool { return false }

func (r *readOnlyVar[T]) Hook(fn func(args HookArgs[T]) bool) Handle { return r.source.Hook(fn) }

func (r *readOnlyVar[T]) Downgrade() WeakVar[T] { return downgrade[T](r) }

func (r *readOnlyVar[T]) Clone() Var[T] {
	c := &readOnlyVar[T]{source: r.source.Clone()}
	c.anyVar = anyVar[T]{c}

	return c
}
