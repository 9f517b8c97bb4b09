package vars

import "github.com/AnatoleLucet/vars/internal"

type mapRefVar[S, T any] struct {
	anyVar[T]
	id      uint64
	source  Var[S]
	proj    func(*S) *T
	projMut func(*S) *T // nil for read-only projections

	tracker versionTracker
}

// MapRef creates a read-only variable that projects a part of source without copying it.
// With visits the projected value inside the source storage.
func MapRef[S, T any](source Var[S], proj func(*S) *T) Var[T] {
	return newMapRefVar(source, proj, nil)
}

// MapRefBidi is MapRef with writes: Set and Modify change the projected part of
// the source value in place through projMut. It is read-only if source is.
func MapRefBidi[S, T any](source Var[S], proj, projMut func(*S) *T) Var[T] {
	return newMapRefVar(source, proj, projMut)
}

func newMapRefVar[S, T any](source Var[S], proj, projMut func(*S) *T) *mapRefVar[S, T] {
	r := &mapRefVar[S, T]{
		id:      internal.NextID(),
		source:  source,
		proj:    proj,
		projMut: projMut,
	}
	r.anyVar = anyVar[T]{r}

	return r
}

func (r *mapRefVar[S, T]) ID() uint64 { return r.id }

func (r *mapRefVar[S, T]) Capabilities() Capabilities {
	caps := r.source.Capabilities()
	if r.projMut == nil {
		caps |= CapsReadOnly
	}
	return caps
}

func (r *mapRefVar[S, T]) LastUpdate() UpdateID { return r.source.LastUpdate() }

func (r *mapRefVar[S, T]) Version() uint64 { return r.tracker.observe(keyOf(r.source)) }

func (r *mapRefVar[S, T]) IsNew() bool { return r.source.IsNew() }

func (r *mapRefVar[S, T]) IsAnimating() bool { return r.source.IsAnimating() }

func (r *mapRefVar[S, T]) ModifyImportance() uint64 { return r.source.ModifyImportance() }

func (r *mapRefVar[S, T]) Get() T {
	var out T
	r.source.With(func(s *S) { out = *r.proj(s) })
	return out
}

func (r *mapRefVar[S, T]) With(visit func(v *T)) {
	r.source.With(func(s *S) { visit(r.proj(s)) })
}

func (r *mapRefVar[S, T]) Set(v T) bool {
	if r.projMut == nil {
		return false
	}

	return r.source.Modify(func(sm *VarModify[S]) {
		if Equal(*r.proj(sm.peek()), v) {
			return
		}
		*r.projMut(sm.ToMut()) = v
	})
}

func (r *mapRefVar[S, T]) Modify(fn func(*VarModify[T])) bool {
	if r.projMut == nil {
		return false
	}

	return r.source.Modify(func(sm *VarModify[S]) {
		if v, changed := forwardModify(sm, *r.proj(sm.peek()), fn); changed {
			*r.projMut(sm.ToMut()) = v
		}
	})
}

func (r *mapRefVar[S, T]) Update() bool {
	if r.projMut == nil {
		return false
	}
	return r.source.Update()
}

func (r *mapRefVar[S, T]) Hook(fn func(args HookArgs[T]) bool) Handle {
	proj := r.proj
	return r.source.Hook(func(args HookArgs[S]) bool {
		return fn(HookArgs[T]{
			Value:       *proj(&args.Value),
			Tags:        args.Tags,
			IsAnimating: args.IsAnimating,
		})
	})
}

func (r *mapRefVar[S, T]) Downgrade() WeakVar[T] { return downgrade[T](r) }

func (r *mapRefVar[S, T]) Clone() Var[T] { return r }
