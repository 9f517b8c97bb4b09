package vars

import (
	"sync"

	"github.com/AnatoleLucet/vars/internal"
)

type mapVar[S, T any] struct {
	anyVar[T]
	id     uint64
	source Var[S]
	f      func(S) T
	back   func(T) S // nil for one-way maps

	mu       sync.Mutex
	cached   *T
	cacheKey sourceKey

	tracker versionTracker
}

// Map creates a read-only variable that is f applied to source.
// The value is computed lazily and cached until the source changes.
func Map[S, T any](source Var[S], f func(S) T) Var[T] {
	return newMapVar(source, f, nil)
}

// MapBidi creates a variable that is f applied to source, writing to it writes
// back(v) to source. It is read-only if source is.
func MapBidi[S, T any](source Var[S], f func(S) T, back func(T) S) Var[T] {
	return newMapVar(source, f, back)
}

func newMapVar[S, T any](source Var[S], f func(S) T, back func(T) S) *mapVar[S, T] {
	m := &mapVar[S, T]{
		id:     internal.NextID(),
		source: source,
		f:      f,
		back:   back,
	}
	m.anyVar = anyVar[T]{m}

	return m
}

func (m *mapVar[S, T]) get() *T {
	// key before value, a value newer than its key only costs one extra recompute
	key := keyOf(m.source)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached == nil || key != m.cacheKey {
		v := m.f(m.source.Get())
		m.cached = &v
		m.cacheKey = key
	}

	return m.cached
}

func (m *mapVar[S, T]) ID() uint64 { return m.id }

func (m *mapVar[S, T]) Capabilities() Capabilities {
	caps := m.source.Capabilities()
	if m.back == nil {
		caps |= CapsReadOnly
	}
	return caps
}

func (m *mapVar[S, T]) LastUpdate() UpdateID { return m.source.LastUpdate() }

func (m *mapVar[S, T]) Version() uint64 { return m.tracker.observe(keyOf(m.source)) }

func (m *mapVar[S, T]) IsNew() bool { return m.source.IsNew() }

func (m *mapVar[S, T]) IsAnimating() bool { return m.source.IsAnimating() }

func (m *mapVar[S, T]) ModifyImportance() uint64 { return m.source.ModifyImportance() }

func (m *mapVar[S, T]) Get() T { return *m.get() }

func (m *mapVar[S, T]) With(visit func(v *T)) { visit(m.get()) }

func (m *mapVar[S, T]) Set(v T) bool {
	if m.back == nil {
		return false
	}

	back := m.back(v)
	return m.source.Modify(func(sm *VarModify[S]) {
		sm.Set(back)
	})
}

func (m *mapVar[S, T]) Modify(fn func(*VarModify[T])) bool {
	if m.back == nil {
		return false
	}

	return m.source.Modify(func(sm *VarModify[S]) {
		if v, changed := forwardModify(sm, m.f(sm.Value()), fn); changed {
			sm.Set(m.back(v))
		}
	})
}

func (m *mapVar[S, T]) Update() bool {
	if m.back == nil {
		return false
	}
	return m.source.Update()
}

func (m *mapVar[S, T]) Hook(fn func(args HookArgs[T]) bool) Handle {
	f := m.f
	return m.source.Hook(func(args HookArgs[S]) bool {
		return fn(HookArgs[T]{
			Value:       f(args.Value),
			Tags:        args.Tags,
			IsAnimating: args.IsAnimating,
		})
	})
}

func (m *mapVar[S, T]) Downgrade() WeakVar[T] { return downgrade[T](m) }

func (m *mapVar[S, T]) Clone() Var[T] { return m }

// forwardModify runs fn on a detached copy of cur inside the source modify sm.
// Tags and forced updates are carried over to sm.
func forwardModify[S, T any](sm *VarModify[S], cur T, fn func(*VarModify[T])) (T, bool) {
	sub := newDetachedModify(&cur)
	fn(sub)

	for _, tag := range sub.m.Tags {
		sm.PushTag(tag)
	}
	if sub.m.Forced {
		sm.Update()
	}

	return sub.Value(), sub.IsChanged()
}
