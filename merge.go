package vars

import (
	"slices"
	"sync"
	"weak"

	"github.com/AnatoleLucet/vars/internal"
)

type mergeVar[T any] struct {
	anyVar[T]
	id      uint64
	sources []AnyVar
	compute func() T

	mu        sync.Mutex
	cached    *T
	cacheKeys []sourceKey

	tracker versionTracker
	hooks   *internal.HookList
	derived derivedHooks
}

// Merge2 creates a read-only variable combining two sources.
func Merge2[A, B, T any](a Var[A], b Var[B], f func(A, B) T) Var[T] {
	return newMergeVar([]AnyVar{a, b}, func() T {
		return f(a.Get(), b.Get())
	})
}

// Merge3 creates a read-only variable combining three sources.
func Merge3[A, B, C, T any](a Var[A], b Var[B], c Var[C], f func(A, B, C) T) Var[T] {
	return newMergeVar([]AnyVar{a, b, c}, func() T {
		return f(a.Get(), b.Get(), c.Get())
	})
}

// MergeN creates a read-only variable combining any number of sources of the same type.
func MergeN[S, T any](sources []Var[S], f func(values []S) T) Var[T] {
	sources = slices.Clone(sources)
	erased := make([]AnyVar, len(sources))
	for i, s := range sources {
		erased[i] = s
	}

	return newMergeVar(erased, func() T {
		values := make([]S, len(sources))
		for i, s := range sources {
			values[i] = s.Get()
		}
		return f(values)
	})
}

func newMergeVar[T any](sources []AnyVar, compute func() T) *mergeVar[T] {
	m := &mergeVar[T]{
		id:      internal.NextID(),
		sources: sources,
		compute: compute,
		hooks:   internal.NewHookList(),
	}
	m.anyVar = anyVar[T]{m}

	return m
}

func (m *mergeVar[T]) get() *T {
	keys := keysOf(m.sources)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached == nil || !slices.Equal(keys, m.cacheKeys) {
		v := m.compute()
		m.cached = &v
		m.cacheKeys = keys
	}

	return m.cached
}

func (m *mergeVar[T]) ID() uint64 { return m.id }

func (m *mergeVar[T]) Capabilities() Capabilities {
	caps := CapsReadOnly | CapsStatic
	for _, s := range m.sources {
		sc := s.Capabilities()
		if !sc.Has(CapsStatic) {
			caps &^= CapsStatic
		}
		caps |= sc & CapsChange
	}
	return caps
}

func (m *mergeVar[T]) LastUpdate() UpdateID { return maxUpdate(m.sources...) }

func (m *mergeVar[T]) Version() uint64 { return m.tracker.observe(keysOf(m.sources)...) }

func (m *mergeVar[T]) IsNew() bool {
	return slices.ContainsFunc(m.sources, AnyVar.IsNew)
}

func (m *mergeVar[T]) IsAnimating() bool {
	return slices.ContainsFunc(m.sources, AnyVar.IsAnimating)
}

func (m *mergeVar[T]) ModifyImportance() uint64 {
	var imp uint64
	for _, s := range m.sources {
		imp = max(imp, s.ModifyImportance())
	}
	return imp
}

func (m *mergeVar[T]) Get() T { return *m.get() }

func (m *mergeVar[T]) With(visit func(v *T)) { visit(m.get()) }

func (m *mergeVar[T]) Set(T) bool { return false }

func (m *mergeVar[T]) Modify(func(*VarModify[T])) bool { return false }

func (m *mergeVar[T]) Update() bool { return false }

func (m *mergeVar[T]) Hook(fn func(args HookArgs[T]) bool) Handle {
	m.derived.once.Do(m.hookSources)
	return addHook(m.hooks, fn)
}

func (m *mergeVar[T]) hookSources() {
	w := weak.Make(m)
	for _, s := range m.sources {
		s.HookAny(func(args AnyHookArgs) bool {
			m := w.Value()
			if m == nil {
				return false
			}
			m.onSourceChanged(args.Tags, args.IsAnimating)
			return true
		})
	}
	m.derived.reset(m.Version())
}

func (m *mergeVar[T]) onSourceChanged(tags []any, animating bool) {
	if m.hooks.Len() == 0 || !m.derived.shouldNotify(m.Version()) {
		return
	}
	notifyList(m.hooks, m.Get(), tags, animating)
}

func (m *mergeVar[T]) Downgrade() WeakVar[T] { return downgrade[T](m) }

func (m *mergeVar[T]) Clone() Var[T] { return m }
