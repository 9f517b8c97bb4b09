package vars

import (
	"sync"
	"weak"

	"github.com/AnatoleLucet/vars/internal"
)

type flatMapVar[S, T any] struct {
	anyVar[T]
	id     uint64
	source Var[S]
	f      func(S) Var[T]

	mu        sync.Mutex
	sourceKey sourceKey
	inner     Var[T]
	// innerHook is set once our own hooks are installed
	innerHook *Handle

	tracker versionTracker
	hooks   *internal.HookList
	derived derivedHooks
}

// FlatMap creates a variable that follows the variable f returns for the source value.
// When the source changes to select another variable, the flat-map switches to it
// and notifies its hooks even if the new variable itself did not change.
// It is writable when the current inner variable is.
func FlatMap[S, T any](source Var[S], f func(S) Var[T]) Var[T] {
	fm := &flatMapVar[S, T]{
		id:     internal.NextID(),
		source: source,
		f:      f,
		hooks:  internal.NewHookList(),
	}
	fm.anyVar = anyVar[T]{fm}

	return fm
}

// current resolves the inner variable for the current source value.
func (fm *flatMapVar[S, T]) current() Var[T] {
	key := keyOf(fm.source)

	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.inner == nil || key != fm.sourceKey {
		fm.sourceKey = key
		// compared by handle, ReadOnly(x) and x share an id but not writability
		if next := fm.f(fm.source.Get()); next != fm.inner {
			fm.switchInner(next)
		}
	}

	return fm.inner
}

// switchInner moves to next: unhook old, hook new. The notification is
// synthesized by the caller through the version change. Called with mu held.
func (fm *flatMapVar[S, T]) switchInner(next Var[T]) {
	fm.inner = next

	if fm.innerHook != nil {
		fm.innerHook.Unhook()
		h := fm.hookInner(next)
		fm.innerHook = &h
	}
}

func (fm *flatMapVar[S, T]) hookInner(inner Var[T]) Handle {
	w := weak.Make(fm)

	return inner.HookAny(func(args AnyHookArgs) bool {
		fm := w.Value()
		if fm == nil {
			return false
		}

		fm.mu.Lock()
		stale := fm.inner != inner
		fm.mu.Unlock()
		if stale {
			return false
		}

		fm.onChanged(args.Tags, args.IsAnimating)
		return true
	})
}

func (fm *flatMapVar[S, T]) hookSources() {
	fm.current()

	fm.mu.Lock()
	h := fm.hookInner(fm.inner)
	fm.innerHook = &h
	fm.mu.Unlock()

	w := weak.Make(fm)
	fm.source.Hook(func(args HookArgs[S]) bool {
		fm := w.Value()
		if fm == nil {
			return false
		}

		inner := fm.current()
		fm.onChanged(args.Tags, inner.IsAnimating())
		return true
	})

	fm.derived.reset(fm.Version())
}

func (fm *flatMapVar[S, T]) onChanged(tags []any, animating bool) {
	if fm.hooks.Len() == 0 || !fm.derived.shouldNotify(fm.Version()) {
		return
	}
	notifyList(fm.hooks, fm.Get(), tags, animating)
}

func (fm *flatMapVar[S, T]) ID() uint64 { return fm.id }

func (fm *flatMapVar[S, T]) Capabilities() Capabilities {
	caps := fm.current().Capabilities()
	if !fm.source.Capabilities().Has(CapsStatic) {
		caps = (caps &^ CapsStatic) | CapsChange
	}
	return caps
}

func (fm *flatMapVar[S, T]) LastUpdate() UpdateID { return maxUpdate(fm.source, fm.current()) }

func (fm *flatMapVar[S, T]) Version() uint64 {
	inner := fm.current()
	return fm.tracker.observe(keyOf(fm.source), keyOf(inner))
}

func (fm *flatMapVar[S, T]) IsNew() bool {
	return fm.source.IsNew() || fm.current().IsNew()
}

func (fm *flatMapVar[S, T]) IsAnimating() bool { return fm.current().IsAnimating() }

func (fm *flatMapVar[S, T]) ModifyImportance() uint64 { return fm.current().ModifyImportance() }

func (fm *flatMapVar[S, T]) Get() T { return fm.current().Get() }

func (fm *flatMapVar[S, T]) With(visit func(v *T)) { fm.current().With(visit) }

func (fm *flatMapVar[S, T]) Set(v T) bool { return fm.current().Set(v) }

func (fm *flatMapVar[S, T]) Modify(fn func(*VarModify[T])) bool { return fm.current().Modify(fn) }

func (fm *flatMapVar[S, T]) Update() bool { return fm.current().Update() }

func (fm *flatMapVar[S, T]) Hook(fn func(args HookArgs[T]) bool) Handle {
	fm.derived.once.Do(fm.hookSources)
	return addHook(fm.hooks, fn)
}

func (fm *flatMapVar[S, T]) Downgrade() WeakVar[T] { return downgrade[T](fm) }

func (fm *flatMapVar[S, T]) Clone() Var[T] { return fm }
