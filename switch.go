package vars

import (
	"weak"

	"github.com/AnatoleLucet/vars/internal"
)

type switchVar[T any] struct {
	anyVar[T]
	id       uint64
	index    Var[int]
	branches []Var[T]

	tracker versionTracker
	hooks   *internal.HookList
	derived derivedHooks
}

// Switch creates a variable that is the branch selected by index.
// Reading it while index is out of range panics with an *IndexOutOfRangeError.
// Writes go to the selected branch.
func Switch[T any](index Var[int], branches ...Var[T]) Var[T] {
	s := &switchVar[T]{
		id:       internal.NextID(),
		index:    index,
		branches: branches,
		hooks:    internal.NewHookList(),
	}
	s.anyVar = anyVar[T]{s}

	return s
}

func (s *switchVar[T]) inRange() bool {
	i := s.index.Get()
	return i >= 0 && i < len(s.branches)
}

func (s *switchVar[T]) selected() Var[T] {
	i := s.index.Get()
	if i < 0 || i >= len(s.branches) {
		panic(&IndexOutOfRangeError{
			What:      "switch index",
			ValidLow:  0,
			ValidHigh: len(s.branches) - 1,
			Actual:    i,
		})
	}

	return s.branches[i]
}

func (s *switchVar[T]) ID() uint64 { return s.id }

func (s *switchVar[T]) Capabilities() Capabilities {
	caps := s.selected().Capabilities()
	if !s.index.Capabilities().Has(CapsStatic) {
		caps = (caps &^ CapsStatic) | CapsChange
	}
	return caps
}

func (s *switchVar[T]) LastUpdate() UpdateID { return maxUpdate(s.index, s.selected()) }

func (s *switchVar[T]) Version() uint64 {
	return s.tracker.observe(keyOf(s.index), keyOf(s.selected()))
}

func (s *switchVar[T]) IsNew() bool { return s.index.IsNew() || s.selected().IsNew() }

func (s *switchVar[T]) IsAnimating() bool { return s.selected().IsAnimating() }

func (s *switchVar[T]) ModifyImportance() uint64 { return s.selected().ModifyImportance() }

func (s *switchVar[T]) Get() T { return s.selected().Get() }

func (s *switchVar[T]) With(visit func(v *T)) { s.selected().With(visit) }

func (s *switchVar[T]) Set(v T) bool { return s.selected().Set(v) }

func (s *switchVar[T]) Modify(fn func(*VarModify[T])) bool { return s.selected().Modify(fn) }

func (s *switchVar[T]) Update() bool { return s.selected().Update() }

func (s *switchVar[T]) Hook(fn func(args HookArgs[T]) bool) Handle {
	s.derived.once.Do(s.hookSources)
	return addHook(s.hooks, fn)
}

func (s *switchVar[T]) hookSources() {
	w := weak.Make(s)

	s.index.Hook(func(args HookArgs[int]) bool {
		s := w.Value()
		if s == nil {
			return false
		}
		s.onChanged(args.Tags, false)
		return true
	})

	for i, b := range s.branches {
		b.Hook(func(args HookArgs[T]) bool {
			s := w.Value()
			if s == nil {
				return false
			}
			if s.index.Get() == i {
				s.onChanged(args.Tags, args.IsAnimating)
			}
			return true
		})
	}

	if s.inRange() {
		s.derived.reset(s.Version())
	}
}

// onChanged skips the notification while the index is out of range,
// the panic is left to the next read.
func (s *switchVar[T]) onChanged(tags []any, animating bool) {
	if s.hooks.Len() == 0 || !s.inRange() || !s.derived.shouldNotify(s.Version()) {
		return
	}
	sel := s.selected()
	notifyList(s.hooks, sel.Get(), tags, animating || sel.IsAnimating())
}

func (s *switchVar[T]) Downgrade() WeakVar[T] { return downgrade[T](s) }

func (s *switchVar[T]) Clone() Var[T] { return s }
