package vars

import (
	"github.com/AnatoleLucet/vars/internal"
)

// Scope is a context stack owned by the caller, for code that does not want to
// depend on the goroutine it runs on.
type Scope struct {
	stack *internal.ContextStack
}

func NewScope() *Scope {
	return &Scope{stack: internal.NewContextStack()}
}

// Depth returns how many values are currently pushed.
func (s *Scope) Depth() int { return s.stack.Depth() }

// ContextVar is a read-only variable whose value depends on the context it is read in.
// Outside of any context it reads its default.
type ContextVar[T any] struct {
	anyVar[T]
	slot uint64
	def  Var[T]
}

// NewContextVar creates a context variable that defaults to def.
func NewContextVar[T any](def T) *ContextVar[T] {
	return NewContextVarWith(Const(def))
}

// NewContextVarWith creates a context variable that defaults to the variable def.
func NewContextVarWith[T any](def Var[T]) *ContextVar[T] {
	cv := &ContextVar[T]{slot: internal.NextID(), def: def}
	cv.anyVar = anyVar[T]{cv}

	return cv
}

// Default returns the variable read outside of any context.
func (cv *ContextVar[T]) Default() Var[T] { return cv.def }

// Actual returns the variable bound in the calling goroutine context.
func (cv *ContextVar[T]) Actual() Var[T] {
	return cv.resolve(internal.AmbientStack())
}

// GetIn reads the value bound in scope.
func (cv *ContextVar[T]) GetIn(scope *Scope) T {
	return cv.ActualIn(scope).Get()
}

// ActualIn returns the variable bound in scope.
func (cv *ContextVar[T]) ActualIn(scope *Scope) Var[T] {
	if scope == nil {
		return cv.def
	}
	return cv.resolve(scope.stack)
}

func (cv *ContextVar[T]) resolve(stack *internal.ContextStack) Var[T] {
	if stack == nil {
		return cv.def
	}

	v, ok := stack.Get(cv.slot)
	if !ok {
		return cv.def
	}
	return as[Var[T]](v)
}

func (cv *ContextVar[T]) ID() uint64 { return cv.Actual().ID() }

func (cv *ContextVar[T]) Capabilities() Capabilities {
	return cv.Actual().Capabilities() | CapsReadOnly | CapsChange
}

func (cv *ContextVar[T]) LastUpdate() UpdateID { return cv.Actual().LastUpdate() }

func (cv *ContextVar[T]) Version() uint64 { return cv.Actual().Version() }

func (cv *ContextVar[T]) IsNew() bool { return cv.Actual().IsNew() }

func (cv *ContextVar[T]) IsAnimating() bool { return cv.Actual().IsAnimating() }

func (cv *ContextVar[T]) ModifyImportance() uint64 { return cv.Actual().ModifyImportance() }

func (cv *ContextVar[T]) Get() T { return cv.Actual().Get() }

func (cv *ContextVar[T]) With(visit func(v *T)) { cv.Actual().With(visit) }

func (cv *ContextVar[T]) Set(T) bool { return false }

func (cv *ContextVar[T]) Modify(func(*VarModify[T])) bool { return false }

func (cv *ContextVar[T]) Update() bool { return false }

// Hook registers fn on the variable bound when Hook is called.
func (cv *ContextVar[T]) Hook(fn func(args HookArgs[T]) bool) Handle {
	return cv.Actual().Hook(fn)
}

func (cv *ContextVar[T]) Downgrade() WeakVar[T] { return downgrade[T](cv) }

func (cv *ContextVar[T]) Clone() Var[T] { return cv }

// WithContextVar binds cv to v on the calling goroutine while fn runs.
func WithContextVar[T any](cv *ContextVar[T], v Var[T], fn func()) {
	internal.WithAmbient(cv.slot, v, fn)
}

// WithContextValue binds cv to a constant value on the calling goroutine while fn runs.
func WithContextValue[T any](cv *ContextVar[T], value T, fn func()) {
	WithContextVar(cv, Const(value), fn)
}

// WithContextVarIn binds cv to v in scope while fn runs.
func WithContextVarIn[T any](scope *Scope, cv *ContextVar[T], v Var[T], fn func()) {
	pop := scope.stack.Push(cv.slot, v)
	defer pop()

	fn()
}

// PushContextVar binds cv to v in scope until pop is called.
// Pops must happen in reverse push order, a misnested pop panics with a *ContextStackError.
func PushContextVar[T any](scope *Scope, cv *ContextVar[T], v Var[T]) (pop func()) {
	return scope.stack.Push(cv.slot, v)
}
