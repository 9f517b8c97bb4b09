package vars

import (
	"errors"
	"fmt"

	"github.com/AnatoleLucet/vars/internal"
)

// ErrUnknownConfigFormat is returned by LoadConfig for unsupported file extensions.
var ErrUnknownConfigFormat = errors.New("unknown config format")

// TypeMismatchError is raised when a value of the wrong type is placed behind a
// type-erased variable. It is a programming error and always panics.
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: variable holds %s, but got %s", e.Want, e.Got)
}

func newTypeMismatch[T any](got any) *TypeMismatchError {
	var zero T
	return &TypeMismatchError{
		Want: fmt.Sprintf("%T", any(&zero))[1:],
		Got:  fmt.Sprintf("%T", got),
	}
}

// IndexOutOfRangeError is raised by Switch when its index selects no branch.
type IndexOutOfRangeError struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e *IndexOutOfRangeError) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf("index out of range: %s has no valid value, but is %d", e.What, e.Actual)
	}
	return fmt.Sprintf("index out of range: %s must be from %d to %d, but is %d", e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// FeedbackLoopError is raised when an apply cycle keeps producing writes past
// Config.MaxApplyPasses.
type FeedbackLoopError = internal.FeedbackLoopError

// ContextStackError is raised when context pushes and pops are not nested.
type ContextStackError = internal.ContextStackError
