package internal

import "fmt"

// FeedbackLoopError is raised when an apply cycle keeps producing writes.
type FeedbackLoopError struct {
	Tick   Tick
	Passes int
}

func (e *FeedbackLoopError) Error() string {
	return fmt.Sprintf("apply cycle %d did not settle after %d passes, hooks keep writing to variables", e.Tick, e.Passes)
}

// ContextStackError is raised when context pushes and pops are not nested.
type ContextStackError struct {
	Depth int
}

func (e *ContextStackError) Error() string {
	return fmt.Sprintf("context stack misuse: pop does not match the innermost push (depth %d)", e.Depth)
}
