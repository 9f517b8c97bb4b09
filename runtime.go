package vars

import (
	"context"

	"github.com/AnatoleLucet/vars/internal"
)

// Apply commits every pending write and runs the hooks of the changed variables,
// until no hook queues more writes. It returns the id of the cycle.
//
// Calling Apply from a hook returns immediately, the running cycle picks up the writes.
func Apply() UpdateID {
	return internal.GetRuntime().Apply()
}

// ApplyContext is Apply with a parent context for the cycle's trace span.
func ApplyContext(ctx context.Context) UpdateID {
	return internal.GetRuntime().ApplyContext(ctx)
}

// Batch runs fn and applies the writes it made once the outermost Batch returns.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}

// CurrentUpdate returns the id of the latest apply cycle.
func CurrentUpdate() UpdateID {
	return internal.GetRuntime().Time()
}

// Pending returns how many writes wait for the next Apply.
func Pending() int {
	return internal.GetRuntime().Pending()
}
