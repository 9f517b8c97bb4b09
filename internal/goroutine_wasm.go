//go:build wasm

package internal

// wasm runs every goroutine on a single thread, they all share the ambient state.
func goroutineID() int64 {
	return 1
}
