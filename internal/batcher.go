package internal

import "sync/atomic"

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, auto apply is held until the outermost batch is complete
	depth atomic.Int32
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	return b.depth.Load() > 0
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth.Add(1)
	defer func() {
		if b.depth.Add(-1) == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// Batch runs fn and applies every write it queued once the outermost batch returns.
func (r *Runtime) Batch(fn func()) {
	r.batcher.Batch(fn, func() { r.Apply() })
}
