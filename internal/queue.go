package internal

import "sync"

// ModifyInfo describes who is writing.
type ModifyInfo struct {
	// plain writes have importance 0, animations get a fresh one each
	Importance uint64
	// write comes from a running animation
	Animation bool
	// last write of an animation, releases its importance
	Final bool
}

// Modify is the working copy of a node value inside one apply pass.
// Requests on the same node in the same pass share it, so they chain.
type Modify struct {
	// Value is the current working value.
	Value any
	// Owned is true when Value is a private copy that may be mutated in place.
	Owned bool
	// Changed is set when the value was replaced or mutated.
	Changed bool
	// Forced requests a notification even if nothing changed.
	Forced bool
	// Tags are forwarded to hooks.
	Tags []any
}

type Request struct {
	node  *Node
	info  ModifyInfo
	apply func(*Modify)
}

// UpdateQueue is the single pending-write queue of a runtime.
type UpdateQueue struct {
	mu      sync.Mutex
	pending []*Request
	spare   []*Request
}

func NewUpdateQueue() *UpdateQueue {
	return &UpdateQueue{
		pending: make([]*Request, 0, 64),
	}
}

func (q *UpdateQueue) Enqueue(req *Request) {
	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()
}

func (q *UpdateQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Drain takes every pending request, leaving the spare buffer in place.
func (q *UpdateQueue) Drain() []*Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := q.pending
	q.pending = q.spare[:0]
	q.spare = nil

	return batch
}

// Recycle gives a drained buffer back to be reused by the next drain.
func (q *UpdateQueue) Recycle(buf []*Request) {
	clear(buf)

	q.mu.Lock()
	if q.spare == nil {
		q.spare = buf[:0]
	}
	q.mu.Unlock()
}
