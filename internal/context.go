package internal

import "sync"

type contextEntry struct {
	id    uint64
	slot  uint64
	value any
}

// ContextStack holds the values pushed for context slots during a tree traversal.
// Pushes and pops are strictly nested.
type ContextStack struct {
	mu      sync.Mutex
	nextID  uint64
	entries []contextEntry
}

func NewContextStack() *ContextStack {
	return &ContextStack{}
}

// Push sets value for slot until the returned pop function is called.
// pop must run before any pop of an outer push, usually with defer.
func (s *ContextStack) Push(slot uint64, value any) (pop func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, contextEntry{id: id, slot: slot, value: value})
	s.mu.Unlock()

	popped := false
	return func() {
		if popped {
			return
		}
		popped = true
		s.pop(id)
	}
}

func (s *ContextStack) pop(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	if n == 0 || s.entries[n-1].id != id {
		panic(&ContextStackError{Depth: n})
	}

	s.entries[n-1] = contextEntry{}
	s.entries = s.entries[:n-1]
}

// Get returns the innermost value pushed for slot.
func (s *ContextStack) Get(slot uint64) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].slot == slot {
			return s.entries[i].value, true
		}
	}

	return nil, false
}

func (s *ContextStack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// ambient stacks, one per goroutine
var stacks sync.Map

// AmbientStack returns the context stack of the calling goroutine, or nil if nothing was pushed.
func AmbientStack() *ContextStack {
	if s, ok := stacks.Load(goroutineID()); ok {
		return s.(*ContextStack)
	}

	return nil
}

// WithAmbient pushes value for slot on the calling goroutine stack while fn runs.
func WithAmbient(slot uint64, value any, fn func()) {
	gid := goroutineID()

	var s *ContextStack
	if v, ok := stacks.Load(gid); ok {
		s = v.(*ContextStack)
	} else {
		s = NewContextStack()
		stacks.Store(gid, s)
	}

	pop := s.Push(slot, value)
	defer func() {
		pop()
		if s.Depth() == 0 {
			stacks.Delete(gid)
		}
	}()

	fn()
}
