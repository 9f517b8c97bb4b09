package internal

import (
	"slices"
	"sync"
	"sync/atomic"
	"weak"
)

// HookArgs is passed to every hook after a change is committed.
type HookArgs struct {
	Value     any
	Tags      []any
	Animation bool
}

// HookFn is called after each accepted change. Returning false unregisters it.
type HookFn func(args *HookArgs) bool

type hookEntry struct {
	id uint64
	fn HookFn
}

// HookList holds the callbacks registered on one variable.
// It is allocated on its own so handles can reference it weakly.
type HookList struct {
	mu     sync.Mutex
	nextID uint64
	hooks  []hookEntry
}

func NewHookList() *HookList {
	return &HookList{}
}

func (l *HookList) Add(fn HookFn) *HookHandle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.hooks = append(l.hooks, hookEntry{id: l.nextID, fn: fn})

	return &HookHandle{list: weak.Make(l), id: l.nextID}
}

func (l *HookList) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hooks = slices.DeleteFunc(l.hooks, func(e hookEntry) bool { return e.id == id })
}

func (l *HookList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.hooks)
}

// Notify calls every hook with args and drops the ones that return false.
// The list is copied before calling so hooks can add or remove hooks.
func (l *HookList) Notify(args *HookArgs) int {
	l.mu.Lock()
	hooks := slices.Clone(l.hooks)
	l.mu.Unlock()

	var dead []uint64
	for _, h := range hooks {
		if !h.fn(args) {
			dead = append(dead, h.id)
		}
	}

	if len(dead) > 0 {
		l.mu.Lock()
		l.hooks = slices.DeleteFunc(l.hooks, func(e hookEntry) bool { return slices.Contains(dead, e.id) })
		l.mu.Unlock()
	}

	return len(hooks)
}

// HookHandle unregisters its hook on Unhook, unless made permanent.
type HookHandle struct {
	list weak.Pointer[HookList]
	id   uint64
	perm atomic.Bool
}

func (h *HookHandle) Unhook() {
	if h == nil || h.perm.Load() {
		return
	}

	if l := h.list.Value(); l != nil {
		l.remove(h.id)
	}
}

func (h *HookHandle) Perm() {
	if h != nil {
		h.perm.Store(true)
	}
}

func (h *HookHandle) IsPerm() bool {
	return h != nil && h.perm.Load()
}

// IsAlive reports whether the hook is still registered.
func (h *HookHandle) IsAlive() bool {
	if h == nil {
		return false
	}

	l := h.list.Value()
	if l == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.ContainsFunc(l.hooks, func(e hookEntry) bool { return e.id == h.id })
}
