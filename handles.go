package vars

import "sync"

// Handles collects hook handles, bindings and animations so they can be released together,
// typically when the owner of the hooks goes away.
type Handles struct {
	mu sync.Mutex
	// release functions, run in registration order
	releases []func()
	perms    []func()
}

func (h *Handles) Push(handle Handle) {
	h.add(handle.Unhook, handle.Perm)
}

func (h *Handles) PushBinding(b BindingHandles) {
	h.add(b.Unhook, b.Perm)
}

func (h *Handles) PushAnimation(a *AnimationHandle) {
	h.add(a.Stop, nil)
}

// OnRelease registers fn to run on Release.
func (h *Handles) OnRelease(fn func()) {
	h.add(fn, nil)
}

func (h *Handles) add(release, perm func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.releases = append(h.releases, release)
	if perm != nil {
		h.perms = append(h.perms, perm)
	}
}

func (h *Handles) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.releases)
}

// Release unhooks every hook, stops every animation and empties the collection.
func (h *Handles) Release() {
	h.mu.Lock()
	releases := h.releases
	h.releases, h.perms = nil, nil
	h.mu.Unlock()

	for _, release := range releases {
		release()
	}
}

// Perm makes every collected hook permanent and empties the collection.
// Animations are left running.
func (h *Handles) Perm() {
	h.mu.Lock()
	perms := h.perms
	h.releases, h.perms = nil, nil
	h.mu.Unlock()

	for _, perm := range perms {
		perm()
	}
}
