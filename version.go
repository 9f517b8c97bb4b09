package vars

import (
	"slices"
	"sync"
)

// sourceKey identifies the state of a source: which variable and which version of it.
type sourceKey struct {
	id      uint64
	version uint64
}

func keyOf(v AnyVar) sourceKey {
	return sourceKey{id: v.ID(), version: v.Version()}
}

func keysOf(vars []AnyVar) []sourceKey {
	keys := make([]sourceKey, len(vars))
	for i, v := range vars {
		keys[i] = keyOf(v)
	}
	return keys
}

// versionTracker gives a derived variable its own monotonic version,
// bumped whenever the keys of the sources it reads differ from the last ones seen.
type versionTracker struct {
	mu      sync.Mutex
	keys    []sourceKey
	version uint64
}

func (t *versionTracker) observe(keys ...sourceKey) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.version == 0 || !slices.Equal(t.keys, keys) {
		t.keys = slices.Clone(keys)
		t.version++
	}

	return t.version
}

// derivedHooks is the hook list of a derived variable that listens to several sources.
// It notifies at most once per version so a change seen through two sources is reported once.
type derivedHooks struct {
	once     sync.Once
	mu       sync.Mutex
	notified uint64
}

func (d *derivedHooks) shouldNotify(version uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if version == d.notified {
		return false
	}
	d.notified = version
	return true
}

func (d *derivedHooks) reset(version uint64) {
	d.mu.Lock()
	d.notified = version
	d.mu.Unlock()
}

func maxUpdate(vars ...AnyVar) UpdateID {
	var last UpdateID
	for _, v := range vars {
		last = max(last, v.LastUpdate())
	}
	return last
}
