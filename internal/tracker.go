package internal

import "sync"

// Tracker holds the modify info of each goroutine.
// Writes issued while an animation samples inherit its importance this way,
// even when they go through derived variables.
type Tracker struct {
	current sync.Map // goroutine id -> ModifyInfo
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) RunWithModify(info ModifyInfo, fn func()) {
	gid := goroutineID()

	prev, hadPrev := t.current.Load(gid)
	t.current.Store(gid, info)
	defer func() {
		if hadPrev {
			t.current.Store(gid, prev)
		} else {
			t.current.Delete(gid)
		}
	}()

	fn()
}

func (t *Tracker) Current() ModifyInfo {
	if info, ok := t.current.Load(goroutineID()); ok {
		return info.(ModifyInfo)
	}

	return ModifyInfo{}
}
