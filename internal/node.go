package internal

import "sync/atomic"

var nodeIDs atomic.Uint64

// NextID returns a process-wide unique variable id.
func NextID() uint64 {
	return nodeIDs.Add(1)
}

// nodeState is immutable once published, readers never see a partial commit.
type nodeState struct {
	value      any
	tick       Tick
	version    uint64
	animating  bool
	importance uint64
}

// Node is the storage of a read-write variable.
type Node struct {
	id       uint64
	readOnly bool

	state atomic.Pointer[nodeState]
	hooks *HookList

	rt *Runtime
}

func (r *Runtime) NewNode(initial any, readOnly bool) *Node {
	n := &Node{
		id:       NextID(),
		readOnly: readOnly,
		hooks:    NewHookList(),
		rt:       r,
	}
	n.state.Store(&nodeState{value: initial})

	return n
}

func (n *Node) ID() uint64 { return n.id }

func (n *Node) Value() any { return n.state.Load().value }

func (n *Node) LastUpdate() Tick { return n.state.Load().tick }

func (n *Node) Version() uint64 { return n.state.Load().version }

func (n *Node) IsAnimating() bool { return n.state.Load().animating }

func (n *Node) Importance() uint64 { return n.state.Load().importance }

func (n *Node) Hooks() *HookList { return n.hooks }

func (n *Node) Hook(fn HookFn) *HookHandle {
	return n.hooks.Add(fn)
}

// Modify queues fn for the next apply cycle.
// The write carries the modify info of the calling goroutine (see Tracker).
func (n *Node) Modify(fn func(*Modify)) bool {
	if n.readOnly {
		n.rt.Logger().Debug("write to read-only variable ignored", "id", n.id)
		return false
	}

	n.rt.Schedule(&Request{
		node:  n,
		info:  n.rt.tracker.Current(),
		apply: fn,
	})
	return true
}
