package vars

import (
	"slices"

	"github.com/AnatoleLucet/vars/internal"
)

// VarModify is the mutable view of a variable value given to Modify closures.
// Closures queued on the same variable in the same apply pass chain: each one
// sees the result of the previous.
type VarModify[T any] struct {
	m *internal.Modify
}

func newDetachedModify[T any](value *T) *VarModify[T] {
	return &VarModify[T]{m: &internal.Modify{Value: value}}
}

// Value returns the current working value.
func (m *VarModify[T]) Value() T {
	return *as[*T](m.m.Value)
}

// peek returns the working value for reading only.
func (m *VarModify[T]) peek() *T {
	return as[*T](m.m.Value)
}

// Set replaces the value. Nothing changes if v equals the current value.
func (m *VarModify[T]) Set(v T) {
	if Equal(m.Value(), v) {
		return
	}

	m.m.Value = &v
	m.m.Owned = true
	m.m.Changed = true
}

// ToMut returns a pointer to a private copy of the value and marks it changed.
func (m *VarModify[T]) ToMut() *T {
	if !m.m.Owned {
		m.m.Value = cloneValue(as[*T](m.m.Value))
		m.m.Owned = true
	}
	m.m.Changed = true

	return as[*T](m.m.Value)
}

// Update requests a notification even if the value does not change.
func (m *VarModify[T]) Update() {
	m.m.Forced = true
}

// PushTag adds a custom tag that hooks receive with the change.
func (m *VarModify[T]) PushTag(tag any) {
	m.m.Tags = append(m.m.Tags, tag)
}

func (m *VarModify[T]) Tags() []any {
	return slices.Clone(m.m.Tags)
}

// IsChanged reports whether the value was replaced or mutated so far.
func (m *VarModify[T]) IsChanged() bool {
	return m.m.Changed
}
