package vars

import (
	"math"
	"reflect"
)

// Equaler lets a value type decide when two values are the same.
type Equaler[T any] interface {
	Equal(other T) bool
}

// Cloner lets a value type deep copy itself before it is mutated in place.
// Types without it get their slices and maps copied, pointers stay shared.
type Cloner[T any] interface {
	Clone() T
}

// Equal reports whether a and b are the same value.
// It uses Equaler if implemented, == for basic kinds and reflect.DeepEqual otherwise.
// NaN is equal to NaN, so writing NaN over NaN is not a change.
func Equal[T any](a, b T) bool {
	if eq, ok := any(a).(Equaler[T]); ok {
		return eq.Equal(b)
	}

	switch av := any(a).(type) {
	case float64:
		bv, ok := any(b).(float64)
		return ok && (av == bv || math.IsNaN(av) && math.IsNaN(bv))
	case float32:
		bv, ok := any(b).(float32)
		return ok && (av == bv || math.IsNaN(float64(av)) && math.IsNaN(float64(bv)))
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		complex64, complex128,
		string, bool:
		return any(a) == any(b)
	default:
		return reflect.DeepEqual(a, b)
	}
}

func cloneValue[T any](v *T) *T {
	if c, ok := any(*v).(Cloner[T]); ok {
		nv := c.Clone()
		return &nv
	}

	nv := *v
	copyShared(reflect.ValueOf(&nv).Elem())
	return &nv
}

// copyShared replaces the slices and maps reachable from v with copies,
// so writes through v never land in storage the original still points to.
// Pointers, channels and unexported fields are left as they are.
func copyShared(v reflect.Value) {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() || !v.CanSet() {
			return
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(c, v)
		for i := range c.Len() {
			copyShared(c.Index(i))
		}
		v.Set(c)

	case reflect.Map:
		if v.IsNil() || !v.CanSet() {
			return
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		for it := v.MapRange(); it.Next(); {
			e := reflect.New(v.Type().Elem()).Elem()
			e.Set(it.Value())
			copyShared(e)
			c.SetMapIndex(it.Key(), e)
		}
		v.Set(c)

	case reflect.Array:
		for i := range v.Len() {
			copyShared(v.Index(i))
		}

	case reflect.Struct:
		for i := range v.NumField() {
			copyShared(v.Field(i))
		}

	case reflect.Interface:
		if v.IsNil() || !v.CanSet() {
			return
		}
		e := reflect.New(v.Elem().Type()).Elem()
		e.Set(v.Elem())
		copyShared(e)
		v.Set(e)
	}
}
