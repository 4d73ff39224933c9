package optional

import (
	"bytes"
	"encoding/json"
)

// Value distinguishes a field that was never supplied from one that was supplied,
// possibly as an explicit JSON null. Update commands are built from these so that
// only supplied fields reach the store.
type Value[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a supplied value.
func Of[T any](v T) Value[T] { return Value[T]{value: v, set: true} }

// Null returns a value that was supplied as an explicit null.
func Null[T any]() Value[T] { return Value[T]{set: true, null: true} }

// IsSet reports whether the field was supplied at all.
func (v Value[T]) IsSet() bool { return v.set }

// IsNull reports whether the field was supplied as null.
func (v Value[T]) IsNull() bool { return v.set && v.null }

// Get returns the value and whether it carries a non-null payload.
func (v Value[T]) Get() (T, bool) { return v.value, v.set && !v.null }

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		v.value = zero
		v.null = true
		return nil
	}
	v.null = false
	return json.Unmarshal(data, &v.value)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
