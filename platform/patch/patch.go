// Package patch provides a field type for partial updates that keeps
// "absent", "null" and "value" apart, and a builder for outbound payloads
// that only carries fields holding a value.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is an optional value decoded from a JSON request body.
// The zero value is absent. A JSON null yields a set field with IsNull true.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Value returns a set field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field was present in the input.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was present and null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value and whether a non-null value is present.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.value = zero
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON encodes null for absent or null fields.
// Payloads should go through Object so absent fields are skipped entirely.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// ValidationValue exposes the underlying value to the validator.
// Absent and null fields report nil so "omitempty" rules skip them.
func (f Field[T]) ValidationValue() any {
	if !f.set || f.null {
		return nil
	}
	return f.value
}

// Object is a JSON object that only carries fields holding a value.
type Object map[string]any

// Put adds key to o when f holds a value. Absent and null fields are skipped.
func Put[T any](o Object, key string, f Field[T]) {
	if v, ok := f.Get(); ok {
		o[key] = v
	}
}

// PutNonEmpty is Put for strings that also skips the empty string.
func PutNonEmpty(o Object, key string, f Field[string]) {
	if v, ok := f.Get(); ok && v != "" {
		o[key] = v
	}
}

// PutObject adds a nested object when it has at least one key.
func (o Object) PutObject(key string, child Object) {
	if len(child) == 0 {
		return
	}
	o[key] = child
}

// Empty reports whether no field was set.
func (o Object) Empty() bool { return len(o) == 0 }
