package types

import (
	"bytes"
	"encoding/json"
)

// Field tracks whether a JSON field was explicitly present, so a patch can tell
// "leave unchanged" apart from "set to the zero value or null".
type Field[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler. A literal null marks the field as
// present with the zero value of T.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	var zero T
	if bytes.Equal(trimmed, []byte("null")) {
		f.Set = true
		f.Value = zero
		return nil
	}

	var parsed T
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	f.Set = true
	f.Value = parsed
	return nil
}

// MarshalJSON writes the value, or null when the field is absent.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Apply overwrites *dst when the field is present.
func (f Field[T]) Apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}
