package models

import "encoding/json"

// Optional is a field of a partial update. It tells an omitted field apart
// from one explicitly set to null:
//
//	{}                    -> Set=false
//	{"category": null}    -> Set=true, Value=nil
//	{"category": "Dairy"} -> Set=true, Value="Dairy"
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional explicitly set to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Or returns the supplied value when the field was set (even to null),
// otherwise current.
func (o Optional[T]) Or(current *T) *T {
	if o.Set {
		return o.Value
	}
	return current
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what marks the field as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON writes the value, or null when unset.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
