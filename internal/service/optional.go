package service

import "encoding/json"

// Optional records whether a JSON field was present in a request body, so
// an omitted field can be told apart from an explicit null or zero value.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON is only called for keys that appear in the body, including
// those whose value is null.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}
