package model

// Optional distinguishes an absent value from a present zero value.
type Optional[T any] struct {
	value T
	set   bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OptionalText maps form input to an Optional where missing or empty text means "leave unchanged".
func OptionalText(s *string) Optional[string] {
	if s == nil || *s == "" {
		return None[string]()
	}
	return Some(*s)
}
