package specmodel

import "reflect"

// Optional holds an attribute value together with whether it was ever assigned.
// The zero value is absent. An Optional set to "", 0 or an empty slice is
// present and serializes; an absent Optional is omitted.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet reports whether a value was assigned.
func (o Optional[T]) IsSet() bool { return o.present }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present }

// Or returns the value if present and def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// Set assigns v, making the Optional present.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.present = true
}

// Clear makes the Optional absent again.
func (o *Optional[T]) Clear() {
	var zero T
	o.value = zero
	o.present = false
}

// Equal reports whether both Optionals have the same presence and, when
// present, structurally equal values. A nil slice and an empty slice are
// different values here: they serialize differently.
func (o Optional[T]) Equal(other Optional[T]) bool {
	if o.present != other.present {
		return false
	}
	if !o.present {
		return true
	}
	return reflect.DeepEqual(o.value, other.value)
}
