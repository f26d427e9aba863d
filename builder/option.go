// Package builder holds the runtime support used by code generated with
// builder-gen: the Option type backing every builder field and the error
// returned when a required field was never set.
package builder

import "fmt"

// Option holds a value that may or may not be set.
// The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an unset Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and whether it was set.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is held.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the Option is unset.
func (o Option[T]) IsNone() bool { return !o.ok }

// OrZero returns the held value, or the zero value of T when unset.
func (o Option[T]) OrZero() T {
	return o.value
}

// OrElse returns the held value, or fallback when unset.
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
