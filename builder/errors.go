package builder

import "errors"

// ErrUnsetField is matched by every UnsetFieldError.
var ErrUnsetField = errors.New("required field not set")

// UnsetFieldError is returned by a generated Build method when a required
// field was never set.
type UnsetFieldError struct {
	Type  string
	Field string
}

func (e *UnsetFieldError) Error() string {
	return e.Type + "." + e.Field + " needs to be set"
}

// Is makes errors.Is(err, ErrUnsetField) succeed.
func (e *UnsetFieldError) Is(target error) bool {
	return target == ErrUnsetField
}
