package codegen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDeclaration is matched by every UnsupportedDeclarationError.
	ErrUnsupportedDeclaration = errors.New("unsupported declaration")
	// ErrTypeNotFound is returned when the requested type is not declared.
	ErrTypeNotFound = errors.New("type not found")
)

// UnsupportedDeclarationError reports a type whose shape is not a struct made
// only of named fields.
type UnsupportedDeclarationError struct {
	Type  string
	Shape string
}

func (e *UnsupportedDeclarationError) Error() string {
	return fmt.Sprintf("type %s: unsupported declaration: %s", e.Type, e.Shape)
}

func (e *UnsupportedDeclarationError) Unwrap() error { return ErrUnsupportedDeclaration }
