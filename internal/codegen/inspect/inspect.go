// Package inspect classifies struct field types by the spelling of their
// outermost type constructor.
package inspect

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
)

// Default wrapper spellings. Optional fields are declared as
// builder.Option[T]; named sequences as Seq[T]. Plain []T is always a sequence.
const (
	DefaultOptionalWrapper = "Option"
	DefaultSequenceWrapper = "Seq"
)

// ErrWrapperArity is matched by every WrapperArityError.
var ErrWrapperArity = errors.New("wrapper type needs exactly one type argument")

// Shape is the classification of a field type.
type Shape int

const (
	Plain Shape = iota
	Optional
	Sequence
)

func (s Shape) String() string {
	switch s {
	case Plain:
		return "plain"
	case Optional:
		return "optional"
	case Sequence:
		return "sequence"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Wrappers names the generic types recognised as optional and sequence
// wrappers. Only the type name is compared; the package qualifier is ignored.
type Wrappers struct {
	Optional string
	Sequence string
}

// DefaultWrappers returns the wrapper names used when none are configured.
func DefaultWrappers() Wrappers {
	return Wrappers{Optional: DefaultOptionalWrapper, Sequence: DefaultSequenceWrapper}
}

// Classification is the result of classifying one type expression.
type Classification struct {
	Shape     Shape
	Inner     string   // Wrapped type, or the whole type for Plain
	InnerExpr ast.Expr
}

// WrapperArityError reports a recognised wrapper used with zero or several
// type arguments.
type WrapperArityError struct {
	Type  string
	Args  int
	Shape Shape
}

func (e *WrapperArityError) Error() string {
	return fmt.Sprintf("%s wrapper %s has %d type arguments, want 1", e.Shape, e.Type, e.Args)
}

func (e *WrapperArityError) Unwrap() error { return ErrWrapperArity }

// Inspector classifies type expressions.
type Inspector struct {
	Wrappers Wrappers
}

// New returns an Inspector for w, filling empty names with the defaults.
func New(w Wrappers) *Inspector {
	if w.Optional == "" {
		w.Optional = DefaultOptionalWrapper
	}
	if w.Sequence == "" {
		w.Sequence = DefaultSequenceWrapper
	}
	return &Inspector{Wrappers: w}
}

// Classify matches the outermost constructor of expr against the configured
// wrappers. The result depends on expr alone.
func (in *Inspector) Classify(expr ast.Expr) (Classification, error) {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			break
		}
		expr = paren.X
	}
	if arr, ok := expr.(*ast.ArrayType); ok && arr.Len == nil {
		return classification(Sequence, arr.Elt), nil
	}
	base, args := splitGeneric(expr)
	shape, ok := in.wrapperShape(base)
	if !ok {
		return classification(Plain, expr), nil
	}
	if len(args) != 1 {
		return Classification{}, &WrapperArityError{
			Type:  types.ExprString(expr),
			Args:  len(args),
			Shape: shape,
		}
	}
	return classification(shape, args[0]), nil
}

func (in *Inspector) wrapperShape(base ast.Expr) (Shape, bool) {
	var name string
	switch t := base.(type) {
	case *ast.Ident:
		name = t.Name
	case *ast.SelectorExpr:
		name = t.Sel.Name
	default:
		return Plain, false
	}
	switch name {
	case in.Wrappers.Optional:
		return Optional, true
	case in.Wrappers.Sequence:
		return Sequence, true
	}
	return Plain, false
}

// splitGeneric separates a possibly instantiated type into its base name
// expression and type arguments.
func splitGeneric(expr ast.Expr) (ast.Expr, []ast.Expr) {
	switch t := expr.(type) {
	case *ast.IndexExpr:
		return t.X, []ast.Expr{t.Index}
	case *ast.IndexListExpr:
		return t.X, t.Indices
	}
	return expr, nil
}

func classification(shape Shape, inner ast.Expr) Classification {
	return Classification{Shape: shape, Inner: types.ExprString(inner), InnerExpr: inner}
}
