// Package emit renders builder types from a classified struct model.
package emit

import (
	"slices"

	"github.com/bobcob7/builder-gen/internal/codegen"
	"github.com/bobcob7/builder-gen/internal/codegen/directive"
	"github.com/bobcob7/builder-gen/internal/codegen/inspect"
)

// BuilderSuffix is appended to the record name to name its builder.
const BuilderSuffix = "Builder"

// FieldDescriptor is one record field with its classification and options.
type FieldDescriptor struct {
	Name         string
	DeclaredType string
	Shape        inspect.Shape
	InnerType    string // Equal to DeclaredType for Plain fields
	Options      directive.FieldOptions
}

// BuilderSpec describes the builder generated for one record type.
type BuilderSpec struct {
	Package      string
	OriginalName string
	BuilderName  string
	Fields       []FieldDescriptor // In declaration order
	Imports      []codegen.ImportInfo
}

// NewBuilderSpec returns the spec for the record originalName. The field and
// import slices are copied.
func NewBuilderSpec(pkg, originalName string, fields []FieldDescriptor, imports []codegen.ImportInfo) *BuilderSpec {
	return &BuilderSpec{
		Package:      pkg,
		OriginalName: originalName,
		BuilderName:  originalName + BuilderSuffix,
		Fields:       slices.Clone(fields),
		Imports:      slices.Clone(imports),
	}
}
