// Package codegen provides shared types and utilities for code generation tools.
package codegen

import (
	"go/ast"
	"path"
	"strings"
)

// DirectiveTag is the struct tag key holding per-field builder directives.
const DirectiveTag = "builder"

// DirectiveMarker prefixes builder directives written as field comments,
// e.g. "// +builder:each=Arg".
const DirectiveMarker = "+builder:"

// StructInfo holds information about a parsed struct type.
type StructInfo struct {
	Name       string
	Package    string
	Fields     []FieldInfo
	Imports    []ImportInfo
	SourceFile string
}

// FieldInfo holds information about a struct field.
type FieldInfo struct {
	Name       string
	Type       string   // Type expression as written (e.g., "[]string", "builder.Option[int]")
	TypeExpr   ast.Expr // Original AST expression
	Tag        string   // Struct tag, unquoted
	Directives []string // Raw directive text from the builder tag and +builder: markers
}

// ImportInfo holds information about an import.
type ImportInfo struct {
	Path  string
	Alias string
}

// Name returns the identifier the import is referenced by in source.
func (i ImportInfo) Name() string {
	if i.Alias != "" {
		return i.Alias
	}
	base := path.Base(i.Path)
	if len(base) > 1 && base[0] == 'v' && strings.Trim(base[1:], "0123456789") == "" {
		base = path.Base(path.Dir(i.Path))
	}
	if dot := strings.IndexByte(base, '.'); dot > 0 {
		base = base[:dot]
	}
	return strings.TrimPrefix(base, "go-")
}

// GeneratorConfig holds common configuration for generators.
type GeneratorConfig struct {
	TypeName   string
	SourceFile string
	SourceDir  string
	SourcePkg  string
	OutputDir  string
	OutputPkg  string
	Stdout     bool // Write generated code to stdout instead of a file
}
