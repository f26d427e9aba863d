package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ParseStruct parses a Go source file and extracts struct information.
func ParseStruct(dir, filename, typeName string) (*StructInfo, error) {
	return ParseSource(filepath.Join(dir, filename), nil, typeName)
}

// ParseSource parses src (or the file at filename when src is nil) and
// extracts struct information for typeName.
func ParseSource(filename string, src any, typeName string) (*StructInfo, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	imports := collectImports(f)
	spec, err := findTypeSpec(f, typeName)
	if err != nil {
		return nil, err
	}
	info, err := ParseTypeSpec(spec, imports)
	if err != nil {
		return nil, err
	}
	info.Package = f.Name.Name
	info.SourceFile = filepath.Base(filename)
	return info, nil
}

// ParseTypeSpec turns a type declaration into a StructInfo. Only structs made
// entirely of named fields are accepted; anything else yields an
// *UnsupportedDeclarationError naming the shape.
func ParseTypeSpec(spec *ast.TypeSpec, imports []ImportInfo) (*StructInfo, error) {
	name := spec.Name.Name
	if spec.Assign.IsValid() {
		return nil, &UnsupportedDeclarationError{Type: name, Shape: "type alias"}
	}
	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return nil, &UnsupportedDeclarationError{Type: name, Shape: "generic struct"}
	}
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, &UnsupportedDeclarationError{Type: name, Shape: shapeOf(spec.Type)}
	}
	if st.Fields == nil || len(st.Fields.List) == 0 {
		return nil, &UnsupportedDeclarationError{Type: name, Shape: "fieldless struct"}
	}
	fields, err := parseStructFields(name, st)
	if err != nil {
		return nil, err
	}
	return &StructInfo{
		Name:    name,
		Fields:  fields,
		Imports: imports,
	}, nil
}

func collectImports(f *ast.File) []ImportInfo {
	imports := make([]ImportInfo, 0, len(f.Imports))
	for _, imp := range f.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		alias := ""
		if imp.Name != nil {
			alias = imp.Name.Name
		}
		imports = append(imports, ImportInfo{Path: path, Alias: alias})
	}
	return imports
}

func findTypeSpec(f *ast.File, typeName string) (*ast.TypeSpec, error) {
	for _, decl := range f.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if ok && typeSpec.Name.Name == typeName {
				return typeSpec, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, typeName)
}

func parseStructFields(typeName string, st *ast.StructType) ([]FieldInfo, error) {
	fields := make([]FieldInfo, 0, st.Fields.NumFields())
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return nil, &UnsupportedDeclarationError{
				Type:  typeName,
				Shape: "embedded field " + exprToString(field.Type),
			}
		}
		tag, err := unquoteTag(field.Tag)
		if err != nil {
			return nil, fmt.Errorf("type %s: field %s: %w", typeName, field.Names[0].Name, err)
		}
		directives := fieldDirectives(field, tag)
		for _, name := range field.Names {
			fields = append(fields, FieldInfo{
				Name:       name.Name,
				Type:       exprToString(field.Type),
				TypeExpr:   field.Type,
				Tag:        tag,
				Directives: slices.Clone(directives),
			})
		}
	}
	return fields, nil
}

func unquoteTag(lit *ast.BasicLit) (string, error) {
	if lit == nil {
		return "", nil
	}
	tag, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", fmt.Errorf("malformed struct tag %s: %w", lit.Value, err)
	}
	return tag, nil
}

// fieldDirectives gathers raw directive text: +builder: markers from the doc
// and line comments first, then the builder struct tag.
func fieldDirectives(field *ast.Field, tag string) []string {
	var out []string
	for _, group := range []*ast.CommentGroup{field.Doc, field.Comment} {
		if group == nil {
			continue
		}
		for _, c := range group.List {
			text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
			if rest, ok := strings.CutPrefix(text, DirectiveMarker); ok {
				out = append(out, strings.TrimSpace(rest))
			}
		}
	}
	if value, ok := reflect.StructTag(tag).Lookup(DirectiveTag); ok {
		out = append(out, value)
	}
	return out
}

func shapeOf(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.InterfaceType:
		return "interface"
	case *ast.FuncType:
		return "func type"
	case *ast.MapType:
		return "map type"
	case *ast.ChanType:
		return "chan type"
	case *ast.StarExpr:
		return "pointer type"
	case *ast.ArrayType:
		if t.Len == nil {
			return "slice type"
		}
		return "array type"
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		return "named type " + exprToString(expr)
	}
	return "non-struct type " + exprToString(expr)
}

func exprToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + exprToString(t.X)
	case *ast.SelectorExpr:
		return exprToString(t.X) + "." + t.Sel.Name
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "any"
		}
	}
	return types.ExprString(expr)
}

// FindTypeAfterGenerateDirective returns the first struct type whose doc
// comment holds a go:generate directive invoking generatorName.
func FindTypeAfterGenerateDirective(dir, filename, generatorName string) (string, error) {
	return findStruct(filepath.Join(dir, filename), func(_ *token.FileSet, decl *ast.GenDecl, _ *ast.TypeSpec) bool {
		if decl.Doc == nil {
			return false
		}
		return slices.ContainsFunc(decl.Doc.List, func(c *ast.Comment) bool {
			directive, ok := strings.CutPrefix(c.Text, "//go:generate ")
			return ok && strings.Contains(directive, generatorName)
		})
	}, fmt.Sprintf("no struct type found after go:generate %s directive", generatorName))
}

// FindTypeAfterLine returns the first struct type declared below lineNum,
// the line go generate reports in GOLINE.
func FindTypeAfterLine(filename string, lineNum int) (string, error) {
	return findStruct(filename, func(fset *token.FileSet, _ *ast.GenDecl, spec *ast.TypeSpec) bool {
		return fset.Position(spec.Pos()).Line > lineNum
	}, fmt.Sprintf("no struct type found after line %d", lineNum))
}

func findStruct(filename string, match func(*token.FileSet, *ast.GenDecl, *ast.TypeSpec) bool, notFound string) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parsing file: %w", err)
	}
	for _, decl := range f.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if _, ok := typeSpec.Type.(*ast.StructType); ok && match(fset, genDecl, typeSpec) {
				return typeSpec.Name.Name, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTypeNotFound, notFound)
}

// CollectRequiredImports determines which imports are needed for generated code.
// The result is sorted by path.
func CollectRequiredImports(fields []FieldInfo, fileImports []ImportInfo) []ImportInfo {
	byName := make(map[string]ImportInfo, len(fileImports))
	for _, imp := range fileImports {
		byName[imp.Name()] = imp
	}
	needed := make(map[string]ImportInfo)
	for _, f := range fields {
		if f.TypeExpr == nil {
			continue
		}
		ast.Inspect(f.TypeExpr, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if pkg, ok := sel.X.(*ast.Ident); ok {
				if imp, ok := byName[pkg.Name]; ok {
					needed[imp.Path] = imp
				}
			}
			return false
		})
	}
	return sortedImports(needed)
}
