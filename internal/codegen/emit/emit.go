package emit

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bobcob7/builder-gen/internal/codegen"
	"github.com/bobcob7/builder-gen/internal/codegen/inspect"
)

// RuntimeImportPath is the package providing Option and UnsetFieldError to
// generated code.
const RuntimeImportPath = "github.com/bobcob7/builder-gen/builder"

// Names reserved on every generated builder.
const (
	buildMethod  = "Build"
	storageField = "values"
)

// ErrNameConflict is returned when two generated members would share a name.
var ErrNameConflict = errors.New("builder name conflict")

// Method kinds rendered by the template.
const (
	kindSet        = "set"
	kindOptional   = "optional"
	kindSequence   = "sequence"
	kindAccumulate = "accumulate"
)

// Emitter renders builder source code.
type Emitter struct {
	gen *codegen.TemplateGenerator
}

// New returns an Emitter.
func New() *Emitter {
	return &Emitter{gen: codegen.NewTemplateGenerator(nil)}
}

// Emit renders the builder described by spec. spec is not modified.
func (e *Emitter) Emit(spec *BuilderSpec) ([]byte, error) {
	data, err := newTemplateData(spec)
	if err != nil {
		return nil, err
	}
	src, err := e.gen.Render(builderTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", spec.BuilderName, err)
	}
	return src, nil
}

type templateData struct {
	Package      string
	OriginalName string
	BuilderName  string
	FactoryName  string
	Storage      string
	Build        string
	Runtime      string // Qualifier of the runtime package
	Slices       string // Qualifier of the slices package, empty when unused
	Imports      []codegen.ImportInfo
	Fields       []fieldData
}

type fieldData struct {
	FieldDescriptor
	Method        string
	Kind          string
	SomeFunc      string // Constructor of the optional wrapper
	DefaultMethod string // Holds the default expression, empty without one
	Stored        string // Expression reading the stored value in Build
}

func newTemplateData(spec *BuilderSpec) (templateData, error) {
	fields, err := planMethods(spec)
	if err != nil {
		return templateData{}, err
	}
	data := templateData{
		Package:      spec.Package,
		OriginalName: spec.OriginalName,
		BuilderName:  spec.BuilderName,
		FactoryName:  factoryName(spec.OriginalName),
		Storage:      storageField,
		Build:        buildMethod,
		Fields:       fields,
	}
	imports := spec.Imports
	var runtime codegen.ImportInfo
	data.Runtime, runtime = qualifier(RuntimeImportPath, "builder", "builderrt", imports)
	imports = codegen.MergeImports(imports, []codegen.ImportInfo{runtime})
	for _, f := range fields {
		if f.Shape == inspect.Sequence {
			var slicesImport codegen.ImportInfo
			data.Slices, slicesImport = qualifier("slices", "slices", "stdslices", imports)
			imports = codegen.MergeImports(imports, []codegen.ImportInfo{slicesImport})
			break
		}
	}
	for i := range data.Fields {
		f := &data.Fields[i]
		f.Stored = fmt.Sprintf("b.%s.%s.OrZero()", storageField, f.Name)
		if f.Shape == inspect.Sequence {
			f.Stored = data.Slices + ".Clone(" + f.Stored + ")"
		}
	}
	data.Imports = imports
	return data, nil
}

// planMethods decides the method emitted for each field and rejects
// conflicting names.
func planMethods(spec *BuilderSpec) ([]fieldData, error) {
	owners := map[string]string{
		buildMethod:  "the Build method",
		storageField: "the builder storage",
	}
	fields := make([]fieldData, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		if f.Shape == inspect.Sequence && f.Options.HasEach() && f.Options.Each == f.Name {
			return nil, fmt.Errorf("%w: %s.%s: accumulator name %q equals the field name",
				ErrNameConflict, spec.OriginalName, f.Name, f.Options.Each)
		}
		fd := fieldData{FieldDescriptor: f, Method: f.Name}
		switch {
		case f.Shape == inspect.Sequence && f.Options.HasEach():
			fd.Kind = kindAccumulate
			fd.Method = f.Options.Each
		case f.Shape == inspect.Sequence:
			fd.Kind = kindSequence
		case f.Shape == inspect.Optional:
			fd.Kind = kindOptional
			fd.SomeFunc = someFunc(f.DeclaredType)
		default:
			fd.Kind = kindSet
		}
		if owner, ok := owners[fd.Method]; ok {
			return nil, fmt.Errorf("%w: %s.%s: method %s collides with %s",
				ErrNameConflict, spec.OriginalName, f.Name, fd.Method, owner)
		}
		owners[fd.Method] = "the method of field " + f.Name
		if f.Shape != inspect.Optional && f.Options.HasDefault() {
			fd.DefaultMethod = "default" + f.Name
			if owner, ok := owners[fd.DefaultMethod]; ok {
				return nil, fmt.Errorf("%w: %s.%s: method %s collides with %s",
					ErrNameConflict, spec.OriginalName, f.Name, fd.DefaultMethod, owner)
			}
			owners[fd.DefaultMethod] = "the default of field " + f.Name
		}
		fields = append(fields, fd)
	}
	return fields, nil
}

// qualifier returns the name generated code uses for the package at path,
// reusing an existing import of it or falling back to alias when name is
// already taken by another package.
func qualifier(path, name, alias string, imports []codegen.ImportInfo) (string, codegen.ImportInfo) {
	taken := false
	for _, imp := range imports {
		if imp.Path == path {
			return imp.Name(), imp
		}
		if imp.Name() == name {
			taken = true
		}
	}
	if taken {
		return alias, codegen.ImportInfo{Path: path, Alias: alias}
	}
	return name, codegen.ImportInfo{Path: path}
}

// someFunc derives the constructor of an optional wrapper from its spelling:
// pkg.Option[T] is built with pkg.Some, a local Option[T] with Some.
func someFunc(declared string) string {
	base, _, _ := strings.Cut(declared, "[")
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[:i] + ".Some"
	}
	return "Some"
}

// factoryName is New<Record>Builder, unexported when the record is.
func factoryName(record string) string {
	if token.IsExported(record) {
		return "New" + record + BuilderSuffix
	}
	r, size := utf8.DecodeRuneInString(record)
	return "new" + string(unicode.ToUpper(r)) + record[size:] + BuilderSuffix
}
