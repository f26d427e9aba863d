// Package buildergen wires parsing, type inspection, directive resolution and
// emission into the builder code generation subtool.
package buildergen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bobcob7/builder-gen/internal/codegen"
	"github.com/bobcob7/builder-gen/internal/codegen/directive"
	"github.com/bobcob7/builder-gen/internal/codegen/emit"
	"github.com/bobcob7/builder-gen/internal/codegen/inspect"
)

// OutputSuffix is appended to the source file name to name the generated file.
const OutputSuffix = "_builder.go"

// Options configure a generation run.
type Options struct {
	Wrappers inspect.Wrappers
	Package  string      // Package of the generated file; defaults to the source package
	Logger   *log.Logger // nil discards log output
}

// Generate returns the source of the builder for info.
func Generate(info *codegen.StructInfo, opts Options) ([]byte, error) {
	spec, err := NewSpec(info, opts)
	if err != nil {
		return nil, err
	}
	return emit.New().Emit(spec)
}

// NewSpec classifies every field of info and resolves its directives.
func NewSpec(info *codegen.StructInfo, opts Options) (*emit.BuilderSpec, error) {
	logger := opts.logger()
	inspector := inspect.New(opts.Wrappers)
	fields := make([]emit.FieldDescriptor, 0, len(info.Fields))
	defaults := make([]string, 0, len(info.Fields))
	for _, f := range info.Fields {
		class, err := inspector.Classify(f.TypeExpr)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", info.Name, f.Name, err)
		}
		options, err := directive.Resolve(f.Directives)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", info.Name, f.Name, err)
		}
		if options.HasEach() && class.Shape != inspect.Sequence {
			logger.Warn("each directive ignored on non-sequence field", "type", info.Name, "field", f.Name, "shape", class.Shape)
		}
		if options.HasDefault() {
			if class.Shape == inspect.Optional {
				logger.Warn("default directive ignored on optional field", "type", info.Name, "field", f.Name)
			} else {
				defaults = append(defaults, options.Default)
			}
		}
		inner := class.Inner
		if class.Shape == inspect.Plain {
			inner = f.Type
		}
		fields = append(fields, emit.FieldDescriptor{
			Name:         f.Name,
			DeclaredType: f.Type,
			Shape:        class.Shape,
			InnerType:    inner,
			Options:      options,
		})
		logger.Debug("classified field", "type", info.Name, "field", f.Name, "shape", class.Shape, "inner", inner)
	}
	imports := codegen.MergeImports(
		codegen.CollectRequiredImports(info.Fields, info.Imports),
		codegen.CollectTextImports(defaults, info.Imports),
	)
	pkg := opts.Package
	if pkg == "" {
		pkg = info.Package
	}
	return emit.NewBuilderSpec(pkg, info.Name, fields, imports), nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Subtool implements the builder code generator.
type Subtool struct {
	Wrappers inspect.Wrappers
	Logger   *log.Logger
	Stdout   io.Writer // Destination when cfg.Stdout is set; defaults to os.Stdout
}

// Name returns the subtool name.
func (s *Subtool) Name() string { return "builder" }

// Description returns the subtool description.
func (s *Subtool) Description() string {
	return "Generate fluent builder types with required-field validation for structs"
}

// Run parses the configured source file and writes the generated builder.
func (s *Subtool) Run(cfg codegen.GeneratorConfig) error {
	info, err := codegen.ParseStruct(cfg.SourceDir, cfg.SourceFile, cfg.TypeName)
	if err != nil {
		return fmt.Errorf("parsing struct: %w", err)
	}
	opts := Options{Wrappers: s.Wrappers, Package: cfg.OutputPkg, Logger: s.Logger}
	src, err := Generate(info, opts)
	if err != nil {
		return fmt.Errorf("generating builder: %w", err)
	}
	if cfg.Stdout {
		out := s.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := out.Write(src)
		return err
	}
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = cfg.SourceDir
	}
	outputFile := filepath.Join(outputDir, OutputFile(cfg.SourceFile, info.Name))
	if err := os.WriteFile(outputFile, src, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	opts.logger().Info("Generated", "file", outputFile, "builder", info.Name+emit.BuilderSuffix)
	return nil
}

// OutputFile names the generated file: command.go with type Command gives
// command_builder.go; other types in the same file get their own suffix.
func OutputFile(sourceFile, typeName string) string {
	base := strings.TrimSuffix(filepath.Base(sourceFile), ".go")
	if strings.EqualFold(base, typeName) {
		return base + OutputSuffix
	}
	return base + "_" + strings.ToLower(typeName) + OutputSuffix
}
