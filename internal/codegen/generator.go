package codegen

import (
	"bytes"
	"fmt"
	"maps"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/tools/imports"
)

// TemplateGenerator handles template-based code generation.
type TemplateGenerator struct {
	FuncMap template.FuncMap
}

// NewTemplateGenerator creates a new TemplateGenerator. The sprig text
// functions are always available; customFuncs take precedence over them.
func NewTemplateGenerator(customFuncs template.FuncMap) *TemplateGenerator {
	funcs := sprig.TxtFuncMap()
	maps.Copy(funcs, customFuncs)
	return &TemplateGenerator{FuncMap: funcs}
}

// Render executes a template and returns the formatted source.
// On a formatting failure the unformatted source is returned with the error.
func (g *TemplateGenerator) Render(tmplText string, data any) ([]byte, error) {
	tmpl, err := template.New("gen").Option("missingkey=error").Funcs(g.FuncMap).Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	formatted, err := FormatSource(buf.Bytes())
	if err != nil {
		return buf.Bytes(), err
	}
	return formatted, nil
}

// FormatSource gofmts src and groups its imports. Imports are never added or
// resolved, so the result depends only on src.
func FormatSource(src []byte) ([]byte, error) {
	formatted, err := imports.Process("", src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return formatted, nil
}

// Subtool defines the interface for code generation subtools.
type Subtool interface {
	Name() string
	Description() string
	Run(cfg GeneratorConfig) error
}
