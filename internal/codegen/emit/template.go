package emit

const builderTemplate = `// Code generated by builder-gen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}{{quote .Path}}
{{- end}}
)

// {{.BuilderName}} assembles a {{.OriginalName}} one field at a time.
// The zero value has every field unset.
type {{.BuilderName}} struct {
	{{.Storage}} struct {
{{- range .Fields}}
		{{.Name}} {{$.Runtime}}.Option[{{.DeclaredType}}]
{{- end}}
	}
}

// {{.FactoryName}} returns a {{.BuilderName}} with every field unset.
func {{.FactoryName}}() {{.BuilderName}} {
	return {{.BuilderName}}{}
}
{{range .Fields}}
{{- if eq .Kind "accumulate"}}
// {{.Method}} appends v to {{.Name}}.
func (b {{$.BuilderName}}) {{.Method}}(v {{.InnerType}}) {{$.BuilderName}} {
	b.{{$.Storage}}.{{.Name}} = {{$.Runtime}}.Some(append({{$.Slices}}.Clip(b.{{$.Storage}}.{{.Name}}.OrZero()), v))
	return b
}
{{else if eq .Kind "sequence"}}
// {{.Method}} replaces {{.Name}} with a copy of v.
func (b {{$.BuilderName}}) {{.Method}}(v ...{{.InnerType}}) {{$.BuilderName}} {
	b.{{$.Storage}}.{{.Name}} = {{$.Runtime}}.Some(({{.DeclaredType}})({{$.Slices}}.Clone(v)))
	return b
}
{{else if eq .Kind "optional"}}
// {{.Method}} sets {{.Name}} to v.
func (b {{$.BuilderName}}) {{.Method}}(v {{.InnerType}}) {{$.BuilderName}} {
	b.{{$.Storage}}.{{.Name}} = {{$.Runtime}}.Some({{.SomeFunc}}(v))
	return b
}
{{else}}
// {{.Method}} sets {{.Name}}.
func (b {{$.BuilderName}}) {{.Method}}(v {{.DeclaredType}}) {{$.BuilderName}} {
	b.{{$.Storage}}.{{.Name}} = {{$.Runtime}}.Some(v)
	return b
}
{{end}}
{{- end}}
// {{.Build}} returns the assembled {{.OriginalName}}, or an error naming the
// first required field that was never set.
func (b {{.BuilderName}}) {{.Build}}() ({{.OriginalName}}, error) {
	var out {{.OriginalName}}
{{- range .Fields}}
{{- if eq .Kind "optional"}}
	out.{{.Name}} = {{.Stored}}
{{- else if .DefaultMethod}}
	if b.{{$.Storage}}.{{.Name}}.IsSome() {
		out.{{.Name}} = {{.Stored}}
	} else {
		out.{{.Name}} = b.{{.DefaultMethod}}()
	}
{{- else}}
	if b.{{$.Storage}}.{{.Name}}.IsNone() {
		return {{$.OriginalName}}{}, &{{$.Runtime}}.UnsetFieldError{Type: {{quote $.OriginalName}}, Field: {{quote .Name}}}
	}
	out.{{.Name}} = {{.Stored}}
{{- end}}
{{- end}}
	return out, nil
}
{{- range .Fields}}
{{- if .DefaultMethod}}

// {{.DefaultMethod}} evaluates the default of {{.Name}} at package scope.
func ({{$.BuilderName}}) {{.DefaultMethod}}() {{.DeclaredType}} {
	return {{.Options.Default}}
}
{{- end}}
{{- end}}
`
