package generator

import (
	"bytes"
	"fmt"
	"text/template"
)

// rendererTemplate is the type switch mapping one error set onto HTTP
// responses. The return expressions arrive preformatted because the builder
// chain depends on whether the set declares a transformer.
const rendererTemplate = `// Render{{.SetName}} maps a {{.SetName}} onto its declared HTTP response.
func Render{{.SetName}}(err {{.SetName}}) *{{.Proof}}.Response {
	switch err.(type) {
{{- range .Arms}}
	case {{.TypeName}}, *{{.TypeName}}:
		return {{.Render}}
{{- end}}
	default:
		return {{.Default}}
	}
}
`

// registrationTemplate is the init function that registers every route of
// the package with the global registry, in declaration order.
const registrationTemplate = `func init() {
{{- range .Routes}}
	{{$.Proof}}.Routes.Register({{$.Proof}}.RouteInfo{
		Method: {{.MethodConstant}}, Path: {{$.Proof}}.Path("{{.Path}}"),
		HandlerName: "{{.HandlerName}}", PackageName: "{{$.PackageName}}",
{{- if .ErrorSet}}
		ErrorSet: "{{.ErrorSet}}",
{{- end}}
{{- if .ParameterTypes}}
		ParameterTypes: {{.ParameterTypes}},
{{- end}}
		Handler: {{.Wrapper}},
	})
{{- end}}
}
`

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
