package report

import (
	"bytes"
	"fmt"
	"path"
	"text/template"

	vfs "github.com/recrep/recrep/internal/assets"
)

const (
	ReportTemplateBasePath = "templates/report"

	templateCrashes   = "crashes.tmpl"
	templateNoCrashes = "no_crashes.tmpl"
)

// TemplateError is returned when a report template can't be loaded, parsed
// or executed.
type TemplateError struct {
	Name string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to render the %s template: %v", e.Name, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// Render formats the document with the crashes template, or with the no
// crashes template when no crash group is left.
func Render(doc *Document) (string, error) {
	name := templateCrashes
	if doc.Empty() {
		name = templateNoCrashes
	}
	src, err := vfs.ReadFile(path.Join(ReportTemplateBasePath, name))
	if err != nil {
		return "", &TemplateError{Name: name, Err: err}
	}
	return renderTemplate(name, string(src), doc)
}

func renderTemplate(name, src string, doc *Document) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", &TemplateError{Name: name, Err: err}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", &TemplateError{Name: name, Err: err}
	}
	return buf.String(), nil
}
