package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/jonathan/intelliresume/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var (
	pageTemplates    *template.Template
	pageTemplatesErr error
	parseOnce        sync.Once
)

func loadTemplates() (*template.Template, error) {
	parseOnce.Do(func() {
		pageTemplates, pageTemplatesErr = template.New("resume").Funcs(template.FuncMap{
			"displayURL": DisplayURL,
		}).ParseFS(templateFS, "templates/*.html.tmpl")
	})
	return pageTemplates, pageTemplatesErr
}

// RenderHTML renders doc as a standalone HTML page using the given template.
func RenderHTML(doc *types.ResumeDocument, id types.TemplateID) (string, error) {
	if doc == nil {
		return "", &RenderError{Format: "html", Message: "no resume to render"}
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return "", &TemplateError{Message: "failed to parse templates", Cause: err}
	}

	if id == "" {
		id = types.DefaultTemplate
	}
	page := tmpl.Lookup(string(id) + ".html.tmpl")
	if page == nil {
		return "", &TemplateError{Message: fmt.Sprintf("unknown template %q", id)}
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, doc); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}
