package types

import "fmt"

// TemplateID identifies a visual resume template.
type TemplateID string

// Available templates.
const (
	TemplateClassic  TemplateID = "classic"
	TemplateModern   TemplateID = "modern"
	TemplateCreative TemplateID = "creative"
)

// DefaultTemplate is used when no template is chosen.
const DefaultTemplate = TemplateModern

// TemplateInfo describes a template for listings.
type TemplateInfo struct {
	ID   TemplateID `json:"id"`
	Name string     `json:"name"`
}

// Templates lists the available templates in display order.
var Templates = []TemplateInfo{
	{ID: TemplateClassic, Name: "Classic Elegance"},
	{ID: TemplateModern, Name: "Modern Professional"},
	{ID: TemplateCreative, Name: "Creative Impact"},
}

// ParseTemplateID resolves a template id, falling back to the default for "".
func ParseTemplateID(s string) (TemplateID, error) {
	if s == "" {
		return DefaultTemplate, nil
	}
	for _, t := range Templates {
		if string(t.ID) == s {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("unknown template %q", s)
}

// ExportFormat is an output format for a rendered resume.
type ExportFormat string

// Supported export formats.
const (
	FormatHTML ExportFormat = "html"
	FormatPDF  ExportFormat = "pdf"
	FormatDOCX ExportFormat = "docx"
)

// ExportFormats lists every supported format.
var ExportFormats = []ExportFormat{FormatHTML, FormatPDF, FormatDOCX}

// ParseExportFormat validates an export format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	for _, f := range ExportFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/html; charset=utf-8"
	}
}
