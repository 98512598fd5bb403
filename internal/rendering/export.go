package rendering

import (
	"context"
	"errors"

	"github.com/jonathan/intelliresume/internal/types"
)

// ErrPDFUnavailable is returned when a PDF is requested without a renderer.
var ErrPDFUnavailable = errors.New("PDF export is not available")

// Render produces doc in the requested format. The template applies to HTML
// and PDF output; pdf may be nil when PDF export is not needed.
func Render(ctx context.Context, doc *types.ResumeDocument, format types.ExportFormat, id types.TemplateID, pdf PDFRenderer) ([]byte, error) {
	switch format {
	case types.FormatHTML:
		page, err := RenderHTML(doc, id)
		if err != nil {
			return nil, err
		}
		return []byte(page), nil

	case types.FormatPDF:
		if pdf == nil {
			return nil, ErrPDFUnavailable
		}
		page, err := RenderHTML(doc, id)
		if err != nil {
			return nil, err
		}
		return pdf.RenderPDF(ctx, page)

	case types.FormatDOCX:
		return RenderDOCX(doc)

	default:
		return nil, &RenderError{Format: string(format), Message: "unsupported export format"}
	}
}
