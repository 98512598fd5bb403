package rendering

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer converts a rendered HTML page to PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints HTML to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	// ExecPath overrides the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
}

// NewChromeRenderer returns a renderer with a 60 second timeout.
func NewChromeRenderer(execPath string) *ChromeRenderer {
	return &ChromeRenderer{ExecPath: execPath, Timeout: 60 * time.Second}
}

// RenderPDF loads html into a blank page and prints it on US Letter paper.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if r.Timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, r.Timeout)
		defer cancel()
	}

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				Do(ctx)
			pdf = buf
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Format: "pdf", Message: "browser printing failed", Cause: err}
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, &RenderError{Format: "pdf", Message: fmt.Sprintf("output is not a PDF (%d bytes)", len(pdf))}
	}
	return pdf, nil
}
