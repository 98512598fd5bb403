package rendering

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("Chrome not installed, skipping PDF rendering test")
	return ""
}

func TestChromeRenderer_RenderPDF(t *testing.T) {
	chrome := findChrome(t)

	html, err := RenderHTML(sampleDoc(), types.TemplateModern)
	require.NoError(t, err)

	pdf, err := NewChromeRenderer(chrome).RenderPDF(context.Background(), html)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestChromeRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChromeRenderer("/nonexistent/chrome").RenderPDF(ctx, "<html></html>")
	require.Error(t, err)

	var re *RenderError
	assert.True(t, errors.As(err, &re))
	assert.Equal(t, "pdf", re.Format)
}
