package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jonathan/intelliresume/internal/rendering"
	"github.com/jonathan/intelliresume/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume to HTML, PDF and DOCX",
	Long: `Render a generated resume (a JSON file or a history entry) in one or more formats. The formats
are rendered concurrently; PDF output requires Chrome or Chromium.`,
	RunE: runExport,
}

var (
	exportResume    string
	exportHistoryID string
	exportFormats   string
	exportOutDir    string
)

func init() {
	exportCmd.Flags().StringVar(&exportResume, "resume", "", "Path to a generated resume JSON file")
	exportCmd.Flags().StringVar(&exportHistoryID, "history-id", "", "ID of a history entry to export")
	exportCmd.Flags().StringVarP(&exportFormats, "formats", "f", "html,pdf,docx", "Comma-separated export formats")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", ".", "Directory to write the exported files to")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	formats, err := parseFormats(exportFormats)
	if err != nil {
		return err
	}
	templateID, err := types.ParseTemplateID(appConfig.Template)
	if err != nil {
		return err
	}

	doc, err := loadResume(ctx, exportResume, exportHistoryID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var pdf rendering.PDFRenderer
	if slices.Contains(formats, types.FormatPDF) {
		chrome := rendering.NewChromeRenderer(appConfig.ChromePath)
		chrome.Timeout = appConfig.PDFTimeout()
		pdf = chrome
	}

	paths := make([]string, len(formats))
	g, gCtx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			data, err := rendering.Render(gCtx, doc, format, templateID, pdf)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", format, err)
			}

			path := filepath.Join(exportOutDir, rendering.FileName(doc, string(format)))
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
