// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/intelliresume/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a human-readable summary of a generated resume.
func (p *Printer) PrintResume(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	name := doc.Contact.Name
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if doc.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Contact.Email))
	}
	if doc.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", doc.Summary))
	}
	sb.WriteString("\n")

	if len(doc.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s", exp.JobTitle, exp.Company))
			sb.WriteString(fmt.Sprintf(" (%d bullets)\n", len(exp.Responsibilities)))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(doc.Education), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", doc.Education[i].Degree, doc.Education[i].Institution))
		}
		if len(doc.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Education)-3))
		}
		sb.WriteString("\n")
	}

	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(doc.Skills), strings.Join(doc.Skills, ", ")))
	}

	p.printBox("GENERATED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistoryEntry outputs the header of a saved history entry followed by
// its resume summary.
func (p *Printer) PrintHistoryEntry(entry *types.HistoryEntry) {
	if entry == nil {
		return
	}

	content := fmt.Sprintf("ID:       %s\nName:     %s\nCreated:  %s",
		entry.ID, entry.Name, entry.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))
	p.printBox("HISTORY ENTRY", content)
	p.PrintResume(&entry.Resume)
}
