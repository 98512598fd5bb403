package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.ResumeDocument{
		Contact: types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Summary: "Backend engineer.",
		Experience: []types.ExperienceEntry{
			{JobTitle: "Senior Engineer", Company: "Acme Corp", Responsibilities: []string{"Built APIs", "Led migrations"}},
		},
		Education: []types.EducationEntry{{Degree: "BSc Computer Science", Institution: "State University"}},
		Skills:    []string{"Go", "PostgreSQL"},
	}

	p.PrintResume(doc)
	output := buf.String()

	assert.Contains(t, output, "GENERATED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Senior Engineer, Acme Corp (2 bullets)")
	assert.Contains(t, output, "BSc Computer Science")
	assert.Contains(t, output, "Skills (2): Go, PostgreSQL")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResume_TruncatesLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.ResumeDocument{}
	for i := 0; i < maxItemsToShow+2; i++ {
		doc.Experience = append(doc.Experience, types.ExperienceEntry{JobTitle: "Engineer", Company: "Co"})
	}

	p.PrintResume(doc)

	assert.Contains(t, buf.String(), "... and 2 more")
	assert.Contains(t, buf.String(), "(no name)")
}

func TestPrintBox_LinesFitWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestPrintHistoryEntry(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	entry := &types.HistoryEntry{
		ID:        "abc-123",
		Name:      "Jane Doe",
		Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Resume:    types.ResumeDocument{Contact: types.ContactInfo{Name: "Jane Doe"}},
	}

	p.PrintHistoryEntry(entry)
	output := buf.String()

	assert.Contains(t, output, "HISTORY ENTRY")
	assert.Contains(t, output, "abc-123")
	assert.Contains(t, output, "2024-03-01 09:30:00 UTC")
	assert.Contains(t, output, "GENERATED RESUME")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
