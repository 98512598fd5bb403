// Package ingestion prepares user-supplied text (uploaded resumes and job
// descriptions) before it is embedded in a prompt.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	bulletRunes = []string{"- ", "* ", "• ", "· "}
)

// CleanText normalizes line endings, collapses runs of spaces inside each
// line and keeps at most one blank line in a row. Indentation in front of
// bullets and markdown headings is preserved.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Headings lose their indentation.
	if strings.HasPrefix(trimmed, "#") {
		return innerSpace.ReplaceAllString(trimmed, " ")
	}

	indent := ""
	if isBulletLine(trimmed) {
		indent = strings.Repeat(" ", len(line)-len(trimmed))
	}
	return indent + innerSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	for _, b := range bulletRunes {
		if strings.HasPrefix(line, b) {
			return true
		}
	}
	return false
}
