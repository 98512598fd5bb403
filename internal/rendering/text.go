package rendering

import (
	"regexp"
	"strings"

	"github.com/jonathan/intelliresume/internal/types"
)

var (
	urlPrefix  = regexp.MustCompile(`^(https?://)?(www\.)?`)
	whitespace = regexp.MustCompile(`\s+`)
)

// SkillsPerRow is how many skills share one line in flat layouts.
const SkillsPerRow = 3

// SkillSeparator joins skills on one line.
const SkillSeparator = "  •  "

// DisplayURL strips the scheme and a leading "www." for display.
func DisplayURL(u string) string {
	return urlPrefix.ReplaceAllString(u, "")
}

// FileName builds the download name for doc: whitespace in the contact name
// becomes "_", an empty name becomes "resume".
func FileName(doc *types.ResumeDocument, ext string) string {
	base := whitespace.ReplaceAllString(doc.Contact.Name, "_")
	if base == "" {
		base = "resume"
	}
	return base + "_Resume." + ext
}

// ContactParts lists the non-empty contact fields in display order.
func ContactParts(c types.ContactInfo) []string {
	parts := make([]string, 0, 5)
	for _, p := range []string{c.Phone, c.Email, c.Address, DisplayURL(c.LinkedIn), DisplayURL(c.Portfolio)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// SkillRows groups skills into lines of SkillsPerRow joined by SkillSeparator.
func SkillRows(skills []string) []string {
	rows := make([]string, 0, (len(skills)+SkillsPerRow-1)/SkillsPerRow)
	for i := 0; i < len(skills); i += SkillsPerRow {
		end := i + SkillsPerRow
		if end > len(skills) {
			end = len(skills)
		}
		rows = append(rows, strings.Join(skills[i:end], SkillSeparator))
	}
	return rows
}
