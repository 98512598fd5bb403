package generation

import (
	"regexp"
	"strings"

	"github.com/jonathan/intelliresume/internal/types"
)

// detailsSeparator splits a details string on a literal backslash-n, a real
// newline, or a comma.
var detailsSeparator = regexp.MustCompile(`\\n|\n|,`)

// normalize converts a schema-valid decoded reply into a ResumeDocument.
// It never fails: list entries are trimmed, empty or non-string entries are
// dropped, and missing optional scalars become "".
func normalize(raw map[string]interface{}) types.ResumeDocument {
	contact, _ := raw["contact"].(map[string]interface{})

	doc := types.ResumeDocument{
		Contact: types.ContactInfo{
			Name:      str(contact["name"]),
			Email:     str(contact["email"]),
			Phone:     str(contact["phone"]),
			LinkedIn:  str(contact["linkedin"]),
			Portfolio: str(contact["portfolio"]),
			Address:   str(contact["address"]),
		},
		Summary:    str(raw["summary"]),
		Experience: []types.ExperienceEntry{},
		Education:  []types.EducationEntry{},
		Skills:     cleanList(raw["skills"]),
	}

	for _, item := range list(raw["experience"]) {
		exp, _ := item.(map[string]interface{})
		doc.Experience = append(doc.Experience, types.ExperienceEntry{
			JobTitle:         str(exp["jobTitle"]),
			Company:          str(exp["company"]),
			Location:         str(exp["location"]),
			StartDate:        str(exp["startDate"]),
			EndDate:          str(exp["endDate"]),
			Responsibilities: cleanList(exp["responsibilities"]),
		})
	}

	for _, item := range list(raw["education"]) {
		edu, _ := item.(map[string]interface{})
		doc.Education = append(doc.Education, types.EducationEntry{
			Degree:         str(edu["degree"]),
			Institution:    str(edu["institution"]),
			Location:       str(edu["location"]),
			GraduationDate: str(edu["graduationDate"]),
			Details:        normalizeDetails(edu["details"]),
		})
	}

	return doc
}

// normalizeDetails accepts a list or a delimited string; anything else is empty.
func normalizeDetails(v interface{}) []string {
	switch d := v.(type) {
	case []interface{}:
		return cleanList(d)
	case string:
		return cleanStrings(detailsSeparator.Split(d, -1))
	default:
		return []string{}
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func list(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

// cleanList trims string entries and drops empty and non-string entries.
func cleanList(v interface{}) []string {
	items := list(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(str(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
