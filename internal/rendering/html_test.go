package rendering

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *types.ResumeDocument {
	return &types.ResumeDocument{
		Contact: types.ContactInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			LinkedIn: "https://www.linkedin.com/in/jane",
		},
		Summary: "Engineer with <10 years & counting",
		Experience: []types.ExperienceEntry{{
			JobTitle: "Senior Engineer", Company: "Acme", Location: "NYC",
			StartDate: "01/2020", EndDate: "Present",
			Responsibilities: []string{"Built the billing platform"},
		}},
		Education: []types.EducationEntry{{
			Degree: "BS Computer Science", Institution: "State U", GraduationDate: "05/2019",
			Details: []string{"Magna cum laude"},
		}},
		Skills: []string{"Go", "PostgreSQL"},
	}
}

func TestRenderHTML_AllTemplates(t *testing.T) {
	for _, tmpl := range types.Templates {
		t.Run(string(tmpl.ID), func(t *testing.T) {
			out, err := RenderHTML(sampleDoc(), tmpl.ID)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
			assert.Contains(t, out, "Jane Doe")
			assert.Contains(t, out, "Senior Engineer")
			assert.Contains(t, out, "Built the billing platform")
			assert.Contains(t, out, "Magna cum laude")
			assert.Contains(t, out, "PostgreSQL")
			assert.Contains(t, out, ">linkedin.com/in/jane<")
		})
	}
}

func TestRenderHTML_EscapesText(t *testing.T) {
	out, err := RenderHTML(sampleDoc(), types.TemplateClassic)
	require.NoError(t, err)

	assert.Contains(t, out, "&lt;10 years &amp; counting")
	assert.NotContains(t, out, "<10 years")
}

func TestRenderHTML_OmitsEmptySections(t *testing.T) {
	doc := &types.ResumeDocument{Contact: types.ContactInfo{Name: "Jane"}}

	out, err := RenderHTML(doc, types.TemplateCreative)
	require.NoError(t, err)

	assert.NotContains(t, out, "Career Journey")
	assert.NotContains(t, out, "My Skillset")
	assert.NotContains(t, out, "About Me")
}

func TestRenderHTML_DefaultTemplate(t *testing.T) {
	out, err := RenderHTML(sampleDoc(), "")
	require.NoError(t, err)
	assert.Contains(t, out, `class="layout"`)
}

func TestRenderHTML_UnknownTemplate(t *testing.T) {
	_, err := RenderHTML(sampleDoc(), "gothic")
	require.Error(t, err)

	var te *TemplateError
	assert.True(t, errors.As(err, &te))
}

func TestRenderHTML_NilDoc(t *testing.T) {
	_, err := RenderHTML(nil, types.TemplateModern)
	var re *RenderError
	assert.True(t, errors.As(err, &re))
}
