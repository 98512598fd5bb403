package rendering

import (
	"testing"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDisplayURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.linkedin.com/in/jane", "linkedin.com/in/jane"},
		{"http://jane.dev", "jane.dev"},
		{"www.jane.dev", "jane.dev"},
		{"jane.dev/www.x", "jane.dev/www.x"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayURL(tt.in))
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{"Jane Doe", "pdf", "Jane_Doe_Resume.pdf"},
		{"Jane  Q.\tDoe", "docx", "Jane_Q._Doe_Resume.docx"},
		{"", "html", "resume_Resume.html"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			doc := &types.ResumeDocument{Contact: types.ContactInfo{Name: tt.name}}
			assert.Equal(t, tt.want, FileName(doc, tt.ext))
		})
	}
}

func TestContactParts(t *testing.T) {
	parts := ContactParts(types.ContactInfo{
		Name:     "Jane",
		Email:    "jane@example.com",
		Phone:    "555",
		LinkedIn: "https://www.linkedin.com/in/jane",
	})
	assert.Equal(t, []string{"555", "jane@example.com", "linkedin.com/in/jane"}, parts)
}

func TestSkillRows(t *testing.T) {
	assert.Empty(t, SkillRows(nil))
	assert.Equal(t, []string{"Go  •  SQL  •  K8s", "AWS"}, SkillRows([]string{"Go", "SQL", "K8s", "AWS"}))
}
