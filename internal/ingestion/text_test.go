package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "collapses inner spaces", input: "Line    with \t multiple   spaces", want: "Line with multiple spaces"},
		{name: "normalizes line endings", input: "a\r\nb\rc\nd", want: "a\nb\nc\nd"},
		{name: "one blank line at most", input: "a\n\n\n\n\nb", want: "a\n\nb"},
		{name: "whitespace-only lines are blank", input: "a\n   \n\t\n\nb", want: "a\n\nb"},
		{name: "heading indentation dropped", input: "   ## Experience", want: "## Experience"},
		{name: "bullet indentation kept", input: "Skills\n  - Go\n  * SQL", want: "Skills\n  - Go\n  * SQL"},
		{name: "non-breaking space", input: "Jane\u00a0Doe", want: "Jane Doe"},
		{name: "trims document", input: "\n\n  hello  \n\n", want: "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	first := CleanText(input)
	assert.Equal(t, first, CleanText(input))
	assert.Equal(t, first, CleanText(first))
}

func TestCleanJobDescription_PlainText(t *testing.T) {
	got := CleanJobDescription("Senior Go Engineer\r\n\r\n\r\nBuild   APIs")
	assert.Equal(t, "Senior Go Engineer\n\nBuild APIs", got)
	assert.Equal(t, "", CleanJobDescription("   \n "))
}

func TestCleanJobDescription_HTML(t *testing.T) {
	html := `<html><head><style>.x{color:red}</style><script>track()</script></head>
<body>
<nav><a href="/">Home</a> <a href="/jobs">Jobs</a></nav>
<header>Acme Careers</header>
<h1>Backend   Engineer</h1>
<p>We build <b>payments</b> infrastructure.</p>
<ul><li>5+ years of Go</li><li>PostgreSQL</li></ul>
<footer>Copyright Acme</footer>
</body></html>`

	got := CleanJobDescription(html)

	assert.Equal(t, "Backend Engineer\nWe build payments infrastructure.\n- 5+ years of Go\n- PostgreSQL", got)
	for _, dropped := range []string{"track()", "color:red", "Home", "Acme Careers", "Copyright"} {
		assert.NotContains(t, got, dropped)
	}
}

func TestCleanJobDescription_HTMLWithoutBlocks(t *testing.T) {
	got := CleanJobDescription("<div>Remote <span>friendly</span></div>")
	assert.Equal(t, "Remote friendly", got)
}

func TestCleanJobDescription_KeepsAllBlockText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "div and table cells",
			html: `<div><h2>Senior Go Engineer</h2><div>Requirements: 5+ years Go, PostgreSQL, Kubernetes</div><p>We are hiring.</p><table><tr><td>Salary: $180k</td></tr></table></div>`,
			want: "Senior Go Engineer\nRequirements: 5+ years Go, PostgreSQL, Kubernetes\nWe are hiring.\nSalary: $180k",
		},
		{
			name: "definition list and line breaks",
			html: `<dl><dt>Location</dt><dd>Remote, <span>US only</span></dd></dl><p>Apply now<br>or refer a friend</p>`,
			want: "Location\nRemote, US only\nApply now\nor refer a friend",
		},
		{
			name: "text beside a list",
			html: `<div>About the role<ul><li><p>Own the API</p></li><li>Mentor</li></ul></div>`,
			want: "About the role\n- Own the API\n- Mentor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJobDescription(tt.html))
		})
	}
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML("<p>hello</p>"))
	assert.True(t, LooksLikeHTML("text <BR/> more"))
	assert.False(t, LooksLikeHTML("salary < 100k and > 50k"))
	assert.False(t, LooksLikeHTML(strings.Repeat("plain ", 10)))
}
