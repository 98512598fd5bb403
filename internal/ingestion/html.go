package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`(?i)<(html|body|div|p|ul|ol|li|br|span|h[1-6]|section|article|table)\b[^>]*>`)

const droppedElements = "script, style, nav, header, footer, iframe, noscript"

// LooksLikeHTML reports whether pasted text appears to be markup rather than
// plain prose.
func LooksLikeHTML(text string) bool {
	return htmlTag.MatchString(text)
}

// blockElements end the current line of text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "hr": true, "li": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "tbody": true, "td": true, "tfoot": true, "th": true,
	"thead": true, "tr": true, "ul": true,
}

// CleanJobDescription returns readable text for a pasted job description.
// Markup is flattened to one line per block element with list items
// prefixed by "- "; plain text only goes through CleanText.
func CleanJobDescription(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if !LooksLikeHTML(text) {
		return CleanText(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return CleanText(text)
	}
	doc.Find(droppedElements).Remove()

	var c textCollector
	c.walk(doc.Find("body"))
	c.flush()
	return CleanText(strings.Join(c.lines, "\n"))
}

type textCollector struct {
	lines  []string
	cur    strings.Builder
	prefix string
}

func (c *textCollector) flush() {
	line := strings.Join(strings.Fields(c.cur.String()), " ")
	c.cur.Reset()
	if line == "" {
		return
	}
	c.lines = append(c.lines, c.prefix+line)
	c.prefix = ""
}

func (c *textCollector) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, n *goquery.Selection) {
		name := goquery.NodeName(n)
		switch {
		case name == "#text":
			c.cur.WriteString(n.Text())
		case name == "br":
			c.flush()
		case blockElements[name]:
			c.flush()
			if name == "li" {
				c.prefix = "- "
			}
			c.walk(n)
			c.flush()
			c.prefix = ""
		case strings.HasPrefix(name, "#"):
			// comments and doctypes
		default:
			c.walk(n)
		}
	})
}
