// Package htmlsanitize cleans HTML that comes from the catalog API (game
// descriptions and update notes) before it is rendered into pages.
package htmlsanitize

import (
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "mark")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// breakTag matches <br>, <br/>, <br /> in any case.
var breakTag = regexp.MustCompile(`(?i)<br\s*/?>`)

// Sanitize strips anything outside the allowed set of formatting tags.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML is Sanitize for direct use in templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s has no HTML tags.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and wraps it in paragraphs. Blank lines separate
// paragraphs; single newlines become <br>.
func PlainTextToHTML(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, para := range strings.Split(s, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(line)
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// BreaksToNewlines turns <br> tags into newlines.
func BreaksToNewlines(s string) string {
	return breakTag.ReplaceAllString(s, "\n")
}

// NewlinesToBreaks turns line breaks into <br> tags.
func NewlinesToBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// FormatDescription prepares catalog text for a game page. Catalog entries
// mostly use <br> for line breaks. Text without other markup is shown as
// paragraphs; text that still has markup is sanitized with every line break
// kept as <br>.
func FormatDescription(s string) template.HTML {
	text := BreaksToNewlines(s)
	if text == "" {
		return ""
	}
	if IsPlainText(text) {
		return template.HTML(PlainTextToHTML(text))
	}
	return SanitizeToHTML(NewlinesToBreaks(text))
}
