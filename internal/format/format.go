// Package format turns reply text into display output. FormatMessage
// produces sanitised HTML; FormatTerminal applies the same line rules for a
// terminal.
package format

import (
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
)

// Bullet replaces a "- " marker at the start of a line.
const Bullet = "• "

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Markup is HTML that is safe to insert into a page as-is.
type Markup string

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("br")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// FormatMessage escapes text and renders line breaks, leading bullets and
// bare URLs. Links open in a new context without a back-reference to the
// opener.
func FormatMessage(text string) Markup {
	lines := splitLines(text)
	for i, line := range lines {
		line = html.EscapeString(line)
		line = bullet(line)
		lines[i] = urlPattern.ReplaceAllString(line, `<a href="$0" target="_blank" rel="noopener noreferrer">$0</a>`)
	}
	return Markup(policy.Sanitize(strings.Join(lines, "<br>")))
}

// FormatTerminal applies the same rules as FormatMessage for terminal
// output: newlines stay newlines and URLs are drawn with linkStyle.
func FormatTerminal(text string, linkStyle lipgloss.Style) string {
	lines := splitLines(text)
	for i, line := range lines {
		line = bullet(line)
		lines[i] = urlPattern.ReplaceAllStringFunc(line, func(u string) string {
			return linkStyle.Render(u)
		})
	}
	return strings.Join(lines, "\n")
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func bullet(line string) string {
	if strings.HasPrefix(line, "- ") {
		return Bullet + line[2:]
	}
	return line
}
