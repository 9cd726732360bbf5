// Package markdown renders the small markdown subset trip notes use
// (headings, emphasis, links, lists, paragraphs) as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	lines := strings.Split(md, "\n")
	inUL, inOL := false, false

	closeLists := func() {
		if inUL {
			buf.WriteString("</ul>\n")
			inUL = false
		}
		if inOL {
			buf.WriteString("</ol>\n")
			inOL = false
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closeLists()
		case strings.HasPrefix(trimmed, "### "):
			closeLists()
			buf.WriteString("<h3>" + inline(strings.TrimPrefix(trimmed, "### ")) + "</h3>\n")
		case strings.HasPrefix(trimmed, "## "):
			closeLists()
			buf.WriteString("<h2>" + inline(strings.TrimPrefix(trimmed, "## ")) + "</h2>\n")
		case strings.HasPrefix(trimmed, "# "):
			closeLists()
			buf.WriteString("<h1>" + inline(strings.TrimPrefix(trimmed, "# ")) + "</h1>\n")
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			if inOL {
				buf.WriteString("</ol>\n")
				inOL = false
			}
			if !inUL {
				buf.WriteString("<ul>\n")
				inUL = true
			}
			buf.WriteString("<li>" + inline(trimmed[2:]) + "</li>\n")
		case reOrdered.MatchString(trimmed):
			if inUL {
				buf.WriteString("</ul>\n")
				inUL = false
			}
			if !inOL {
				buf.WriteString("<ol>\n")
				inOL = true
			}
			item := reOrdered.ReplaceAllString(trimmed, "")
			buf.WriteString("<li>" + inline(item) + "</li>\n")
		default:
			closeLists()
			buf.WriteString("<p>" + inline(trimmed) + "</p>\n")
		}
	}
	closeLists()
}

// inline escapes the text and applies inline markup.
func inline(s string) string {
	s = html.EscapeString(s)
	s = reInlineCode.ReplaceAllString(s, "<code>$1</code>")
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = reItalic.ReplaceAllString(s, "<em>$1</em>")
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		parts := reLink.FindStringSubmatch(m)
		href := parts[2]
		if !safeHref(href) {
			return parts[1]
		}
		return `<a href="` + href + `" rel="noopener">` + parts[1] + `</a>`
	})
	return s
}

func safeHref(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "/")
}
