package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(md string) string {
	var buf bytes.Buffer
	Render(&buf, md)
	return buf.String()
}

func TestHeadings(t *testing.T) {
	cases := []struct{ in, want string }{
		{"# Title", "<h1>Title</h1>\n"},
		{"## Section", "<h2>Section</h2>\n"},
		{"### Sub", "<h3>Sub</h3>\n"},
	}
	for _, tc := range cases {
		if got := render(tc.in); got != tc.want {
			t.Errorf("Render(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParagraph(t *testing.T) {
	got := render("Pack light.")
	want := "<p>Pack light.</p>\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestUnorderedList(t *testing.T) {
	got := render("- Passport\n- Tickets")
	want := "<ul>\n<li>Passport</li>\n<li>Tickets</li>\n</ul>\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestOrderedList(t *testing.T) {
	got := render("1. Airport\n2. Hotel")
	want := "<ol>\n<li>Airport</li>\n<li>Hotel</li>\n</ol>\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestListSwitchClosesPrevious(t *testing.T) {
	got := render("- one\n1. first")
	if !strings.Contains(got, "</ul>\n<ol>") {
		t.Errorf("expected ul closed before ol opens, got %q", got)
	}
}

func TestBlankLineEndsList(t *testing.T) {
	got := render("- one\n\nafter")
	want := "<ul>\n<li>one</li>\n</ul>\n<p>after</p>\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestInlineMarkup(t *testing.T) {
	cases := []struct{ in, want string }{
		{"**bold**", "<p><strong>bold</strong></p>\n"},
		{"*italic*", "<p><em>italic</em></p>\n"},
		{"`code`", "<p><code>code</code></p>\n"},
	}
	for _, tc := range cases {
		if got := render(tc.in); got != tc.want {
			t.Errorf("Render(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLinks(t *testing.T) {
	got := render("[map](https://example.com/map)")
	want := `<p><a href="https://example.com/map" rel="noopener">map</a></p>` + "\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestUnsafeLinkDropped(t *testing.T) {
	got := render("[click](javascript:alert(1))")
	if strings.Contains(got, "<a ") {
		t.Errorf("javascript: href must not produce a link, got %q", got)
	}
	if !strings.Contains(got, "click") {
		t.Errorf("link text should survive, got %q", got)
	}
}

func TestHTMLEscaped(t *testing.T) {
	got := render("<script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML must be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag, got %q", got)
	}
}

func TestComponentRenders(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Notes").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != "<h1>Notes</h1>\n" {
		t.Errorf("component output = %q", buf.String())
	}
}
