package tripkit

import (
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL- and filename-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// ShareURL returns the distributable viewer link for the configured
// base URL. Opening it selects viewer mode; the flag is a client-side
// convention, not a security boundary.
func ShareURL(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?share=viewer"
	}
	q := u.Query()
	q.Set("share", string(ModeViewer))
	u.RawQuery = q.Encode()
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
