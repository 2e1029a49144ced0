package store

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/starford/bindrune/internal/apperr"
)

// Slugify canonicalizes a tag name: lowercased, alphanumerics pass
// through, any other run of characters collapses to a single hyphen,
// and colons are preserved as namespace separators. Segments are
// trimmed of leading and trailing hyphens; a segment that ends up
// empty makes the whole tag invalid.
func Slugify(tag string) (string, error) {
	var b strings.Builder
	sep := true
	for _, r := range strings.TrimSpace(strings.ToLower(tag)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sep = false
			b.WriteRune(r)
		case r == ':':
			b.WriteRune(':')
		case !sep:
			b.WriteByte('-')
			sep = true
		}
	}
	segments := strings.Split(b.String(), ":")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.Trim(seg, "-")
		if seg == "" {
			return "", fmt.Errorf("%w: invalid tag %q", apperr.ErrValidation, tag)
		}
		out = append(out, seg)
	}
	return strings.Join(out, ":"), nil
}
