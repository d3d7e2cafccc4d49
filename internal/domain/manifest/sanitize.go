package manifest

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// stripTags removes markup and keeps the remaining text verbatim. The
// policy escapes entities in its output, which stored plain text must not
// carry.
func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Sanitize strips markup from the free text fields of spec
func Sanitize(spec Spec) Spec {
	spec.Name = strings.TrimSpace(spec.Name)
	spec.Version = strings.TrimSpace(spec.Version)
	spec.Namespace = strings.TrimSpace(spec.Namespace)
	spec.Description = stripTags(spec.Description)
	return spec
}

// SanitizeAlias strips markup from a node alias and trims it to
// MaxAliasLength characters
func SanitizeAlias(alias string) string {
	alias = stripTags(alias)
	if r := []rune(alias); len(r) > MaxAliasLength {
		alias = string(r[:MaxAliasLength])
	}
	return alias
}
