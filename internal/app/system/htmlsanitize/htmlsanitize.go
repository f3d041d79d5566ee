// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips every tag from s and returns trimmed plain text. Entities the
// policy escapes are decoded again, so "D'Ávila & Filhos" is stored as typed.
// Used for free-text fields that are stored and echoed back as JSON.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
