// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"

	"github.com/dalemusser/apollo/internal/app/system/search"
)

// Email trims and lowercases.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Name trims and collapses inner runs of whitespace. Case is preserved.
func Name(s string) string { return strings.Join(strings.Fields(s), " ") }

// Document strips CPF/CNPJ punctuation, leaving digits only.
func Document(s string) string { return search.Digits(s) }

// Phone keeps digits only.
func Phone(s string) string { return search.Digits(s) }

// QueryParam trims a query-string value.
func QueryParam(s string) string { return strings.TrimSpace(s) }
