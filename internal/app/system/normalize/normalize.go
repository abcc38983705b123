// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Email lowercases and trims an email address so lookups are
// case-insensitive. Folding also strips diacritics, which matches how the
// hosted auth service compared addresses.
func Email(s string) string {
	return text.Fold(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses interior runs of
// whitespace to single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status trims and canonicalizes a status value for comparison.
func Status(s string) string {
	return strings.TrimSpace(s)
}
