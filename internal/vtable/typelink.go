package vtable

import (
	"regexp"

	"github.com/mabhi256/classgraph/internal/hierarchy"
)

var typeQualifiers = regexp.MustCompile(`\bconst\b|\bvolatile\b|&|\*|\s`)

// LinkType strips qualifiers, pointers and references from a C++ type
// spelling and returns the class it names, if the store knows it.
// "const Human *" links to Human; "int" and function types do not link.
func LinkType(typeName string, store *hierarchy.Store) (string, bool) {
	stripped := typeQualifiers.ReplaceAllString(typeName, "")
	if stripped == "" || !store.Contains(stripped) {
		return "", false
	}
	return stripped, true
}
