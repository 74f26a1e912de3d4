package search

import (
	"regexp"
	"slices"
	"strings"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
)

// Filter returns the classes matching q, sorted by name.
//
// A plain term is tried as a case-insensitive regular expression and falls
// back to a substring match when it does not compile. An empty term matches
// every class. Prefixed queries on an unknown class match nothing.
func Filter(store *hierarchy.Store, q Query) []model.ClassDescriptor {
	var matched []model.ClassDescriptor

	switch q.Kind {
	case KindParents:
		matched = store.Parents(q.Term)
	case KindChildren:
		matched = store.Children(q.Term)
	case KindOverrides:
		matched = overrides(store, q.Term, q.Index)
	default:
		matched = matchNames(store.Nodes(), q.Term)
	}

	return SortByName(matched)
}

func matchNames(classes []model.ClassDescriptor, term string) []model.ClassDescriptor {
	if term == "" {
		return classes
	}

	match := func(name string) bool {
		return strings.Contains(strings.ToLower(name), strings.ToLower(term))
	}
	if re, err := regexp.Compile("(?i)" + term); err == nil {
		match = re.MatchString
	}

	var out []model.ClassDescriptor
	for _, c := range classes {
		if match(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

func overrides(store *hierarchy.Store, class string, index int) []model.ClassDescriptor {
	node, ok := store.Node(class)
	if !ok || len(node.Vtable) <= index {
		return nil
	}

	var out []model.ClassDescriptor
	for _, child := range store.Children(class) {
		if slot, ok := child.SlotAt(index); ok && slot.IsOverridden {
			out = append(out, child)
		}
	}
	return out
}

// SortByName sorts case-insensitively, breaking ties by exact name. The
// input slice is sorted in place and returned.
func SortByName(classes []model.ClassDescriptor) []model.ClassDescriptor {
	slices.SortStableFunc(classes, func(a, b model.ClassDescriptor) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return classes
}

// Suggestions offers one parents and one children query over the sorted
// class list, as starting points for navigation.
func Suggestions(store *hierarchy.Store) []string {
	sorted := SortByName(store.Nodes())
	if len(sorted) == 0 {
		return nil
	}
	return []string{
		Query{Kind: KindParents, Term: sorted[len(sorted)-1].Name}.String(),
		Query{Kind: KindChildren, Term: sorted[0].Name}.String(),
	}
}
