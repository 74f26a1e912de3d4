// Package search parses class-list queries and filters a store with them.
//
// Besides plain name matching, three prefixed forms navigate the hierarchy:
//
//	parents:<class>              ancestors of class
//	children:<class>             transitive descendants of class
//	overrides:<index>;<class>    descendants overriding vtable slot index
package search

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNormal Kind = iota
	KindParents
	KindChildren
	KindOverrides
)

const (
	parentsPrefix   = "parents:"
	childrenPrefix  = "children:"
	overridesPrefix = "overrides:"
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindParents:
		return "parents"
	case KindChildren:
		return "children"
	case KindOverrides:
		return "overrides"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Query struct {
	Kind  Kind
	Term  string // Name pattern for KindNormal, class name otherwise
	Index int    // Vtable index, KindOverrides only
}

// Parse never fails: a malformed overrides query is treated as a plain name
// search, since it is generated by tooling rather than typed by users.
func Parse(query string) Query {
	switch {
	case strings.HasPrefix(query, parentsPrefix):
		return Query{Kind: KindParents, Term: strings.TrimSpace(query[len(parentsPrefix):])}
	case strings.HasPrefix(query, childrenPrefix):
		return Query{Kind: KindChildren, Term: strings.TrimSpace(query[len(childrenPrefix):])}
	case strings.HasPrefix(query, overridesPrefix):
		rest := strings.TrimSpace(query[len(overridesPrefix):])
		if indexStr, class, ok := strings.Cut(rest, ";"); ok {
			index, err := strconv.Atoi(strings.TrimSpace(indexStr))
			if err == nil && index >= 0 {
				return Query{Kind: KindOverrides, Term: strings.TrimSpace(class), Index: index}
			}
		}
	}
	return Query{Kind: KindNormal, Term: strings.TrimSpace(query)}
}

// Overrides builds the query listing the overrides of slot index below class.
func Overrides(index int, class string) Query {
	return Query{Kind: KindOverrides, Term: class, Index: index}
}

func (q Query) String() string {
	switch q.Kind {
	case KindParents:
		return parentsPrefix + q.Term
	case KindChildren:
		return childrenPrefix + q.Term
	case KindOverrides:
		return fmt.Sprintf("%s%d;%s", overridesPrefix, q.Index, q.Term)
	default:
		return q.Term
	}
}

// Describe is the banner shown above filtered results.
func (q Query) Describe() string {
	switch q.Kind {
	case KindParents:
		return "Showing parents of: " + q.Term
	case KindChildren:
		return "Showing all children of: " + q.Term
	case KindOverrides:
		return fmt.Sprintf("Showing overrides of method at index %d of class: %s", q.Index, q.Term)
	default:
		return ""
	}
}
