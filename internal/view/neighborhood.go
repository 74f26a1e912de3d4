// Package view derives bounded subgraphs of a store for diagram consumers.
package view

import (
	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
)

// DefaultCap bounds the descendants shown around a focus class. Without a
// focus, up to twice as many classes are shown.
const DefaultCap = 50

type Options struct {
	Cap int

	// Unfiltered shows the whole store around a focus class when it is small
	// enough (at most 2*Cap classes). Larger stores are always filtered.
	Unfiltered bool
}

type Result struct {
	Store     *hierarchy.Store
	Truncated bool // Some classes were left out; surface a notice
	Cap       int  // Effective cap, for the notice text
}

// Neighborhood returns the ancestors and descendants of focus plus focus
// itself, keeping only the first cap descendants. With a nil focus it
// returns the store, cut to its first 2*cap classes when larger.
func Neighborhood(store *hierarchy.Store, focus *model.ClassDescriptor, cap int) Result {
	return NeighborhoodWith(store, focus, Options{Cap: cap})
}

func NeighborhoodWith(store *hierarchy.Store, focus *model.ClassDescriptor, opts Options) Result {
	limit := opts.Cap
	if limit <= 0 {
		limit = DefaultCap
	}
	small := store.Len() <= 2*limit

	if focus == nil {
		if small {
			return Result{Store: store, Cap: limit}
		}
		return Result{Store: store.Subgraph(store.Names()[:2*limit]), Truncated: true, Cap: limit}
	}

	if opts.Unfiltered && small {
		return Result{Store: store, Cap: limit}
	}

	ancestors := store.Parents(focus.Name)
	descendants := store.Children(focus.Name)

	// A large store cannot be shown unfiltered, so asking for it is reported
	// as truncation.
	truncated := opts.Unfiltered || len(descendants) > limit
	if len(descendants) > limit {
		descendants = descendants[:limit]
	}

	names := make([]string, 0, len(ancestors)+len(descendants)+1)
	for _, c := range ancestors {
		names = append(names, c.Name)
	}
	for _, c := range descendants {
		names = append(names, c.Name)
	}
	names = append(names, focus.Name)

	return Result{Store: store.Subgraph(names), Truncated: truncated, Cap: limit}
}
