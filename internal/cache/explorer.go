// Package cache memoizes the views derived from one hierarchy store.
//
// An Explorer is bound to a single store for its whole life. A new input
// means a new store and a new Explorer, so entries never go stale and there
// is nothing to invalidate.
package cache

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
	"github.com/mabhi256/classgraph/internal/search"
	"github.com/mabhi256/classgraph/internal/view"
	"github.com/mabhi256/classgraph/internal/vtable"
)

const DefaultCapacity = 256

type kind int

const (
	kindSorted kind = iota
	kindResolve
	kindNeighborhood
	kindSearch
)

type key struct {
	kind       kind
	name       string
	cap        int
	unfiltered bool

	// Search only; a plain pattern may spell the same text as a prefixed query
	query search.Kind
	index int
}

func (k key) String() string {
	return fmt.Sprintf("%d|%d|%d|%q|%d|%t", k.kind, k.query, k.index, k.name, k.cap, k.unfiltered)
}

type Stats struct {
	Entries   int   `json:"entries"`
	Capacity  int   `json:"capacity"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

type Option func(*Explorer)

func WithCapacity(n int) Option {
	return func(e *Explorer) {
		e.capacity = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// Explorer answers store queries, computing each distinct one at most once
// while it stays cached. Concurrent callers asking the same question share
// one computation. Returned slices are shared between callers and must not
// be modified.
type Explorer struct {
	store    *hierarchy.Store
	resolver *vtable.Resolver
	logger   *slog.Logger

	capacity int
	entries  *lru[key, any]
	flight   singleflight.Group
}

func New(store *hierarchy.Store, prototypes []model.Prototype, opts ...Option) *Explorer {
	e := &Explorer{
		store:    store,
		resolver: vtable.NewResolver(store, prototypes),
		logger:   slog.Default(),
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.entries = newLRU[key, any](e.capacity)
	return e
}

func (e *Explorer) Store() *hierarchy.Store {
	return e.store
}

// SortedNodes lists every class sorted by name.
func (e *Explorer) SortedNodes() []model.ClassDescriptor {
	v := e.memo(key{kind: kindSorted}, func() any {
		return search.SortByName(e.store.Nodes())
	})
	return v.([]model.ClassDescriptor)
}

// Resolve returns the resolved vtable of the named class.
func (e *Explorer) Resolve(name string) ([]vtable.ResolvedSlot, bool) {
	if !e.store.Contains(name) {
		return nil, false
	}
	v := e.memo(key{kind: kindResolve, name: name}, func() any {
		slots, _ := e.resolver.ResolveName(name)
		return slots
	})
	return v.([]vtable.ResolvedSlot), true
}

// Neighborhood returns the bounded view around the named class, or around
// no class when name is empty. It reports false for an unknown name.
func (e *Explorer) Neighborhood(name string, opts view.Options) (view.Result, bool) {
	var focus *model.ClassDescriptor
	if name != "" {
		class, ok := e.store.Node(name)
		if !ok {
			return view.Result{}, false
		}
		focus = &class
	}

	k := key{kind: kindNeighborhood, name: name, cap: opts.Cap, unfiltered: opts.Unfiltered}
	v := e.memo(k, func() any {
		return view.NeighborhoodWith(e.store, focus, opts)
	})
	return v.(view.Result), true
}

// Search filters the class list with a query in the search box syntax.
func (e *Explorer) Search(query string) []model.ClassDescriptor {
	q := search.Parse(query)
	v := e.memo(key{kind: kindSearch, query: q.Kind, name: q.Term, index: q.Index}, func() any {
		return search.Filter(e.store, q)
	})
	return v.([]model.ClassDescriptor)
}

func (e *Explorer) Stats() Stats {
	return e.entries.stats()
}

func (e *Explorer) memo(k key, compute func() any) any {
	if v, ok := e.entries.get(k); ok {
		return v
	}

	v, _, shared := e.flight.Do(k.String(), func() (any, error) {
		// Another caller may have filled the entry while we queued
		if v, ok := e.entries.get(k); ok {
			return v, nil
		}
		v := compute()
		e.entries.set(k, v)
		return v, nil
	})
	if shared {
		e.logger.Debug("shared computation", "key", k.String())
	}
	return v
}
