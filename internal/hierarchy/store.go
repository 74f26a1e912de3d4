// Package hierarchy turns a flat list of class descriptors into an immutable
// inheritance forest and answers ancestor, descendant and subgraph queries.
//
// A Store is built once with Build and never mutated afterwards, so it can
// be read from any number of goroutines without locking. New input always
// means a new Store; handles to an older Store stay valid.
//
// Descriptors are shared, not deep-copied: callers must not mutate the
// Properties or Vtable of a descriptor after handing it to Build, nor the
// values returned by queries.
package hierarchy

import (
	"log/slog"

	"github.com/mabhi256/classgraph/internal/model"
)

// Edge is a child -> parent inheritance link.
type Edge struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

type Store struct {
	nodes    []model.ClassDescriptor // Input order
	index    map[string]int          // Name -> position in nodes
	parentOf []int                   // Parent position, -1 for roots and cut edges
	children [][]int                 // Direct children positions, input order

	logger *slog.Logger
}

func newStore(capacity int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		nodes:  make([]model.ClassDescriptor, 0, capacity),
		index:  make(map[string]int, capacity),
		logger: logger,
	}
}

// Len returns the number of classes in the store.
func (s *Store) Len() int {
	return len(s.nodes)
}

func (s *Store) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Node looks up a class by name.
func (s *Store) Node(name string) (model.ClassDescriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return model.ClassDescriptor{}, false
	}
	return s.nodes[i], true
}

// Nodes lists every class in input order.
func (s *Store) Nodes() []model.ClassDescriptor {
	nodes := make([]model.ClassDescriptor, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// Names lists every class name in input order.
func (s *Store) Names() []string {
	names := make([]string, len(s.nodes))
	for i, node := range s.nodes {
		names[i] = node.Name
	}
	return names
}

// Edges lists every child -> parent link whose endpoints are both in the
// store, in child input order.
func (s *Store) Edges() []Edge {
	edges := make([]Edge, 0, len(s.nodes))
	for i, p := range s.parentOf {
		if p < 0 {
			continue
		}
		edges = append(edges, Edge{Child: s.nodes[i].Name, Parent: s.nodes[p].Name})
	}
	return edges
}

// Roots lists the classes without a parent in this store. In a subgraph this
// includes classes whose parent was left out.
func (s *Store) Roots() []model.ClassDescriptor {
	var roots []model.ClassDescriptor
	for i, p := range s.parentOf {
		if p < 0 {
			roots = append(roots, s.nodes[i])
		}
	}
	return roots
}

// Depth is the number of ancestors of name, or -1 for unknown names.
func (s *Store) Depth(name string) int {
	if !s.Contains(name) {
		return -1
	}
	return len(s.Parents(name))
}
