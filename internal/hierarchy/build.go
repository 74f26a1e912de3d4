package hierarchy

import (
	"fmt"
	"log/slog"

	"github.com/mabhi256/classgraph/internal/model"
)

type buildOptions struct {
	logger       *slog.Logger
	checkVtables bool
}

type Option func(*buildOptions)

type buildStage struct {
	name string
	fn   func() error
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// WithoutVtableCheck skips the vtable length check, for snapshots whose
// vtables are known to be partial.
func WithoutVtableCheck() Option {
	return func(o *buildOptions) {
		o.checkVtables = false
	}
}

// Build validates descriptors and returns the inheritance forest.
//
// The whole input is rejected on the first problem: an empty or duplicated
// name, a parent that does not resolve, a parent cycle (*CycleError), or a
// vtable shorter than the nearest ancestor vtable (*ValidationError). Classes
// without any vtable are exempt from the length check.
func Build(descriptors []model.ClassDescriptor, opts ...Option) (*Store, error) {
	o := buildOptions{logger: slog.Default(), checkVtables: true}
	for _, opt := range opts {
		opt(&o)
	}

	s := newStore(len(descriptors), o.logger)

	stages := []buildStage{
		{"index names", func() error { return s.indexNames(descriptors) }},
		{"link parents", s.link},
		{"detect cycles", s.checkCycles},
	}
	if o.checkVtables {
		stages = append(stages, buildStage{"check vtables", s.checkVtables})
	}

	for _, stage := range stages {
		if err := stage.fn(); err != nil {
			s.logger.Debug("hierarchy: build rejected", slog.String("stage", stage.name), slog.Any("error", err))
			return nil, err
		}
	}

	s.logger.Debug("hierarchy: build complete",
		slog.Int("classes", len(s.nodes)),
		slog.Int("roots", len(s.Roots())),
		slog.Int("edges", len(s.Edges())))

	return s, nil
}

func (s *Store) indexNames(descriptors []model.ClassDescriptor) error {
	for i, d := range descriptors {
		if d.Name == "" {
			return &ValidationError{Reason: ReasonEmptyName, Class: fmt.Sprintf("#%d", i)}
		}
		if first, dup := s.index[d.Name]; dup {
			return &ValidationError{
				Reason: ReasonDuplicateName,
				Class:  d.Name,
				Detail: fmt.Sprintf("positions %d and %d", first, i),
			}
		}
		s.index[d.Name] = len(s.nodes)
		s.nodes = append(s.nodes, d)
	}
	return nil
}

func (s *Store) link() error {
	s.parentOf = make([]int, len(s.nodes))
	s.children = make([][]int, len(s.nodes))

	for i, d := range s.nodes {
		s.parentOf[i] = -1
		if d.IsRoot() {
			continue
		}
		p, ok := s.index[d.Parent]
		if !ok {
			return &ValidationError{Reason: ReasonDanglingParent, Class: d.Name, Detail: d.Parent}
		}
		s.parentOf[i] = p
		s.children[p] = append(s.children[p], i)
	}
	return nil
}

// checkCycles walks the ancestor chain of every class with a per-walk
// visited set. Classes already proven to reach a root are skipped, so every
// class is walked at most once overall.
func (s *Store) checkCycles() error {
	settled := make([]bool, len(s.nodes))

	for start := range s.nodes {
		if settled[start] {
			continue
		}

		visited := make(map[int]bool)
		var path []string
		for cur := start; cur >= 0 && !settled[cur]; cur = s.parentOf[cur] {
			if visited[cur] {
				return cycleFrom(path, s.nodes[cur].Name)
			}
			visited[cur] = true
			path = append(path, s.nodes[cur].Name)
		}

		for i := range visited {
			settled[i] = true
		}
	}
	return nil
}

// checkVtables requires every vtable to be at least as long as the nearest
// ancestor vtable. Since each ancestor is checked the same way, this bounds
// it against every ancestor.
func (s *Store) checkVtables() error {
	for i, d := range s.nodes {
		if !d.HasVtable() {
			continue
		}
		for p := s.parentOf[i]; p >= 0; p = s.parentOf[p] {
			ancestor := s.nodes[p]
			if !ancestor.HasVtable() {
				continue
			}
			if len(d.Vtable) < len(ancestor.Vtable) {
				return &ValidationError{
					Reason: ReasonVtableShrink,
					Class:  d.Name,
					Detail: fmt.Sprintf("%d slots, ancestor %q has %d", len(d.Vtable), ancestor.Name, len(ancestor.Vtable)),
				}
			}
			break
		}
	}
	return nil
}
