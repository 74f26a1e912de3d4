package hierarchy

import (
	"slices"

	"github.com/mabhi256/classgraph/internal/model"
)

// DirectChildren lists the classes whose parent is name, in input order.
func (s *Store) DirectChildren(name string) []model.ClassDescriptor {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.collect(s.children[i])
}

// Parents lists the ancestors of name, nearest parent first, ending at the
// root. Roots and unknown names have no parents.
func (s *Store) Parents(name string) []model.ClassDescriptor {
	parents, _ := s.ParentsChecked(name)
	return parents
}

// ParentsChecked is Parents, reporting a *CycleError instead of stopping
// silently if the chain loops. A store returned by Build never loops.
func (s *Store) ParentsChecked(name string) ([]model.ClassDescriptor, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, nil
	}
	chain, err := s.walkAncestors(i)
	return s.collect(chain), err
}

// Children lists every transitive descendant of name in depth-first
// pre-order, visiting direct children in input order.
func (s *Store) Children(name string) []model.ClassDescriptor {
	children, _ := s.ChildrenChecked(name)
	return children
}

// ChildrenChecked is Children, reporting a *CycleError if the walk comes
// back to a class it already visited. A store returned by Build never does.
func (s *Store) ChildrenChecked(name string) ([]model.ClassDescriptor, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, nil
	}
	order, err := s.walkDescendants(i)
	return s.collect(order), err
}

func (s *Store) walkAncestors(start int) ([]int, error) {
	var chain []int
	visited := map[int]bool{start: true}

	for p := s.parentOf[start]; p >= 0; p = s.parentOf[p] {
		if visited[p] {
			return chain, s.cycleAt(p)
		}
		visited[p] = true
		chain = append(chain, p)
	}
	return chain, nil
}

func (s *Store) walkDescendants(root int) ([]int, error) {
	var order []int
	visited := map[int]bool{root: true}

	stack := slices.Clone(s.children[root])
	slices.Reverse(stack)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[n] {
			return order, s.cycleAt(n)
		}
		visited[n] = true
		order = append(order, n)

		// Push in reverse so the first child is popped first
		for j := len(s.children[n]) - 1; j >= 0; j-- {
			stack = append(stack, s.children[n][j])
		}
	}
	return order, nil
}

// cycleAt follows parent links from start until a class repeats.
func (s *Store) cycleAt(start int) *CycleError {
	var path []string
	visited := make(map[int]bool)
	for cur := start; cur >= 0; cur = s.parentOf[cur] {
		if visited[cur] {
			return cycleFrom(path, s.nodes[cur].Name)
		}
		visited[cur] = true
		path = append(path, s.nodes[cur].Name)
	}
	return &CycleError{Path: path}
}

func (s *Store) collect(positions []int) []model.ClassDescriptor {
	if len(positions) == 0 {
		return nil
	}
	out := make([]model.ClassDescriptor, len(positions))
	for i, p := range positions {
		out[i] = s.nodes[p]
	}
	return out
}
