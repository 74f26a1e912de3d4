package hierarchy

import "github.com/mabhi256/classgraph/internal/model"

// Subgraph returns the induced sub-forest on names: exactly the named classes
// that exist in s, and only the edges whose endpoints are both kept. Node
// order follows s. A kept class whose parent is dropped becomes a root of
// the subgraph, although its descriptor still names the parent.
func (s *Store) Subgraph(names []string) *Store {
	keep := make([]bool, len(s.nodes))
	count := 0
	for _, name := range names {
		if i, ok := s.index[name]; ok && !keep[i] {
			keep[i] = true
			count++
		}
	}

	sub := newStore(count, s.logger)
	remap := make([]int, len(s.nodes))
	for i, node := range s.nodes {
		remap[i] = -1
		if !keep[i] {
			continue
		}
		remap[i] = len(sub.nodes)
		sub.index[node.Name] = len(sub.nodes)
		sub.nodes = append(sub.nodes, node)
	}

	sub.parentOf = make([]int, len(sub.nodes))
	sub.children = make([][]int, len(sub.nodes))
	for i := range s.nodes {
		if !keep[i] {
			continue
		}
		child := remap[i]
		sub.parentOf[child] = -1

		if p := s.parentOf[i]; p >= 0 && keep[p] {
			sub.parentOf[child] = remap[p]
			sub.children[remap[p]] = append(sub.children[remap[p]], child)
		}
	}

	return sub
}

// SubgraphOf is Subgraph keyed by descriptors instead of names.
func (s *Store) SubgraphOf(classes []model.ClassDescriptor) *Store {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	return s.Subgraph(names)
}
