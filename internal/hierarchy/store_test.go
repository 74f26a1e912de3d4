package hierarchy

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/classgraph/internal/model"
)

// humanFixture builds:
//
//	Human
//	├── Man
//	│   └── Yoav
//	└── Woman
func humanFixture(t *testing.T) *Store {
	t.Helper()

	store, err := Build([]model.ClassDescriptor{
		{Name: "Man", Parent: "Human"},
		{Name: "Yoav", Parent: "Man"},
		{Name: "Woman", Parent: "Human"},
		{Name: "Human"},
	})
	require.NoError(t, err)
	return store
}

// wideFixture builds a deeper forest with two roots:
//
//	A           X
//	├── B       └── Y
//	│   ├── D
//	│   └── E
//	│       └── G
//	└── C
//	    └── F
func wideFixture(t *testing.T) *Store {
	t.Helper()

	store, err := Build([]model.ClassDescriptor{
		{Name: "A"},
		{Name: "B", Parent: "A"},
		{Name: "C", Parent: "A"},
		{Name: "D", Parent: "B"},
		{Name: "E", Parent: "B"},
		{Name: "F", Parent: "C"},
		{Name: "G", Parent: "E"},
		{Name: "X"},
		{Name: "Y", Parent: "X"},
	})
	require.NoError(t, err)
	return store
}

// buildUnchecked links descriptors without cycle detection, to exercise the
// traversal guards on malformed input.
func buildUnchecked(t *testing.T, descriptors []model.ClassDescriptor) *Store {
	t.Helper()

	s := newStore(len(descriptors), nil)
	require.NoError(t, s.indexNames(descriptors))
	require.NoError(t, s.link())
	return s
}

func names(classes []model.ClassDescriptor) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name
	}
	return out
}

func TestHumanScenario(t *testing.T) {
	store := humanFixture(t)

	assert.Equal(t, []string{"Man", "Human"}, names(store.Parents("Yoav")))
	assert.ElementsMatch(t, []string{"Man", "Woman"}, names(store.DirectChildren("Human")))
	assert.ElementsMatch(t, []string{"Man", "Woman", "Yoav"}, names(store.Children("Human")))
}

func TestRoundTrip(t *testing.T) {
	input := []model.ClassDescriptor{
		{Name: "Man", Parent: "Human"},
		{Name: "Human", IsAbstract: true, Properties: map[string]any{"size": 8}},
	}

	store, err := Build(input)
	require.NoError(t, err)

	assert.ElementsMatch(t, names(input), names(store.Nodes()))
	assert.Equal(t, []string{"Man", "Human"}, store.Names(), "input order is kept")
	assert.Equal(t, 2, store.Len())

	human, ok := store.Node("Human")
	require.True(t, ok)
	assert.True(t, human.IsAbstract)
	assert.Equal(t, 8, human.Properties["size"])
}

func TestBuildDoesNotAliasInputSlice(t *testing.T) {
	input := []model.ClassDescriptor{{Name: "Human"}}
	store, err := Build(input)
	require.NoError(t, err)

	input[0].Name = "Renamed"
	assert.True(t, store.Contains("Human"))

	nodes := store.Nodes()
	nodes[0].Name = "Changed"
	assert.Equal(t, []string{"Human"}, store.Names())
}

func TestParentsChain(t *testing.T) {
	store := wideFixture(t)

	for _, node := range store.Nodes() {
		parents := store.Parents(node.Name)
		if node.IsRoot() {
			assert.Empty(t, parents, node.Name)
			assert.Equal(t, 0, store.Depth(node.Name))
			continue
		}

		require.NotEmpty(t, parents, node.Name)
		assert.Equal(t, node.Parent, parents[0].Name, "nearest parent first")
		assert.True(t, parents[len(parents)-1].IsRoot(), "chain ends at a root")
		assert.Equal(t, len(parents), store.Depth(node.Name))
	}

	assert.Equal(t, []string{"E", "B", "A"}, names(store.Parents("G")))
}

func TestChildrenPreOrder(t *testing.T) {
	store := wideFixture(t)

	assert.Equal(t, []string{"B", "D", "E", "G", "C", "F"}, names(store.Children("A")))
	assert.Equal(t, []string{"B", "C"}, names(store.DirectChildren("A")))
	assert.Equal(t, []string{"Y"}, names(store.Children("X")))
	assert.Empty(t, store.Children("G"))

	// Repeated calls return the same order
	for range 5 {
		assert.Equal(t, names(store.Children("A")), names(store.Children("A")))
	}
}

func TestChildrenClosure(t *testing.T) {
	store := wideFixture(t)

	for _, node := range store.Nodes() {
		var want []string
		for _, child := range store.DirectChildren(node.Name) {
			want = append(want, child.Name)
			want = append(want, names(store.Children(child.Name))...)
		}
		assert.ElementsMatch(t, want, names(store.Children(node.Name)), node.Name)
	}
}

func TestUnknownNames(t *testing.T) {
	store := humanFixture(t)

	_, ok := store.Node("Alien")
	assert.False(t, ok)
	assert.False(t, store.Contains("Alien"))
	assert.Empty(t, store.Parents("Alien"))
	assert.Empty(t, store.Children("Alien"))
	assert.Empty(t, store.DirectChildren("Alien"))
	assert.Equal(t, -1, store.Depth("Alien"))

	parents, err := store.ParentsChecked("Alien")
	assert.NoError(t, err)
	assert.Empty(t, parents)
}

func TestEdgesAndRoots(t *testing.T) {
	store := humanFixture(t)

	assert.Equal(t, []Edge{
		{Child: "Man", Parent: "Human"},
		{Child: "Yoav", Parent: "Man"},
		{Child: "Woman", Parent: "Human"},
	}, store.Edges())
	assert.Equal(t, []string{"Human"}, names(store.Roots()))
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name   string
		input  []model.ClassDescriptor
		reason Reason
	}{
		{
			name:   "duplicate name",
			input:  []model.ClassDescriptor{{Name: "A"}, {Name: "A"}},
			reason: ReasonDuplicateName,
		},
		{
			name:   "dangling parent",
			input:  []model.ClassDescriptor{{Name: "A", Parent: "Ghost"}},
			reason: ReasonDanglingParent,
		},
		{
			name:   "empty name",
			input:  []model.ClassDescriptor{{Name: "A"}, {Parent: "A"}},
			reason: ReasonEmptyName,
		},
		{
			name: "vtable shrinks",
			input: []model.ClassDescriptor{
				{Name: "A", Vtable: make([]model.VirtualMethodSlot, 3)},
				{Name: "B", Parent: "A", Vtable: make([]model.VirtualMethodSlot, 2)},
			},
			reason: ReasonVtableShrink,
		},
		{
			name: "vtable shrinks against a farther ancestor",
			input: []model.ClassDescriptor{
				{Name: "A", Vtable: make([]model.VirtualMethodSlot, 3)},
				{Name: "B", Parent: "A"},
				{Name: "C", Parent: "B", Vtable: make([]model.VirtualMethodSlot, 1)},
			},
			reason: ReasonVtableShrink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Build(tt.input)
			assert.Nil(t, store)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestBuildVtableChecks(t *testing.T) {
	input := []model.ClassDescriptor{
		{Name: "A", Vtable: make([]model.VirtualMethodSlot, 3)},
		{Name: "B", Parent: "A"}, // No vtable information is allowed
		{Name: "C", Parent: "B", Vtable: make([]model.VirtualMethodSlot, 4)},
	}
	_, err := Build(input)
	assert.NoError(t, err)

	shrinking := []model.ClassDescriptor{
		{Name: "A", Vtable: make([]model.VirtualMethodSlot, 3)},
		{Name: "B", Parent: "A", Vtable: make([]model.VirtualMethodSlot, 1)},
	}
	_, err = Build(shrinking, WithoutVtableCheck())
	assert.NoError(t, err)
}

func TestBuildCycles(t *testing.T) {
	tests := []struct {
		name  string
		input []model.ClassDescriptor
		path  []string
	}{
		{
			name:  "two classes",
			input: []model.ClassDescriptor{{Name: "A", Parent: "B"}, {Name: "B", Parent: "A"}},
			path:  []string{"A", "B", "A"},
		},
		{
			name:  "own parent",
			input: []model.ClassDescriptor{{Name: "A", Parent: "A"}},
			path:  []string{"A", "A"},
		},
		{
			name: "cycle above a valid chain",
			input: []model.ClassDescriptor{
				{Name: "Leaf", Parent: "A"},
				{Name: "A", Parent: "B"},
				{Name: "B", Parent: "C"},
				{Name: "C", Parent: "A"},
			},
			path: []string{"A", "B", "C", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCycle)
			assert.NotErrorIs(t, err, ErrValidation)

			var cerr *CycleError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.path, cerr.Path)
			assert.Contains(t, err.Error(), "->")
		})
	}
}

func TestTraversalGuardsOnCyclicInput(t *testing.T) {
	store := buildUnchecked(t, []model.ClassDescriptor{
		{Name: "A", Parent: "B"},
		{Name: "B", Parent: "A"},
		{Name: "C", Parent: "A"},
	})

	children, err := store.ChildrenChecked("A")
	assert.ErrorIs(t, err, ErrCycle)
	assert.NotEmpty(t, children)

	parents, err := store.ParentsChecked("C")
	assert.ErrorIs(t, err, ErrCycle)
	assert.Equal(t, []string{"A", "B"}, names(parents))

	// The unchecked variants terminate too
	assert.NotPanics(t, func() {
		store.Children("B")
		store.Parents("A")
	})
}

func TestConcurrentReaders(t *testing.T) {
	store := wideFixture(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := store.Names()[i%store.Len()]
			store.Parents(name)
			store.Children(name)
			store.Subgraph([]string{name, "A"})
		}(i)
	}
	wg.Wait()
}

func TestRebuildLeavesOldHandleIntact(t *testing.T) {
	old := humanFixture(t)

	fresh, err := Build([]model.ClassDescriptor{{Name: "Robot"}})
	require.NoError(t, err)

	assert.True(t, old.Contains("Yoav"))
	assert.False(t, fresh.Contains("Yoav"))
	assert.Equal(t, []string{"Man", "Human"}, names(old.Parents("Yoav")))
}

func BenchmarkBuildChain(b *testing.B) {
	input := make([]model.ClassDescriptor, 5000)
	for i := range input {
		input[i] = model.ClassDescriptor{Name: fmt.Sprintf("C%d", i)}
		if i > 0 {
			input[i].Parent = fmt.Sprintf("C%d", i-1)
		}
	}

	b.ResetTimer()
	for range b.N {
		if _, err := Build(input); err != nil {
			b.Fatal(err)
		}
	}
}
