package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
	"github.com/mabhi256/classgraph/internal/search"
	"github.com/mabhi256/classgraph/internal/view"
	"github.com/mabhi256/classgraph/internal/vtable"
)

func fixture(t *testing.T) *hierarchy.Store {
	t.Helper()

	store, err := hierarchy.Build([]model.ClassDescriptor{
		{Name: "Human", IsAbstract: true, Vtable: []model.VirtualMethodSlot{{PrototypeIndex: 0, IsOverridden: true, IsPureVirtual: true}}},
		{Name: "Man", Parent: "Human", Vtable: []model.VirtualMethodSlot{{PrototypeIndex: 0, IsOverridden: true}}},
		{Name: "Woman", Parent: "Human", Vtable: []model.VirtualMethodSlot{{PrototypeIndex: 0, IsOverridden: true}}},
		{Name: "Yoav", Parent: "Man", Vtable: []model.VirtualMethodSlot{{PrototypeIndex: 0}}},
		{Name: "Robot"},
	})
	require.NoError(t, err)
	return store
}

// assertOrder checks that each substring appears after the previous one.
func assertOrder(t *testing.T, out string, parts ...string) {
	t.Helper()

	pos := 0
	for _, p := range parts {
		i := strings.Index(out[pos:], p)
		if !assert.GreaterOrEqual(t, i, 0, "%q missing after offset %d in\n%s", p, pos, out) {
			return
		}
		pos += i + len(p)
	}
}

func TestTree(t *testing.T) {
	out := Tree(fixture(t), "Man")

	assertOrder(t, out, "Human", "(abstract)", "Man", "Yoav", "Woman", "Robot")
	assert.Contains(t, out, "──")
}

func TestTreeSubgraphCutEdges(t *testing.T) {
	sub := fixture(t).Subgraph([]string{"Yoav", "Woman"})

	out := Tree(sub, "")
	assertOrder(t, out, "Woman", "Yoav")
	assert.NotContains(t, out, "Human")
}

func TestTreeEmpty(t *testing.T) {
	store, err := hierarchy.Build(nil)
	require.NoError(t, err)
	assert.Contains(t, Tree(store, ""), "no classes")
}

func TestChain(t *testing.T) {
	store := fixture(t)
	yoav, _ := store.Node("Yoav")

	out := Chain(yoav, store.Parents("Yoav"))
	assertOrder(t, out, "Human", "Man", "Yoav")
}

func TestClassList(t *testing.T) {
	store := fixture(t)

	out := ClassList(search.SortByName(store.Nodes()))
	assertOrder(t, out, "Class", "Parent", "Human", "yes", "Man", "Human", "Robot", "Woman", "Yoav", "Man")
	assert.Contains(t, ClassList(nil), "No classes found")
}

func TestSearchResults(t *testing.T) {
	store := fixture(t)
	q := search.Parse("children:Man")

	out := SearchResults(q, search.Filter(store, q))
	assertOrder(t, out, "Showing all children of: Man", "Yoav")

	plain := SearchResults(search.Parse("oav"), nil)
	assert.NotContains(t, plain, "Showing")
}

func TestVtable(t *testing.T) {
	store := fixture(t)
	prototypes := []model.Prototype{{Name: "speak", ReturnType: "void"}}

	human, ok := vtable.NewResolver(store, prototypes).ResolveName("Human")
	require.True(t, ok)
	out := Vtable(human, store)
	assertOrder(t, out, "Method", "Go to", "Overrides", "speak()", "void", "defined, pure", "Human", "-", "2")

	yoav, _ := vtable.NewResolver(store, nil).ResolveName("Yoav")
	out = Vtable(yoav, nil)
	assertOrder(t, out, "vmethod0()", "inherited", "Human", "Man")

	assert.Contains(t, Vtable(nil, store), "No virtual methods")
}

func TestVtableLinksReturnTypes(t *testing.T) {
	store := fixture(t)
	prototypes := []model.Prototype{{Name: "clone", ReturnType: "const Human *"}}

	man, ok := vtable.NewResolver(store, prototypes).ResolveName("Man")
	require.True(t, ok)
	assertOrder(t, Vtable(man, store), "clone()", "const Human * → Human", "overridden", "Human", "Human")
	assert.NotContains(t, Vtable(man, nil), "→")

	prototypes[0].ReturnType = "int"
	man, _ = vtable.NewResolver(store, prototypes).ResolveName("Man")
	assert.NotContains(t, Vtable(man, store), "→")
}

func TestOverrides(t *testing.T) {
	store := fixture(t)
	human := vtable.Resolve(mustNode(t, store, "Human"), store)

	out := Overrides(human[0])
	assertOrder(t, out, "Showing overrides of method at index 0 of class: Human", "vmethod0()", "Man", "Woman")
}

func TestProperties(t *testing.T) {
	out := Properties(map[string]any{
		"size":   float64(3),
		"name":   "human",
		"flags":  []any{true, nil},
		"nested": map[string]any{"depth": 2},
	})

	assertOrder(t, out, "properties", "flags", "0: true", "1: null", "name: \"human\"", "nested", "depth: 2", "size: 3")
	assert.Equal(t, "{}", Properties(nil))
}

func TestDetails(t *testing.T) {
	store := fixture(t)
	human := mustNode(t, store, "Human")

	d := Details{
		Class:    human,
		Direct:   store.DirectChildren("Human"),
		Indirect: []model.ClassDescriptor{mustNode(t, store, "Yoav")},
		Slots:    vtable.Resolve(human, store),
		Store:    store,
	}
	out := d.String()

	assertOrder(t, out, "Human", "Abstract", "Inheritance chain", "Direct children (2 classes)", "Man", "Woman",
		"Indirect children (1 class)", "Yoav", "Virtual Methods Table", "vmethod0()")
	assert.NotContains(t, out, "Properties")
}

func TestGraphNotice(t *testing.T) {
	store := fixture(t)

	result := view.Neighborhood(store, nil, 2)
	require.True(t, result.Truncated)
	out := Graph(result, "")
	assertOrder(t, out, "Too many nodes to display - showing only first 2", "Human")

	result = view.Neighborhood(store, nil, 5)
	assert.Empty(t, Notice(result))
	assert.NotContains(t, Graph(result, ""), "Too many")
}

func TestError(t *testing.T) {
	assert.Contains(t, Error(errors.New("boom")), "Error: boom")
}

func mustNode(t *testing.T, store *hierarchy.Store, name string) model.ClassDescriptor {
	t.Helper()

	class, ok := store.Node(name)
	require.True(t, ok)
	return class
}
