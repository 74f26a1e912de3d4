package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
)

func slots(overridden ...bool) []model.VirtualMethodSlot {
	out := make([]model.VirtualMethodSlot, len(overridden))
	for i, o := range overridden {
		out[i] = model.VirtualMethodSlot{PrototypeIndex: i, IsOverridden: o}
	}
	return out
}

func fixture(t *testing.T) *hierarchy.Store {
	t.Helper()

	store, err := hierarchy.Build([]model.ClassDescriptor{
		{Name: "Human", Vtable: slots(true, true)},
		{Name: "Man", Parent: "Human", Vtable: slots(true, false)},
		{Name: "Woman", Parent: "Human", Vtable: slots(false, true, true)},
		{Name: "Yoav", Parent: "Man", Vtable: slots(true, false)},
		{Name: "android", Parent: "Human"},
	})
	require.NoError(t, err)
	return store
}

func names(classes []model.ClassDescriptor) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		query string
		want  Query
	}{
		{"", Query{Kind: KindNormal}},
		{"  Man ", Query{Kind: KindNormal, Term: "Man"}},
		{"parents: Yoav", Query{Kind: KindParents, Term: "Yoav"}},
		{"children:Human", Query{Kind: KindChildren, Term: "Human"}},
		{"overrides:3;Human", Query{Kind: KindOverrides, Term: "Human", Index: 3}},
		{"overrides: 0 ; Man", Query{Kind: KindOverrides, Term: "Man", Index: 0}},
		{"overrides:-1;Human", Query{Kind: KindNormal, Term: "overrides:-1;Human"}},
		{"overrides:x;Human", Query{Kind: KindNormal, Term: "overrides:x;Human"}},
		{"overrides:Human", Query{Kind: KindNormal, Term: "overrides:Human"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.query))
		})
	}
}

func TestQueryStringRoundTrip(t *testing.T) {
	for _, q := range []Query{
		{Kind: KindParents, Term: "Yoav"},
		{Kind: KindChildren, Term: "Human"},
		Overrides(2, "Woman"),
		{Kind: KindNormal, Term: "^Wo"},
	} {
		assert.Equal(t, q, Parse(q.String()))
	}
}

func TestDescribe(t *testing.T) {
	assert.Empty(t, Parse("Man").Describe())
	assert.Equal(t, "Showing parents of: Yoav", Parse("parents:Yoav").Describe())
	assert.Equal(t, "Showing overrides of method at index 1 of class: Human", Overrides(1, "Human").Describe())
}

func TestFilter(t *testing.T) {
	store := fixture(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"android", "Human", "Man", "Woman", "Yoav"}},
		{"man", []string{"Human", "Man", "Woman"}},
		{"^man$", []string{"Man"}},
		{"[", nil}, // Invalid regexp, substring fallback
		{"parents:Yoav", []string{"Human", "Man"}},
		{"children:Human", []string{"android", "Man", "Woman", "Yoav"}},
		{"children:Ghost", nil},
		{"overrides:0;Human", []string{"Man", "Yoav"}},
		{"overrides:1;Human", []string{"Woman"}},
		{"overrides:2;Human", nil}, // Human has no slot 2
		{"overrides:0;Ghost", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(store, Parse(tt.query))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterSubstringFallback(t *testing.T) {
	store, err := hierarchy.Build([]model.ClassDescriptor{{Name: "Foo(Bar"}, {Name: "Baz"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Foo(Bar"}, names(Filter(store, Parse("o(b"))))
}

func TestSuggestions(t *testing.T) {
	store := fixture(t)
	assert.Equal(t, []string{"parents:Yoav", "children:android"}, Suggestions(store))

	empty, err := hierarchy.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, Suggestions(empty))
}
