// Package render turns query results into styled terminal text.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
	"github.com/mabhi256/classgraph/utils"
)

// Tree draws every class of store as an indented forest, children in input
// order. The focus class, if any, is highlighted.
func Tree(store *hierarchy.Store, focus string) string {
	type frame struct {
		name string
		node *tree.Tree
	}

	roots := store.Roots()
	if len(roots) == 0 {
		return utils.MutedStyle.Render("(no classes)")
	}

	forest := make([]*tree.Tree, len(roots))
	stack := make([]frame, 0, len(roots))
	for i, root := range roots {
		forest[i] = tree.Root(label(root, focus))
		stack = append(stack, frame{root.Name, forest[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range store.DirectChildren(top.name) {
			node := tree.Root(label(child, focus))
			top.node.Child(node)
			stack = append(stack, frame{child.Name, node})
		}
	}

	if len(forest) == 1 {
		return style(forest[0]).String()
	}

	t := tree.New()
	for _, root := range forest {
		t.Child(root)
	}
	return style(t).String()
}

// Chain draws the inheritance path from the root down to class. parents is
// nearest first, as returned by Store.Parents.
func Chain(class model.ClassDescriptor, parents []model.ClassDescriptor) string {
	t := tree.Root(label(class, class.Name))
	for _, parent := range parents {
		t = tree.Root(label(parent, "")).Child(t)
	}
	return style(t).String()
}

func style(t *tree.Tree) *tree.Tree {
	return t.
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(utils.BorderStyle.PaddingRight(1))
}

func label(class model.ClassDescriptor, focus string) string {
	name := utils.TextStyle.Render(class.Name)
	if class.Name == focus {
		name = utils.FocusStyle.Render(class.Name)
	}
	if class.IsAbstract {
		name = lipgloss.JoinHorizontal(lipgloss.Top, name, " ", utils.BoolStyle.Render("(abstract)"))
	}
	return name
}
