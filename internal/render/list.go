package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mabhi256/classgraph/internal/model"
	"github.com/mabhi256/classgraph/internal/search"
	"github.com/mabhi256/classgraph/utils"
)

// ClassList renders classes as a table, in the order given.
func ClassList(classes []model.ClassDescriptor) string {
	if len(classes) == 0 {
		return utils.MutedStyle.Render("No classes found")
	}

	rows := make([][]string, len(classes))
	for i, c := range classes {
		abstract := ""
		if c.IsAbstract {
			abstract = "yes"
		}
		parent := c.Parent
		if parent == "" {
			parent = "-"
		}
		rows[i] = []string{c.Name, parent, abstract, strconv.Itoa(len(c.Vtable))}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(utils.BorderStyle).
		Headers("Class", "Parent", "Abstract", "Vtable").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return utils.TitleStyle.Padding(0, 1)
			case col == 2:
				return utils.BoolStyle.Padding(0, 1)
			case col == 3:
				return utils.NumberStyle.Padding(0, 1)
			default:
				return utils.TextStyle.Padding(0, 1)
			}
		}).
		String()
}

// SearchResults renders the banner of a prefixed query followed by the
// matching classes.
func SearchResults(q search.Query, classes []model.ClassDescriptor) string {
	list := ClassList(classes)
	banner := q.Describe()
	if banner == "" {
		return list
	}
	return lipgloss.JoinVertical(lipgloss.Left, utils.InfoStyle.Render(banner), list)
}

// Names renders one class name per line.
func Names(classes []model.ClassDescriptor) string {
	if len(classes) == 0 {
		return utils.MutedStyle.Render("(none)")
	}
	lines := make([]string, len(classes))
	for i, c := range classes {
		lines[i] = label(c, "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
