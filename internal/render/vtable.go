package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/vtable"
	"github.com/mabhi256/classgraph/utils"
)

const methodWidth = 48

// Vtable renders resolved slots as a table. Return types naming a class of
// store are followed by a link to it; store may be nil.
func Vtable(slots []vtable.ResolvedSlot, store *hierarchy.Store) string {
	if len(slots) == 0 {
		return utils.MutedStyle.Render("No virtual methods")
	}

	rows := make([][]string, len(slots))
	for i, s := range slots {
		status := s.Status().String()
		if s.Slot.IsPureVirtual {
			status += ", pure"
		}

		goTo := "-"
		if name, ok := s.GoToParent(); ok {
			goTo = name
		}

		returns := s.ReturnType()
		if returns == "" {
			returns = "-"
		} else if store != nil {
			if class, ok := vtable.LinkType(returns, store); ok {
				returns += " → " + class
			}
		}

		rows[i] = []string{
			strconv.Itoa(s.Index),
			utils.TruncateString(utils.SanitizeString(s.MethodName()), methodWidth),
			returns,
			status,
			s.DeclaringClass.Name,
			goTo,
			strconv.Itoa(len(s.ChildrenImplementations)),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(utils.BorderStyle).
		Headers("#", "Method", "Returns", "Status", "Declared in", "Go to", "Overrides").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return utils.TitleStyle.Padding(0, 1)
			case col == 3 && row < len(rows):
				return utils.GetStatusStyle(statusWord(rows[row][col])).Padding(0, 1)
			case col == 0 || col == 6:
				return utils.NumberStyle.Padding(0, 1)
			default:
				return utils.TextStyle.Padding(0, 1)
			}
		}).
		String()
}

func statusWord(cell string) string {
	word, _, _ := strings.Cut(cell, ",")
	return word
}

// Overrides renders the classes overriding one slot, with the slot's
// description as the banner.
func Overrides(slot vtable.ResolvedSlot) string {
	banner := utils.InfoStyle.Render(slot.OverridesQuery().Describe())
	header := utils.FormatKeyValue("Method", slot.MethodName(), 8)
	return lipgloss.JoinVertical(lipgloss.Left, banner, header, Names(slot.ChildrenImplementations))
}
