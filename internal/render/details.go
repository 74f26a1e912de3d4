package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
	"github.com/mabhi256/classgraph/internal/view"
	"github.com/mabhi256/classgraph/internal/vtable"
	"github.com/mabhi256/classgraph/utils"
)

// Details is everything the show command prints about one class.
type Details struct {
	Class    model.ClassDescriptor
	Parents  []model.ClassDescriptor // Nearest first
	Direct   []model.ClassDescriptor
	Indirect []model.ClassDescriptor // Descendants that are not direct children
	Slots    []vtable.ResolvedSlot
	Store    *hierarchy.Store // Links return types to classes; optional
}

func (d Details) String() string {
	title := utils.TitleStyle.Render(d.Class.Name)
	if d.Class.IsAbstract {
		title = lipgloss.JoinHorizontal(lipgloss.Center, title, " ", utils.AbstractBadgeStyle.Render("Abstract"))
	}

	sections := []string{
		title,
		section("Inheritance chain", Chain(d.Class, d.Parents)),
		section("Direct children ("+utils.Pluralize(len(d.Direct), "class", "classes")+")", Names(d.Direct)),
		section("Indirect children ("+utils.Pluralize(len(d.Indirect), "class", "classes")+")", Names(d.Indirect)),
	}
	if len(d.Slots) > 0 {
		sections = append(sections, section("Virtual Methods Table", Vtable(d.Slots, d.Store)))
	}
	if len(d.Class.Properties) > 0 {
		sections = append(sections, section("Properties", Properties(d.Class.Properties)))
	}
	return strings.Join(sections, "\n")
}

func section(heading, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left, utils.SectionStyle.Render(heading), body)
}

// Graph renders a neighborhood with its truncation notice on top.
func Graph(result view.Result, focus string) string {
	body := Tree(result.Store, focus)
	if notice := Notice(result); notice != "" {
		return lipgloss.JoinVertical(lipgloss.Left, notice, body)
	}
	return body
}

// Notice is the warning shown when a neighborhood left classes out, or ""
// when nothing was cut.
func Notice(result view.Result) string {
	if !result.Truncated {
		return ""
	}
	return utils.NoticeStyle.Render("Too many nodes to display - showing only first " + strconv.Itoa(result.Cap))
}

// Error formats err for the terminal.
func Error(err error) string {
	return utils.ErrorStyle.Render("Error: ") + err.Error()
}
