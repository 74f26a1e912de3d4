package render

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/mabhi256/classgraph/utils"
)

// Properties renders an opaque property tree with keys sorted and values
// colored by kind.
func Properties(props map[string]any) string {
	if len(props) == 0 {
		return utils.MutedStyle.Render("{}")
	}
	t := tree.Root(utils.MutedStyle.Render("properties"))
	addMap(t, props)
	return style(t).String()
}

func addMap(t *tree.Tree, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		addValue(t, utils.KeyStyle.Render(k), m[k])
	}
}

func addValue(t *tree.Tree, key string, v any) {
	switch v := v.(type) {
	case map[string]any:
		sub := tree.Root(key)
		addMap(sub, v)
		t.Child(sub)
	case []any:
		sub := tree.Root(key)
		for i, item := range v {
			addValue(sub, utils.KeyStyle.Render(strconv.Itoa(i)), item)
		}
		t.Child(sub)
	default:
		t.Child(key + ": " + scalar(v))
	}
}

func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return utils.NullStyle.Render("null")
	case string:
		return utils.StringStyle.Render(strconv.Quote(v))
	case bool:
		return utils.BoolStyle.Render(strconv.FormatBool(v))
	case float64, float32, int, int64, int32, uint64:
		return utils.NumberStyle.Render(fmt.Sprint(v))
	default:
		return utils.TextStyle.Render(fmt.Sprint(v))
	}
}
