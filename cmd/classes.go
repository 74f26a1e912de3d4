package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mabhi256/classgraph/internal/model"
	"github.com/mabhi256/classgraph/internal/render"
	"github.com/mabhi256/classgraph/internal/search"
	"github.com/mabhi256/classgraph/internal/vtable"
	"github.com/mabhi256/classgraph/utils"
)

var directOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every class sorted by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openExplorer()
		if err != nil {
			return err
		}

		classes := e.SortedNodes()
		if jsonOutput() {
			return printJSON(cmd, classes)
		}
		printText(cmd, render.ClassList(classes))
		return nil
	},
}

type classDetails struct {
	Class    model.ClassDescriptor `json:"class"`
	Parents  []string              `json:"parents"`
	Direct   []string              `json:"directChildren"`
	Indirect []string              `json:"indirectChildren"`
	Vtable   []vtable.ResolvedSlot `json:"vtable"`
}

var showCmd = &cobra.Command{
	Use:               "show [class]",
	Short:             "Show a class: inheritance chain, children, vtable and properties",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClassNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openExplorer()
		if err != nil {
			return err
		}
		class, err := lookup(e, args[0])
		if err != nil {
			return err
		}

		store := e.Store()
		direct := store.DirectChildren(class.Name)
		isDirect := make(map[string]bool, len(direct))
		for _, c := range direct {
			isDirect[c.Name] = true
		}
		var indirect []model.ClassDescriptor
		for _, c := range store.Children(class.Name) {
			if !isDirect[c.Name] {
				indirect = append(indirect, c)
			}
		}
		slots, _ := e.Resolve(class.Name)

		d := render.Details{
			Class:    class,
			Parents:  store.Parents(class.Name),
			Direct:   direct,
			Indirect: indirect,
			Slots:    slots,
			Store:    store,
		}
		if jsonOutput() {
			return printJSON(cmd, classDetails{
				Class:    d.Class,
				Parents:  names(d.Parents),
				Direct:   names(d.Direct),
				Indirect: names(d.Indirect),
				Vtable:   d.Slots,
			})
		}
		printText(cmd, d.String())
		return nil
	},
}

var parentsCmd = &cobra.Command{
	Use:               "parents [class]",
	Short:             "List the ancestors of a class, nearest first",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClassNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openExplorer()
		if err != nil {
			return err
		}
		class, err := lookup(e, args[0])
		if err != nil {
			return err
		}

		parents := e.Store().Parents(class.Name)
		if jsonOutput() {
			return printJSON(cmd, names(parents))
		}
		printText(cmd, render.Chain(class, parents))
		return nil
	},
}

var childrenCmd = &cobra.Command{
	Use:               "children [class]",
	Short:             "List the descendants of a class in depth-first order",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClassNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openExplorer()
		if err != nil {
			return err
		}
		class, err := lookup(e, args[0])
		if err != nil {
			return err
		}

		var children []model.ClassDescriptor
		if directOnly {
			children = e.Store().DirectChildren(class.Name)
		} else {
			children = e.Store().Children(class.Name)
		}

		if jsonOutput() {
			return printJSON(cmd, names(children))
		}
		printText(cmd, render.Names(children))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Filter classes by name pattern, or by parents:, children: or overrides: queries",
	Long: `Filter classes the way the class list search box does.

  <pattern>                   case-insensitive regular expression on names
  parents:<class>             ancestors of class
  children:<class>            all descendants of class
  overrides:<index>;<class>   descendants overriding vtable slot index

Without a query, example queries for the loaded snapshot are printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openExplorer()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			suggestions := search.Suggestions(e.Store())
			if jsonOutput() {
				return printJSON(cmd, suggestions)
			}
			for _, s := range suggestions {
				printText(cmd, utils.MutedStyle.Render("try: ")+s)
			}
			return nil
		}

		q := search.Parse(args[0])
		results := e.Search(args[0])
		if jsonOutput() {
			return printJSON(cmd, names(results))
		}
		printText(cmd, render.SearchResults(q, results))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the snapshot forms a valid hierarchy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openExplorer()
		if err != nil {
			return err
		}

		store := e.Store()
		summary := struct {
			Classes int `json:"classes"`
			Roots   int `json:"roots"`
			Edges   int `json:"edges"`
		}{store.Len(), len(store.Roots()), len(store.Edges())}

		if jsonOutput() {
			return printJSON(cmd, summary)
		}
		printText(cmd, utils.GoodStyle.Render("✅ Valid hierarchy")+" "+
			utils.MutedStyle.Render(fmt.Sprintf("%s, %s, %s",
				utils.Pluralize(summary.Classes, "class", "classes"),
				utils.Pluralize(summary.Roots, "root", "roots"),
				utils.Pluralize(summary.Edges, "edge", "edges"))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, parentsCmd, childrenCmd, searchCmd, validateCmd)

	childrenCmd.Flags().BoolVar(&directOnly, "direct", false, "Only direct children")
}
