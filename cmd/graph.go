package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/render"
	"github.com/mabhi256/classgraph/internal/view"
)

var (
	graphCap   int
	unfiltered bool
)

type graphOutput struct {
	Classes   []string         `json:"classes"`
	Edges     []hierarchy.Edge `json:"edges"`
	Truncated bool             `json:"truncated"`
}

var graphCmd = &cobra.Command{
	Use:   "graph [class]",
	Short: "Draw the neighborhood of a class, or the whole hierarchy",
	Long: `Draw the ancestors and descendants of a class as a tree.

Large neighborhoods are cut to the first --cap descendants. Without a class,
up to twice --cap classes of the whole hierarchy are drawn.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeClassNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openExplorer()
		if err != nil {
			return err
		}

		focus := ""
		if len(args) == 1 {
			class, err := lookup(e, args[0])
			if err != nil {
				return err
			}
			focus = class.Name
		}

		opts := view.Options{Cap: cfg.Cap, Unfiltered: unfiltered}
		if cmd.Flags().Changed("cap") {
			opts.Cap = graphCap
		}

		result, _ := e.Neighborhood(focus, opts)
		logger.Debug("neighborhood", "focus", focus, "classes", result.Store.Len(), "truncated", result.Truncated)

		if jsonOutput() {
			return printJSON(cmd, graphOutput{
				Classes:   result.Store.Names(),
				Edges:     result.Store.Edges(),
				Truncated: result.Truncated,
			})
		}
		printText(cmd, render.Graph(result, focus))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().IntVar(&graphCap, "cap", view.DefaultCap, "Maximum descendants drawn around a class")
	graphCmd.Flags().BoolVar(&unfiltered, "unfiltered", false, "Draw the whole hierarchy when it is small enough")
}
