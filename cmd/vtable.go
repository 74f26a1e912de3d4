package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mabhi256/classgraph/internal/render"
)

var vtableCmd = &cobra.Command{
	Use:               "vtable [class]",
	Short:             "Show where each virtual method of a class is declared, implemented and overridden",
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

		slots, _ := e.Resolve(class.Name)
		if jsonOutput() {
			return printJSON(cmd, slots)
		}
		printText(cmd, render.Vtable(slots, e.Store()))
		return nil
	},
}

var overridesCmd = &cobra.Command{
	Use:               "overrides [class] [index]",
	Short:             "List the descendants overriding one virtual method",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeClassNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil || index < 0 {
			return fmt.Errorf("invalid vtable index: %s", args[1])
		}

		e, err := openExplorer()
		if err != nil {
			return err
		}
		class, err := lookup(e, args[0])
		if err != nil {
			return err
		}

		slots, _ := e.Resolve(class.Name)
		if index >= len(slots) {
			return fmt.Errorf("%s has %d virtual methods, no index %d", class.Name, len(slots), index)
		}

		slot := slots[index]
		if jsonOutput() {
			return printJSON(cmd, names(slot.ChildrenImplementations))
		}
		printText(cmd, render.Overrides(slot))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vtableCmd, overridesCmd)
}
