package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mabhi256/classgraph/internal/cache"
	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/loader"
	"github.com/mabhi256/classgraph/internal/model"
	"github.com/mabhi256/classgraph/utils"
)

var errNoClasses = errors.New("no classes file: pass --classes or set CLASSGRAPH_CLASSES")

// openExplorer loads the configured snapshot and builds the store every
// command queries.
func openExplorer() (*cache.Explorer, error) {
	if cfg.ClassesPath == "" {
		return nil, errNoClasses
	}

	snap, err := loader.Load(cfg.ClassesPath, cfg.PrototypesPath, loader.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	opts := []hierarchy.Option{hierarchy.WithLogger(logger)}
	if noVtableCheck {
		opts = append(opts, hierarchy.WithoutVtableCheck())
	}

	store, err := hierarchy.Build(snap.Classes, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid hierarchy in %s: %w", cfg.ClassesPath, err)
	}

	return cache.New(store, snap.Prototypes,
		cache.WithCapacity(cfg.CacheSize),
		cache.WithLogger(logger),
	), nil
}

// lookup finds a class the user named on the command line.
func lookup(e *cache.Explorer, name string) (model.ClassDescriptor, error) {
	class, ok := e.Store().Node(name)
	if !ok {
		return model.ClassDescriptor{}, fmt.Errorf("class not found: %s", name)
	}
	return class, nil
}

func jsonOutput() bool {
	return outputFormat == "json"
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printText(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

func names(classes []model.ClassDescriptor) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name
	}
	return out
}

// completeClassNames offers class names from the configured snapshot. It
// stays silent when no snapshot can be loaded.
func completeClassNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := setup(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	e, err := openExplorer()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return utils.CompletePrefix(names(e.SortedNodes()), toComplete), cobra.ShellCompDirectiveNoFileComp
}
