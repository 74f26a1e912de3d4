package utils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// SnapshotExtensions are the file types the loader reads.
var SnapshotExtensions = []string{".json", ".yaml", ".yml"}

func CompleteFilesByExtension(extensions ...string) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		dir := filepath.Dir(toComplete)
		prefix := filepath.Base(toComplete)

		switch {
		case !strings.Contains(toComplete, "/"):
			dir = "."
			prefix = toComplete
		case strings.HasSuffix(toComplete, "/"):
			dir = toComplete
			prefix = ""
		}

		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var suggestions []string
		for _, file := range files {
			name := file.Name()

			// Skip hidden files and non-matching prefixes
			if strings.HasPrefix(name, ".") || !strings.HasPrefix(name, prefix) {
				continue
			}

			suggestion := name
			if dir != "." {
				suggestion = filepath.Join(dir, name)
			}

			if file.IsDir() {
				suggestions = append(suggestions, suggestion+"/")
			} else if hasExtension(name, extensions) {
				suggestions = append(suggestions, suggestion)
			}
		}

		slices.Sort(suggestions)
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}
}

func hasExtension(filename string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(extensions, ext)
}

// CompletePrefix filters candidates by a case-insensitive prefix.
func CompletePrefix(candidates []string, toComplete string) []string {
	lower := strings.ToLower(toComplete)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			out = append(out, c)
		}
	}
	return out
}
