package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mabhi256/classgraph/internal/config"
	"github.com/mabhi256/classgraph/internal/logging"
	"github.com/mabhi256/classgraph/internal/render"
	"github.com/mabhi256/classgraph/utils"
)

var outputFormats = []string{"text", "json"}

var (
	classesPath    string
	prototypesPath string
	configPath     string
	outputFormat   string
	verbose        bool
	noColor        bool
	noVtableCheck  bool

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "classgraph",
	Short: "Browse C++ class hierarchies and virtual method tables",
	Long: `classgraph loads a snapshot of classes (name, parent, properties, vtable) and
answers questions about it: ancestors, descendants, who declares, overrides
and inherits each virtual method, and bounded neighborhoods around a class.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}

		if cmd.Name() == "install" || cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Only offer the first-run setup to a person at a terminal
		if !isatty.IsTerminal(os.Stdout.Fd()) || !isShellSupported() {
			return nil
		}

		if !completionsExist() {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "🔧 First run detected, setting up classgraph...")
			if installCompletions(cmd.Root(), out) == nil {
				fmt.Fprintln(out, "✅ Shell completions installed")
				fmt.Fprintln(out, "💡 Restart your shell to enable tab completion")
			} else {
				fmt.Fprintln(out, "⚠️  Auto-setup failed. Run 'classgraph install' to try again.")
			}
		}
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install shell completions",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if !isInPath() {
			printPathInstructions(out)
			return
		}

		if !isShellSupported() {
			fmt.Fprintf(out, "❌ Shell completion not supported for: %s\n", detectShell())
			fmt.Fprintf(out, "Supported shells: %s\n", strings.Join(supportedShells, ", "))
			return
		}

		if completionsExist() {
			fmt.Fprintln(out, "✅ Already configured!")
			return
		}

		fmt.Fprintln(out, "📦 Installing completions...")
		if err := installCompletions(cmd.Root(), out); err != nil {
			fmt.Fprintf(out, "❌ Failed: %v\n", err)
		} else {
			fmt.Fprintln(out, "✅ Done! Restart your shell to enable tab completion.")
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.Error(err))
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

// setup resolves the configuration (defaults, file, environment, then
// flags) and installs the logger and color profile it asks for.
func setup(cmd *cobra.Command) error {
	if !slices.Contains(outputFormats, outputFormat) {
		return fmt.Errorf("invalid output format: %s. Valid options: %v", outputFormat, outputFormats)
	}

	c, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	if err := c.ApplyEnv(); err != nil {
		return err
	}

	// Changed rather than Visit: a reused command keeps every flag it has
	// ever seen set in its visited set
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		switch f.Name {
		case "classes":
			c.ClassesPath = classesPath
		case "prototypes":
			c.PrototypesPath = prototypesPath
		case "no-color":
			c.Color = !noColor
		case "verbose":
			if verbose {
				c.LogLevel = "debug"
			}
		}
	})

	if err := c.Validate(); err != nil {
		return err
	}

	utils.SetColor(c.Color && isatty.IsTerminal(os.Stdout.Fd()))

	logger = logging.New(logging.Config{
		Level:  c.LogLevel,
		JSON:   c.LogFormat == "json",
		Writer: cmd.ErrOrStderr(),
	})
	slog.SetDefault(logger)

	cfg = c
	return nil
}

func completionsExist() bool {
	home, _ := os.UserHomeDir()

	paths := map[string]string{
		"bash":       filepath.Join(home, ".local/share/bash-completion/completions/classgraph"),
		"zsh":        filepath.Join(home, ".zsh/completions/_classgraph"),
		"fish":       filepath.Join(home, ".config/fish/completions/classgraph.fish"),
		"powershell": filepath.Join(home, "classgraph_completion.ps1"),
	}

	path := paths[detectShell()]
	_, err := os.Stat(path)
	return err == nil
}

var supportedShells = []string{"bash", "zsh", "fish", "powershell"}

func isShellSupported() bool {
	return slices.Contains(supportedShells, detectShell())
}

func detectShell() string {
	if runtime.GOOS == "windows" {
		return "powershell"
	}

	shell := filepath.Base(os.Getenv("SHELL"))
	if shell == "" {
		return "bash"
	}
	return shell
}

type completionConfig struct {
	dir         string
	file        string
	genFunc     func(io.Writer) error
	activateCmd string
}

// installCompletions writes the completion script for the current shell and
// reports the command that activates it on w.
func installCompletions(rootCmd *cobra.Command, w io.Writer) error {
	home, _ := os.UserHomeDir()
	shell := detectShell()

	configs := map[string]completionConfig{
		"bash": {
			dir:     filepath.Join(home, ".local/share/bash-completion/completions"),
			file:    "classgraph",
			genFunc: rootCmd.GenBashCompletion,
			activateCmd: fmt.Sprintf("source %s",
				filepath.Join(home, ".local/share/bash-completion/completions/classgraph")),
		},
		"zsh": {
			dir:     filepath.Join(home, ".zsh/completions"),
			file:    "_classgraph",
			genFunc: rootCmd.GenZshCompletion,
			activateCmd: fmt.Sprintf("fpath=(%s $fpath) && autoload -U compinit && compinit",
				filepath.Join(home, ".zsh/completions")),
		},
		"fish": {
			dir:         filepath.Join(home, ".config/fish/completions"),
			file:        "classgraph.fish",
			genFunc:     func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
			activateCmd: "complete --do-complete=classgraph", // Trigger fish to reload completions
		},
		"powershell": {
			dir:     home,
			file:    "classgraph_completion.ps1",
			genFunc: rootCmd.GenPowerShellCompletionWithDesc,
			activateCmd: fmt.Sprintf(". %s",
				filepath.Join(home, "classgraph_completion.ps1")),
		},
	}

	config, ok := configs[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s", shell)
	}

	if err := os.MkdirAll(config.dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(config.dir, config.file))
	if err != nil {
		return err
	}
	defer file.Close()

	if err := config.genFunc(file); err != nil {
		return err
	}

	fmt.Fprintln(w, "🔄 Run this command to enable completions now:")
	fmt.Fprintf(w, "   %s\n", config.activateCmd)

	return nil
}

func isInPath() bool {
	execPath, err := os.Executable()
	if err != nil {
		return false
	}

	pathEnv := os.Getenv("PATH")
	paths := strings.Split(pathEnv, string(os.PathListSeparator))
	execDir := filepath.Dir(execPath)

	return slices.Contains(paths, execDir)
}

func printPathInstructions(w io.Writer) {
	execPath, _ := os.Executable()
	execDir := filepath.Dir(execPath)

	fmt.Fprintf(w, "❌ classgraph not in PATH. Binary location: %s\n\n", execPath)

	if runtime.GOOS == "windows" {
		fmt.Fprintf(w, "Add to PATH: %s\n", execDir)
		return
	}
	fmt.Fprintf(w, "Add to shell profile: export PATH=\"%s:$PATH\"\n", execDir)
	fmt.Fprintln(w, "Or copy to: /usr/local/bin")
}

func init() {
	rootCmd.AddCommand(installCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&classesPath, "classes", "c", "", "Classes snapshot (.json, .yaml)")
	flags.StringVarP(&prototypesPath, "prototypes", "p", "", "Prototype table (.json, .yaml)")
	flags.StringVar(&configPath, "config", ".classgraph.yaml", "Config file")
	flags.StringVarP(&outputFormat, "output", "o", "text", "Output format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&noVtableCheck, "no-vtable-check", false, "Accept subclasses with shorter vtables than their ancestors")

	rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	rootCmd.RegisterFlagCompletionFunc("classes", utils.CompleteFilesByExtension(utils.SnapshotExtensions...))
	rootCmd.RegisterFlagCompletionFunc("prototypes", utils.CompleteFilesByExtension(utils.SnapshotExtensions...))
	rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
