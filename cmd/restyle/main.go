package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"restyle/internal/config"
	"restyle/internal/version"
)

// errAlreadyReported means the failure was rendered as a diagnostic and only
// the exit status is left to set.
var errAlreadyReported = errors.New("already reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "restyle [flags] [path...]",
		Short: "Rewrite source text into a different lexical style",
		Long: `restyle converts identifiers to camelCase, tightens keyword arguments,
pads brackets, normalizes docstring quoting and doc markers, and re-indents
comment blocks. String literal contents are never changed.

With no paths it filters stdin to stdout.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE:          runRestyle,
	}

	root.Flags().BoolP("write", "w", false, "write result to the source file instead of stdout")
	root.Flags().BoolP("list", "l", false, "list files whose output differs from the input")
	root.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	root.Flags().Bool("collapse-identifiers", false, "repeat identifier casing until a_b_c becomes aBC")
	root.Flags().StringSlice("disable", nil, "stages to skip (see 'restyle stages')")
	root.Flags().Bool("normalize-unicode", false, "convert input to Unicode NFC before filtering")
	root.Flags().String("ui", "auto", "progress UI for --write and --list (auto|on|off)")

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show per-stage timing information")
	root.PersistentFlags().String("config", "", "path to "+config.FileName+" (default: search upwards)")
	root.PersistentFlags().Bool("cache", false, "reuse results for inputs seen before")
	root.PersistentFlags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/restyle)")
	root.PersistentFlags().String("trace", "", "write trace events to PATH ('-' for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|driver|file|stage)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")

	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to PATH")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to PATH on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to PATH")

	root.AddCommand(newStagesCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newCleanCmd())
	return root
}

// main runs the root command and exits with status 1 on any failure.
func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errAlreadyReported) {
			fmt.Fprintf(os.Stderr, "restyle: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag for output written to w.
func colorEnabled(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (must be auto, on or off)", mode)
	}
}
