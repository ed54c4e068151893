package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"restyle/internal/diag"
	"restyle/internal/driver"
	"restyle/internal/pipeline"
)

const stdinName = "<stdin>"

func runRestyle(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	useColor, err := colorEnabled(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if write && len(args) == 0 {
		return errors.New("cannot use --write with standard input")
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return report(cmd, st.configPath, err, useColor)
	}
	pl, err := st.buildPipeline()
	if err != nil {
		return report(cmd, st.configPath, err, useColor)
	}

	if len(args) == 0 {
		return runStdin(cmd, pl, st, list, useColor)
	}
	return runPaths(cmd, pl, st, args, write, list, useColor)
}

// runStdin filters all of stdin to stdout. On failure nothing is written to
// stdout.
func runStdin(cmd *cobra.Command, pl *pipeline.Pipeline, st settings, list, useColor bool) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return report(cmd, stdinName, fmt.Errorf("%w: %w", diag.ErrRead, err), useColor)
	}

	res, err := driver.FormatSource(cmd.Context(), pl, stdinName, data, st.normalizeUnicode)
	if err != nil {
		return report(cmd, stdinName, err, useColor)
	}

	out := cmd.OutOrStdout()
	if list {
		if res.Changed {
			fmt.Fprintln(out, stdinName)
		}
	} else if _, err := out.Write(res.Output); err != nil {
		return report(cmd, stdinName, fmt.Errorf("%w: %w", diag.ErrWrite, err), useColor)
	}

	if showTimings(cmd) {
		printTimings(cmd.ErrOrStderr(), 1, res.Timings)
	}
	return nil
}

func runPaths(cmd *cobra.Command, pl *pipeline.Pipeline, st settings, paths []string, write, list, useColor bool) error {
	ctx := cmd.Context()
	c, err := st.openCache()
	if err != nil {
		// a broken cache only costs speed
		fmt.Fprintf(cmd.ErrOrStderr(), "restyle: cache disabled: %v\n", err)
	}
	opts := driver.Options{
		Pipeline:         pl,
		Extensions:       st.extensions,
		NormalizeUnicode: st.normalizeUnicode,
		Jobs:             st.jobs,
		Write:            write,
		Cache:            c,
	}

	useTUI, err := progressWanted(cmd, write || list)
	if err != nil {
		return err
	}
	var results []driver.Result
	if useTUI {
		results, err = formatWithUI(ctx, cmd.ErrOrStderr(), paths, opts)
	} else {
		results, err = driver.FormatPaths(ctx, paths, opts)
	}
	if err != nil {
		return report(cmd, "restyle", err, useColor)
	}

	bag := diag.NewBag(0)
	out := cmd.OutOrStdout()
	ok := 0
	for _, r := range results {
		if r.Err != nil {
			bag.Add(diag.FromError(r.Path, r.Err))
			continue
		}
		ok++
		switch {
		case list:
			if r.Changed {
				fmt.Fprintln(out, r.Path)
			}
		case write:
			// written by the driver
		default:
			if _, err := out.Write(r.Output); err != nil {
				bag.Add(diag.FromError(r.Path, fmt.Errorf("%w: %w", diag.ErrWrite, err)))
			}
		}
	}

	if showTimings(cmd) {
		printTimings(cmd.ErrOrStderr(), ok, mergeTimings(results))
	}

	if bag.Len() == 0 {
		return nil
	}
	renderOpts := diag.RenderOptions{Color: useColor}
	for _, d := range bag.Items() {
		if err := diag.Render(cmd.ErrOrStderr(), d, renderOpts); err != nil {
			return err
		}
	}
	return errAlreadyReported
}

// report renders err as a diagnostic on stderr.
func report(cmd *cobra.Command, path string, err error, useColor bool) error {
	if path == "" {
		path = "restyle"
	}
	if renderErr := diag.Render(cmd.ErrOrStderr(), diag.FromError(path, err), diag.RenderOptions{Color: useColor}); renderErr != nil {
		return errors.Join(err, renderErr)
	}
	return errAlreadyReported
}

func progressWanted(cmd *cobra.Command, stdoutFree bool) (bool, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, err
	}
	mode, err := readUIMode(value)
	if err != nil {
		return false, err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, err
	}
	return shouldUseTUI(mode, isTerminal(cmd.ErrOrStderr()), stdoutFree, quiet), nil
}

func showTimings(cmd *cobra.Command) bool {
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !timings {
		return false
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && !quiet
}
