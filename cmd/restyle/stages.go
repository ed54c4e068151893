package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restyle/internal/pipeline"
)

var stageSummaries = map[string]string{
	"identifier-casing": "a_b -> aB outside literals (one pass unless collapsed)",
	"argument-spacing":  "drop spaces around = in keyword arguments",
	"bracket-padding":   "one space inside non-empty (), [] and {}",
	"literal-restore":   "put every string literal back as it was in the source",
	"quote-style":       "''' -> \"\"\", single-line docstrings -> \"...\"",
	"doc-markers":       "@param name -> name:, @return -> returns:, @author, @todo",
	"comment-indent":    "re-indent docstring bodies, join the closing quotes",
	"linefeed-cleanup":  "join a literal with a literal at the start of the next line",
	"blank-lines":       "drop the blank line after a docstring opener",
}

func newStagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the pipeline stages in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, name := range pipeline.StageNames() {
				if quiet {
					fmt.Fprintln(out, name)
					continue
				}
				fmt.Fprintf(out, "%d. %-18s %s\n", i+1, name, stageSummaries[name])
			}
			return nil
		},
	}
}
