package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"restyle/internal/driver"
	"restyle/internal/ui"
)

type formatOutcome struct {
	results []driver.Result
	err     error
}

// formatWithUI collects the files under paths and runs FormatFiles while a
// Bubble Tea program draws progress on out.
func formatWithUI(ctx context.Context, out io.Writer, paths []string, opts driver.Options) ([]driver.Result, error) {
	files, err := driver.CollectFiles(ctx, paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, driver.ErrNoFiles
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.FormatFiles(ctx, files, opts)
		outcomeCh <- formatOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("restyle", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so workers never block on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
