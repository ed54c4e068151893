package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"restyle/internal/trace"
)

type traceFlags struct {
	output, level, format string
	levelSet              bool
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	fs := cmd.Root().PersistentFlags()
	var tf traceFlags
	for name, dst := range map[string]*string{"trace": &tf.output, "trace-level": &tf.level, "trace-format": &tf.format} {
		v, err := fs.GetString(name)
		if err != nil {
			return tf, fmt.Errorf("--%s: %w", name, err)
		}
		*dst = v
	}
	tf.levelSet = fs.Changed("trace-level")
	return tf, nil
}

// setupTracing attaches a tracer to cmd's context and returns the func that
// closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	level, err := trace.ParseLevel(tf.level)
	if err != nil {
		return nil, fmt.Errorf("--trace-level: %w", err)
	}
	if tf.output != "" && !tf.levelSet {
		level = trace.LevelStage
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	format, err := trace.ParseFormat(tf.format)
	if err != nil {
		return nil, fmt.Errorf("--trace-format: %w", err)
	}

	cfg := trace.Config{Level: level, Format: format, OutputPath: tf.output}
	if tf.output == "" || tf.output == "-" {
		// the wrapper has no Close, so stderr stays open
		cfg.Output = struct{ io.Writer }{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close: %v\n", err)
		}
	}, nil
}
