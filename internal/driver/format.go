// Package driver runs the restyle pipeline over stdin buffers and file trees.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"restyle/internal/cache"
	"restyle/internal/diag"
	"restyle/internal/observ"
	"restyle/internal/pipeline"
	"restyle/internal/source"
	"restyle/internal/trace"
	"restyle/internal/version"
)

// ErrNoFiles is returned when the given paths contain no matching file.
var ErrNoFiles = errors.New("no source files found")

// Options configures FormatPaths and FormatFiles.
type Options struct {
	Pipeline *pipeline.Pipeline
	// Extensions selects files found while walking directories. Files named
	// explicitly are always processed.
	Extensions       []string
	NormalizeUnicode bool
	// Jobs bounds the number of files processed at once; 0 means GOMAXPROCS.
	Jobs int
	// Write rewrites changed files in place.
	Write bool
	// Cache, when set, short-circuits inputs seen before with the same pipeline.
	Cache    *cache.Cache
	Progress ProgressSink
}

// Result is the outcome for one file. Output is nil when Err is set.
type Result struct {
	Path    string
	Changed bool
	Cached  bool
	Output  []byte
	Timings observ.Report
	Err     error
}

// FormatSource runs pl over one in-memory buffer. name is used for tracing
// only.
func FormatSource(ctx context.Context, pl *pipeline.Pipeline, name string, src []byte, normalizeUnicode bool) (Result, error) {
	file := source.Decode(name, src, source.Options{NFC: normalizeUnicode})
	res := formatFile(ctx, pl, nil, file)
	return res, res.Err
}

func formatFile(ctx context.Context, pl *pipeline.Pipeline, c *cache.Cache, file *source.File) Result {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, file.Path, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	res := Result{Path: file.Path}
	key := cache.NewKey(version.Version+";"+pl.Fingerprint(), file.Content)
	if out, ok, err := c.Get(key); err == nil && ok {
		res.Output, res.Cached = out, true
	} else {
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
		}
		run, err := pl.Run(ctx, string(file.Content))
		if err != nil {
			span.End("failed")
			res.Err = err
			return res
		}
		res.Output, res.Timings = []byte(run.Output), run.Timings
		if err := c.Put(key, res.Output); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
		}
	}

	// Content is already normalized, so normalization itself counts as a change
	res.Changed = !bytes.Equal(file.Content, res.Output) ||
		file.Flags.HasAny(source.FileHadBOM|source.FileNormalizedCRLF|source.FileNormalizedNFC)
	span.Attr("changed", strconv.FormatBool(res.Changed)).
		Attr("cached", strconv.FormatBool(res.Cached)).
		End("")
	return res
}

// FormatPaths collects files under paths and formats them with FormatFiles.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectFiles(ctx, paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	return FormatFiles(ctx, files, opts)
}

// FormatFiles formats files concurrently. Results come back in the order of
// files. A failure in one file is recorded in its Result and does not stop the
// others; the returned error covers only setup and cancellation.
func FormatFiles(ctx context.Context, files []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Pipeline == nil {
		return nil, errors.New("driver: no pipeline")
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "format", trace.CurrentSpan(ctx))
	defer span.Attr("files", strconv.Itoa(len(files))).End("")
	ctx = trace.WithSpan(ctx, span)

	for _, path := range files {
		notify(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	// each goroutine owns one index, no lock needed
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			notify(opts.Progress, Event{File: path, Status: StatusWorking})

			res := formatPath(gctx, path, opts)
			results[i] = res

			status := StatusDone
			switch {
			case res.Err != nil:
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			notify(opts.Progress, Event{File: path, Status: status, Err: res.Err, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatPath(ctx context.Context, path string, opts Options) Result {
	file, err := source.Load(path, source.Options{NFC: opts.NormalizeUnicode})
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("%w: %w", diag.ErrRead, err)}
	}

	res := formatFile(ctx, opts.Pipeline, opts.Cache, file)
	res.Path = path
	if res.Err != nil || !opts.Write || !res.Changed {
		return res
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, res.Output, mode.Perm()); err != nil {
		res.Err = fmt.Errorf("%w: %w", diag.ErrWrite, err)
	}
	return res
}
