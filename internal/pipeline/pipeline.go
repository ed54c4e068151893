// Package pipeline composes the restyle filters into the fixed stage order:
// draft stages on the source, literal restoration against the source, then the
// finishing stages on the reconciled text.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"restyle/internal/filter"
	"restyle/internal/literal"
	"restyle/internal/observ"
	"restyle/internal/trace"
)

// RestoreStage names the reconciliation step. It cannot be disabled.
const RestoreStage = "literal-restore"

// Func is a single text filter.
type Func func(p *filter.Patterns, src string) (string, error)

// Stage is a named filter.
type Stage struct {
	Name  string
	Apply Func
}

// DraftStages are applied to the source before literal restoration.
func DraftStages() []Stage {
	return []Stage{
		{Name: "identifier-casing", Apply: filter.IdentifierCasing},
		{Name: "argument-spacing", Apply: filter.ArgumentSpacing},
		{Name: "bracket-padding", Apply: filter.BracketPadding},
	}
}

// FinishStages are applied to the restored text. blank-lines must stay last.
func FinishStages() []Stage {
	return []Stage{
		{Name: "quote-style", Apply: Chain(filter.TripleQuotes, filter.CollapseDocstrings)},
		{Name: "doc-markers", Apply: filter.DocMarkers},
		{Name: "comment-indent", Apply: filter.CommentIndent},
		{Name: "linefeed-cleanup", Apply: filter.LinefeedCleanup},
		{Name: "blank-lines", Apply: filter.BlankLines},
	}
}

// Chain runs fns in order as one Func.
func Chain(fns ...Func) Func {
	return func(p *filter.Patterns, src string) (string, error) {
		var err error
		for _, fn := range fns {
			if src, err = fn(p, src); err != nil {
				return src, err
			}
		}
		return src, nil
	}
}

// StageNames lists every stage of the default pipeline in order.
func StageNames() []string {
	names := make([]string, 0, 9)
	for _, s := range DraftStages() {
		names = append(names, s.Name)
	}
	names = append(names, RestoreStage)
	for _, s := range FinishStages() {
		names = append(names, s.Name)
	}
	return names
}

// NormalizeName maps user spellings such as "BlankLines" or "blank_lines" to
// the canonical kebab-case stage name.
func NormalizeName(name string) string {
	return strcase.ToKebab(strings.TrimSpace(name))
}

// Options configures Default.
type Options struct {
	Filter  filter.Options
	Disable []string // stage names to skip; RestoreStage is rejected
}

// Pipeline is an immutable, reusable stage sequence. Run is safe for
// concurrent use.
type Pipeline struct {
	patterns *filter.Patterns
	restorer *literal.Restorer
	draft    []Stage
	finish   []Stage
}

// New assembles a pipeline from explicit stages.
func New(patterns *filter.Patterns, restorer *literal.Restorer, draft, finish []Stage) *Pipeline {
	return &Pipeline{
		patterns: patterns,
		restorer: restorer,
		draft:    slices.Clone(draft),
		finish:   slices.Clone(finish),
	}
}

// Default compiles the patterns and builds the canonical stage order minus the
// disabled stages.
func Default(opts Options) (*Pipeline, error) {
	disabled, err := disabledSet(opts.Disable)
	if err != nil {
		return nil, err
	}
	patterns, err := filter.Compile(opts.Filter)
	if err != nil {
		return nil, err
	}
	restorer, err := literal.NewRestorer(opts.Filter.MatchTimeout)
	if err != nil {
		return nil, err
	}
	keep := func(stages []Stage) []Stage {
		return slices.DeleteFunc(stages, func(s Stage) bool { return disabled[s.Name] })
	}
	return New(patterns, restorer, keep(DraftStages()), keep(FinishStages())), nil
}

func disabledSet(names []string) (map[string]bool, error) {
	known := StageNames()
	set := make(map[string]bool, len(names))
	for _, raw := range names {
		name := NormalizeName(raw)
		if name == "" {
			continue
		}
		if name == RestoreStage {
			return nil, fmt.Errorf("pipeline: stage %q cannot be disabled", RestoreStage)
		}
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("pipeline: unknown stage %q (known: %s)", raw, strings.Join(known, ", "))
		}
		set[name] = true
	}
	return set, nil
}

// Stages returns the names of the stages this pipeline runs, in order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.draft)+len(p.finish)+1)
	for _, s := range p.draft {
		names = append(names, s.Name)
	}
	names = append(names, RestoreStage)
	for _, s := range p.finish {
		names = append(names, s.Name)
	}
	return names
}

// Fingerprint identifies everything about p that influences its output.
func (p *Pipeline) Fingerprint() string {
	return fmt.Sprintf("%s;collapse=%t", strings.Join(p.Stages(), ","), p.patterns.Options().CollapseIdentifiers)
}

// StageError reports the stage a run failed in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a successful run.
type Result struct {
	Output  string
	Timings observ.Report
}

// Run transforms src. A failed consistency check aborts the run; no partial
// output is returned.
func (p *Pipeline) Run(ctx context.Context, src string) (Result, error) {
	timer := observ.NewTimer()

	draft, err := p.runStages(ctx, timer, p.draft, src)
	if err != nil {
		return Result{}, err
	}

	restored, err := p.step(ctx, timer, RestoreStage, func() (string, error) {
		return p.restorer.Restore(src, draft)
	})
	if err != nil {
		return Result{}, err
	}

	out, err := p.runStages(ctx, timer, p.finish, restored)
	if err != nil {
		return Result{}, err
	}
	return Result{Output: out, Timings: timer.Report()}, nil
}

func (p *Pipeline) runStages(ctx context.Context, timer *observ.Timer, stages []Stage, text string) (string, error) {
	for _, s := range stages {
		var err error
		text, err = p.step(ctx, timer, s.Name, func() (string, error) {
			return s.Apply(p.patterns, text)
		})
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

func (p *Pipeline) step(ctx context.Context, timer *observ.Timer, name string, fn func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, name, trace.CurrentSpan(ctx))
	stop := timer.Track(name)
	out, err := fn()
	stop("")
	if err != nil {
		span.End("failed")
		return "", &StageError{Stage: name, Err: err}
	}
	span.Attr("bytes", strconv.Itoa(len(out))).End("")
	return out, nil
}

// IsConsistencyError reports whether err is a failed literal consistency check.
func IsConsistencyError(err error) bool {
	return errors.Is(err, literal.ErrSpanCount) || errors.Is(err, literal.ErrLineCount)
}
