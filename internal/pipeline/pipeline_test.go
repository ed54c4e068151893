package pipeline

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"restyle/internal/filter"
	"restyle/internal/literal"
)

func mustDefault(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	p, err := Default(opts)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return p
}

func run(t *testing.T, p *Pipeline, src string) string {
	t.Helper()
	res, err := p.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return res.Output
}

func TestRunExamples(t *testing.T) {
	p := mustDefault(t, Options{})
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"casing pair", "a_b", "aB\n"},
		{"casing single pass", "a_b_c", "aB_c\n"},
		{"keyword spacing", "f(foo = bar)", "f( foo=bar )\n"},
		{"docstring collapse", `"""A single line doc."""`, "\"A single line doc.\"\n"},
		{"apostrophe docstring", `'''Doc.'''`, "\"Doc.\"\n"},
		{"param marker", "@param foo description of foo", "foo: description of foo\n"},
		{"return marker", "@return something", "returns: something\n"},
		{"literal kept", `print("snake_case", x_y)`, "print( \"snake_case\", xY )\n"},
		{"single literal kept", `d = {'a_b': (c_d)}`, "d = { 'a_b': ( cD ) }\n"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, p, tt.in); got != tt.want {
				t.Fatalf("want %q got %q", tt.want, got)
			}
		})
	}
}

func TestRunDocstringBlock(t *testing.T) {
	p := mustDefault(t, Options{})
	src := strings.Join([]string{
		"def load_file(path_name, mode = 'r'):",
		"    '''Load a file.",
		"",
		"    @param path_name where to read from",
		"    @return the file_contents",
		"    '''",
		"",
		"    return open(path_name, mode = mode)",
		"",
	}, "\n")
	want := strings.Join([]string{
		"def loadFile( pathName, mode='r' ):",
		`    """Load a file.`,
		"       pathName: where to read from",
		`       returns: the fileContents"""`,
		"",
		"    return open( pathName, mode=mode )",
		"",
	}, "\n")

	if diff := cmp.Diff(want, run(t, p, src)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunBlankLineRemovalKeepsOtherBlankLines(t *testing.T) {
	p := mustDefault(t, Options{})
	src := "x = 1\n\n    \"\"\"Summary\n\n    Details.\n    \"\"\"\n\ny = 2\n"
	want := "x = 1\n\n    \"\"\"Summary\n       Details.\"\"\"\n\ny = 2\n"
	if diff := cmp.Diff(want, run(t, p, src)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunKeepsTextAroundBlockClosers(t *testing.T) {
	p := mustDefault(t, Options{})
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"literal after closer", "\"\"\"Module doc\nmore\n\"\"\"\n\"Other\"\n", "\"\"\"Module doc\nmore\"\"\"\n\"Other\"\n"},
		{"blank line after inline opener block", "x = \"\"\"a\n  b\n\"\"\"\n\ny = 1\n", "x = \"\"\"a\n  b\n\"\"\"\n\ny = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(t, p, tt.in)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunCollapseIdentifiers(t *testing.T) {
	p := mustDefault(t, Options{Filter: filter.Options{CollapseIdentifiers: true}})
	if got := run(t, p, "a_b_c_d"); got != "aBCD\n" {
		t.Fatalf("want %q got %q", "aBCD\n", got)
	}
}

// quoteEater merges text across a quote boundary, the kind of damage the
// consistency check exists to catch.
func quoteEater(_ *filter.Patterns, src string) (string, error) {
	return strings.Replace(src, `" + "`, ` + `, 1), nil
}

func lineAdder(_ *filter.Patterns, src string) (string, error) {
	return "# header\n" + src, nil
}

func customPipeline(t *testing.T, draft ...Stage) *Pipeline {
	t.Helper()
	restorer, err := literal.NewRestorer(0)
	if err != nil {
		t.Fatalf("NewRestorer: %v", err)
	}
	return New(filter.MustCompile(filter.Options{}), restorer, append(DraftStages(), draft...), FinishStages())
}

func TestRunAbortsOnSpanCountMismatch(t *testing.T) {
	p := customPipeline(t, Stage{Name: "quote-eater", Apply: quoteEater})
	res, err := p.Run(context.Background(), "s = \"a\" + \"b\"\n")
	if err == nil {
		t.Fatalf("expected consistency error, got output %q", res.Output)
	}
	if res.Output != "" {
		t.Fatalf("no partial output expected, got %q", res.Output)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != RestoreStage {
		t.Fatalf("expected StageError from %s, got %v", RestoreStage, err)
	}
	if !errors.Is(err, literal.ErrSpanCount) || !IsConsistencyError(err) {
		t.Fatalf("expected span count error, got %v", err)
	}
}

func TestRunAbortsOnLineCountMismatch(t *testing.T) {
	p := customPipeline(t, Stage{Name: "line-adder", Apply: lineAdder})
	_, err := p.Run(context.Background(), "x = 1\n")
	if !errors.Is(err, literal.ErrLineCount) {
		t.Fatalf("expected line count error, got %v", err)
	}
}

func TestDefaultDisable(t *testing.T) {
	p := mustDefault(t, Options{Disable: []string{"BracketPadding", "doc_markers"}})
	if got := run(t, p, "f(x) # @todo"); got != "f(x) # @todo\n" {
		t.Fatalf("disabled stages still ran: %q", got)
	}
	stages := p.Stages()
	if slices.Contains(stages, "bracket-padding") || slices.Contains(stages, "doc-markers") {
		t.Fatalf("disabled stages listed: %v", stages)
	}
	if !slices.Contains(stages, RestoreStage) {
		t.Fatalf("restore stage missing: %v", stages)
	}
}

func TestDefaultDisableRejects(t *testing.T) {
	if _, err := Default(Options{Disable: []string{"literal_restore"}}); err == nil {
		t.Fatalf("restore stage must not be disableable")
	}
	if _, err := Default(Options{Disable: []string{"no-such-stage"}}); err == nil {
		t.Fatalf("unknown stage must be rejected")
	}
}

func TestStageOrder(t *testing.T) {
	want := []string{
		"identifier-casing", "argument-spacing", "bracket-padding",
		"literal-restore",
		"quote-style", "doc-markers", "comment-indent", "linefeed-cleanup", "blank-lines",
	}
	if diff := cmp.Diff(want, StageNames()); diff != "" {
		t.Fatalf("stage order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, mustDefault(t, Options{}).Stages()); diff != "" {
		t.Fatalf("default stages (-want +got):\n%s", diff)
	}
}

func TestRunTimings(t *testing.T) {
	p := mustDefault(t, Options{})
	res, err := p.Run(context.Background(), "x_y = 1\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Timings.Phases) != len(StageNames()) {
		t.Fatalf("want %d phases, got %d", len(StageNames()), len(res.Timings.Phases))
	}
}

func TestRunCancelled(t *testing.T) {
	p := mustDefault(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Run(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	for in, want := range map[string]string{
		"BlankLines":         "blank-lines",
		"blank_lines":        "blank-lines",
		" identifier-casing": "identifier-casing",
	} {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	plain := mustDefault(t, Options{}).Fingerprint()
	if plain != mustDefault(t, Options{}).Fingerprint() {
		t.Fatalf("fingerprint not stable")
	}
	if plain == mustDefault(t, Options{Filter: filter.Options{CollapseIdentifiers: true}}).Fingerprint() {
		t.Fatalf("collapse option not part of fingerprint")
	}
	if plain == mustDefault(t, Options{Disable: []string{"blank-lines"}}).Fingerprint() {
		t.Fatalf("disabled stages not part of fingerprint")
	}
}
