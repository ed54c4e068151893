package literal

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func newRestorer(t *testing.T) *Restorer {
	t.Helper()
	r, err := NewRestorer(0)
	if err != nil {
		t.Fatalf("NewRestorer: %v", err)
	}
	return r
}

func TestSpans(t *testing.T) {
	r := newRestorer(t)
	tests := []struct {
		line string
		kind Kind
		want []string
	}{
		{`x = "a" + "b"`, Double, []string{`"a"`, `"b"`}},
		{`x = ""`, Double, []string{`""`}},
		{`x = 'a' + "b"`, Single, []string{`'a'`}},
		{`x = "unterminated`, Double, nil},
		{`d = {'k': 'v'}`, Single, []string{`'k'`, `'v'`}},
		{`"""doc"""`, Double, []string{`""`, `"doc"`, `""`}},
	}
	for _, tt := range tests {
		got, err := r.Spans(tt.line, tt.kind)
		if err != nil {
			t.Fatalf("Spans(%q): %v", tt.line, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Spans(%q, %s) = %q, want %q", tt.line, tt.kind, got, tt.want)
		}
	}
}

func TestRestorePutsBackLiteralContents(t *testing.T) {
	r := newRestorer(t)
	orig := "print(\"snake_case\", 'x_y')\nvalue_one = f(a = \"k = v\")\n"
	filtered := "print( \"snakeCase\", 'xY' )\nvalueOne = f( a=\"k=v\" )\n"
	want := "print( \"snake_case\", 'x_y' )\nvalueOne = f( a=\"k = v\" )\n"

	got, err := r.Restore(orig, filtered)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got != want {
		t.Fatalf("Restore mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRestoreAppendsTrailingNewline(t *testing.T) {
	r := newRestorer(t)
	got, err := r.Restore("a_b = 1", "aB = 1")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got != "aB = 1\n" {
		t.Fatalf("want %q got %q", "aB = 1\n", got)
	}

	got, err = r.Restore("x\n\n", "x\n\n")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got != "x\n\n" {
		t.Fatalf("blank last line lost: %q", got)
	}
}

func TestRestoreEmpty(t *testing.T) {
	r := newRestorer(t)
	got, err := r.Restore("", "")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got != "" {
		t.Fatalf("want empty output, got %q", got)
	}
}

func TestRestoreSpanCountMismatch(t *testing.T) {
	r := newRestorer(t)
	orig := "ok = 1\ns = \"a\" + \"b\"\n"
	filtered := "ok = 1\ns = \"a + \"b\"\n"

	_, err := r.Restore(orig, filtered)
	if !errors.Is(err, ErrSpanCount) {
		t.Fatalf("expected ErrSpanCount, got %v", err)
	}
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
	if mm.Line != 2 || mm.Kind != Double || mm.OriginalCount != 2 || mm.FilteredCount != 1 {
		t.Fatalf("unexpected mismatch details: %+v", mm)
	}
	if mm.Original != "s = \"a\" + \"b\"" {
		t.Fatalf("original line not recorded: %q", mm.Original)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("message should name the line: %q", err.Error())
	}
}

func TestRestoreSingleQuoteMismatch(t *testing.T) {
	r := newRestorer(t)
	_, err := r.Restore("c = 'a'\n", "c = a'\n")
	var mm *MismatchError
	if !errors.As(err, &mm) || mm.Kind != Single {
		t.Fatalf("expected single-quoted mismatch, got %v", err)
	}
}

func TestRestoreLineCountMismatch(t *testing.T) {
	r := newRestorer(t)
	_, err := r.Restore("a\nb\n", "a\n")
	if !errors.Is(err, ErrLineCount) {
		t.Fatalf("expected ErrLineCount, got %v", err)
	}
	if errors.Is(err, ErrSpanCount) {
		t.Fatalf("line count error must not match ErrSpanCount")
	}
}

func TestRestoreFidelity(t *testing.T) {
	r := newRestorer(t)
	// every literal interior survives any edit made outside literals
	orig := strings.Join([]string{
		`call(a_b, "x_y = (1)", 'p_q')`,
		`d = {"k_1": [1, 2], 'k_2': (3)}`,
		`print("")`,
	}, "\n") + "\n"
	filtered := strings.Join([]string{
		`call( aB, "xY=( 1 )", 'pQ' )`,
		`d = { "k1": [ 1, 2 ], 'k2': ( 3 ) }`,
		`print( "" )`,
	}, "\n") + "\n"

	got, err := r.Restore(orig, filtered)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	for _, kind := range Kinds {
		for i, line := range splitLines(got) {
			want, _ := r.Spans(splitLines(orig)[i], kind)
			have, _ := r.Spans(line, kind)
			if !slices.Equal(want, have) {
				t.Errorf("line %d %s spans: want %q got %q", i+1, kind, want, have)
			}
		}
	}
}

func TestKindStrings(t *testing.T) {
	if Double.Quote() != `"` || Single.Quote() != `'` {
		t.Fatalf("unexpected quotes")
	}
	if Kind(0).String() != "unknown" {
		t.Fatalf("zero kind should be unknown")
	}
}
