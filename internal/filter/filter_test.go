package filter

import (
	"testing"
	"time"
)

type filterCase struct {
	name string
	in   string
	want string
}

func runCases(t *testing.T, p *Patterns, fn func(*Patterns, string) (string, error), cases []filterCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fn(p, tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("mismatch:\nwant %q\ngot  %q", tc.want, got)
			}
		})
	}
}

func TestIdentifierCasing(t *testing.T) {
	runCases(t, MustCompile(Options{}), IdentifierCasing, []filterCase{
		{"pair", "a_b", "aB"},
		{"one pass leaves second underscore", "a_b_c", "aB_c"},
		{"alternating windows", "a_b_c_d", "aB_cD"},
		{"long words", "self.foo_bar_baz = 1", "self.fooBarBaz = 1"},
		{"digits", "item_2 = v_1", "item2 = v1"},
		{"upper case", "MAX_SIZE", "MAXSIZE"},
		{"leading underscore", "_private", "_private"},
		{"double underscore", "x__y", "x__y"},
		{"dunder", "__init__", "__init__"},
		{"inside literal", `print("a_b")`, `print("aB")`},
	})
}

func TestIdentifierCasingCollapse(t *testing.T) {
	runCases(t, MustCompile(Options{CollapseIdentifiers: true}), IdentifierCasing, []filterCase{
		{"three", "a_b_c", "aBC"},
		{"four", "a_b_c_d", "aBCD"},
		{"long words", "foo_bar_baz", "fooBarBaz"},
		{"no match", "plain", "plain"},
	})
}

func TestArgumentSpacing(t *testing.T) {
	runCases(t, MustCompile(Options{}), ArgumentSpacing, []filterCase{
		{"keyword", "f(foo = bar)", "f(foo=bar)"},
		{"several keywords", "f(a = 1, b = 2)", "f(a=1, b=2)"},
		{"assignment outside call", "x = 1", "x = 1"},
		{"comparison", "f(a == b)", "f(a == b)"},
		{"nested call only inner part", "f(g(a = 1), b = 2)", "f(g(a=1), b = 2)"},
		{"multi-line call", "f(\n    a = 1,\n    b = 2)", "f(\n    a=1,\n    b=2)"},
		{"no space after equals", "f(a =b)", "f(a =b)"},
	})
}

func TestBracketPadding(t *testing.T) {
	runCases(t, MustCompile(Options{}), BracketPadding, []filterCase{
		{"call", "f(x)", "f( x )"},
		{"empty call", "f()", "f()"},
		{"index", "a[0]", "a[ 0 ]"},
		{"empty list", "x = []", "x = []"},
		{"dict", "{'a': 1}", "{ 'a': 1 }"},
		{"empty dict", "{}", "{}"},
		{"nested parens", "((a))", "( ( a ) )"},
		{"mixed kinds", "[(x)]", "[ ( x ) ]"},
		{"already padded", "f( x )", "f( x )"},
		{"line break inside", "f(\n    x\n)", "f(\n    x\n)"},
		{"keyword call", "f(foo=bar)", "f( foo=bar )"},
	})
}

func TestBracketPaddingIdempotent(t *testing.T) {
	p := MustCompile(Options{})
	inputs := []string{
		"f(x)",
		"a[b[c]] = {k: (1, 2)}",
		"print(\"x\", [1, 2], {})",
		"def f(a, b=(1)):\n    return [a]\n",
	}
	for _, in := range inputs {
		once, err := BracketPadding(p, in)
		if err != nil {
			t.Fatalf("first pass: %v", err)
		}
		twice, err := BracketPadding(p, once)
		if err != nil {
			t.Fatalf("second pass: %v", err)
		}
		if once != twice {
			t.Fatalf("not idempotent for %q:\nonce  %q\ntwice %q", in, once, twice)
		}
	}
}

func TestQuoteStyle(t *testing.T) {
	p := MustCompile(Options{})
	runCases(t, p, TripleQuotes, []filterCase{
		{"apostrophes", "'''doc'''", `"""doc"""`},
		{"single apostrophe untouched", "'a'", "'a'"},
	})
	runCases(t, p, CollapseDocstrings, []filterCase{
		{"single line", `"""A single line doc."""`, `"A single line doc."`},
		{"indented", `    """Doc."""`, `    "Doc."`},
		{"embedded quote", `"""a "b" c"""`, `"""a "b" c"""`},
		{"multi-line", "\"\"\"Summary\nmore\n\"\"\"", "\"\"\"Summary\nmore\n\"\"\""},
	})
}

func TestDocMarkers(t *testing.T) {
	runCases(t, MustCompile(Options{}), DocMarkers, []filterCase{
		{"param", "@param foo description of foo", "foo: description of foo"},
		{"return", "@return something", "returns: something"},
		{"author", "@author Ann", "author: Ann"},
		{"todo", "@todo fix it", "TODO fix it"},
		{"case sensitive", "@Param foo", "@Param foo"},
		{"all together", "  @param x the x\n  @return y", "  x: the x\n  returns: y"},
	})
}

func TestCommentIndent(t *testing.T) {
	runCases(t, MustCompile(Options{}), CommentIndent, []filterCase{
		{
			name: "indented block",
			in:   "    \"\"\"Summary\n\n    Details.\n    \"\"\"\n",
			want: "    \"\"\"Summary\n\n       Details.\"\"\"\n",
		},
		{
			name: "column zero block",
			in:   "\"\"\"Summary\n    detail\n    \"\"\"",
			want: "\"\"\"Summary\ndetail\"\"\"",
		},
		{
			name: "deeper nesting flattened",
			in:   "  \"\"\"Doc\n          a\n      b\"\"\"",
			want: "  \"\"\"Doc\n     a\n     b\"\"\"",
		},
		{
			name: "tab indent",
			in:   "\t\"\"\"Doc\n\t\tmore\n\t\"\"\"",
			want: "\t\"\"\"Doc\n\t   more\"\"\"",
		},
		{
			name: "single line untouched",
			in:   "    \"\"\"Doc\"\"\"",
			want: "    \"\"\"Doc\"\"\"",
		},
		{
			name: "not at line start",
			in:   "x = \"\"\"a\n  b\"\"\"",
			want: "x = \"\"\"a\n  b\"\"\"",
		},
	})
}

func TestLinefeedCleanup(t *testing.T) {
	runCases(t, MustCompile(Options{}), LinefeedCleanup, []filterCase{
		{"adjacent", "\"a\"\n\"b\"", "\"a\"\"b\""},
		{"indented second line", "\"a\"\n  \"b\"", "\"a\"\n  \"b\""},
		{"no literals", "x\ny", "x\ny"},
		{"block closer then literal", "\"\"\"Module doc\nmore\"\"\"\n\"Other\"", "\"\"\"Module doc\nmore\"\"\"\n\"Other\""},
		{"literal then block opener", "\"a\"\n\"\"\"Doc", "\"a\"\n\"\"\"Doc"},
	})
}

func TestBlankLines(t *testing.T) {
	runCases(t, MustCompile(Options{}), BlankLines, []filterCase{
		{
			name: "after opener",
			in:   "    \"\"\"Summary\n\n       Details.\"\"\"\n\nx = 1\n",
			want: "    \"\"\"Summary\n       Details.\"\"\"\n\nx = 1\n",
		},
		{
			name: "whitespace only line",
			in:   "\"\"\"S\n   \nx\"\"\"",
			want: "\"\"\"S\nx\"\"\"",
		},
		{
			name: "only one line removed",
			in:   "\"\"\"S\n\n\nx\"\"\"",
			want: "\"\"\"S\n\nx\"\"\"",
		},
		{
			name: "blank line after closer kept",
			in:   "x = \"\"\"a\n  b\n\"\"\"\n\ny = 1\n",
			want: "x = \"\"\"a\n  b\n\"\"\"\n\ny = 1\n",
		},
		{
			name: "unclosed opener untouched",
			in:   "\"\"\"S\n\nx",
			want: "\"\"\"S\n\nx",
		},
		{
			name: "second block after closed one",
			in:   "\"\"\"A\nb\"\"\"\n\n  \"\"\"C\n\n     d\"\"\"\n",
			want: "\"\"\"A\nb\"\"\"\n\n  \"\"\"C\n     d\"\"\"\n",
		},
		{
			name: "other blank lines kept",
			in:   "a = 1\n\nb = 2\n",
			want: "a = 1\n\nb = 2\n",
		},
	})
}

func TestCompileRejectsNegativeTimeout(t *testing.T) {
	if _, err := Compile(Options{MatchTimeout: -time.Second}); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}

func TestCompileKeepsOptions(t *testing.T) {
	opts := Options{CollapseIdentifiers: true, MatchTimeout: time.Second}
	p := MustCompile(opts)
	if p.Options() != opts {
		t.Fatalf("options not kept: %+v", p.Options())
	}
	got, err := IdentifierCasing(p, "a_b_c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "aBC" {
		t.Fatalf("want %q got %q", "aBC", got)
	}
}
