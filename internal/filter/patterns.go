package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// ErrMatch is wrapped by every error a filter returns. The only runtime failure
// of the regexp engine is an exceeded match timeout.
var ErrMatch = errors.New("pattern match aborted")

// Options tunes how the pattern set is compiled.
type Options struct {
	// CollapseIdentifiers repeats the casing pass until nothing changes, so
	// a_b_c becomes aBC instead of aB_c.
	CollapseIdentifiers bool
	// MatchTimeout bounds a single match. Zero disables the limit.
	MatchTimeout time.Duration
}

type bracketPair struct {
	open, close         *regexp2.Regexp
	openRepl, closeRepl string
}

// Patterns is the immutable set of compiled expressions shared by all filters.
type Patterns struct {
	opts Options

	identifier *regexp2.Regexp
	callArgs   *regexp2.Regexp
	keyword    *regexp2.Regexp
	brackets   []bracketPair
	docstring  *regexp2.Regexp
	param      *regexp2.Regexp
	comment    *regexp2.Regexp
	linefeed   *regexp2.Regexp
	docBlock   *regexp2.Regexp
}

// bracket kinds in the order they are padded
var bracketKinds = []struct{ open, close byte }{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
}

// Compile builds the pattern set.
func Compile(opts Options) (*Patterns, error) {
	if opts.MatchTimeout < 0 {
		return nil, fmt.Errorf("filter: negative match timeout %s", opts.MatchTimeout)
	}
	p := &Patterns{opts: opts}

	exprs := []struct {
		dst  **regexp2.Regexp
		expr string
		mode regexp2.RegexOptions
	}{
		{&p.identifier, `([A-Za-z0-9])_([A-Za-z0-9])`, regexp2.None},
		{&p.callArgs, `\([^)]*\)`, regexp2.None},
		{&p.keyword, `([A-Za-z0-9_]+) = `, regexp2.None},
		{&p.docstring, `"""([^"\n]*)"""`, regexp2.None},
		{&p.param, `@param ([A-Za-z0-9_]+)`, regexp2.None},
		{&p.comment, `^([ \t]*)"""([^"]*)"""`, regexp2.Multiline},
		// neither span may touch another quote, so """ never looks like ""
		{&p.linefeed, `(?<!")("[^"\n]*")\n("[^"\n]*")(?!")`, regexp2.None},
		// first branch: a block opening at line start whose second line is
		// blank; second branch consumes any other block whole, so a closing
		// marker is never taken for an opener
		{&p.docBlock, `^([ \t]*"""[^"\n]*\n)[ \t]*\n([^"]*""")|"""[^"]*"""`, regexp2.Multiline},
	}
	for _, e := range exprs {
		re, err := p.compile(e.expr, e.mode)
		if err != nil {
			return nil, err
		}
		*e.dst = re
	}

	for _, kind := range bracketKinds {
		// every bracket is escaped, including ] and } which .NET syntax leaves bare
		o, c := `\`+string(kind.open), `\`+string(kind.close)
		open, err := p.compile(o+`(?=[^\s`+c+`])`, regexp2.None)
		if err != nil {
			return nil, err
		}
		closing, err := p.compile(`(?<=[^\s`+o+`])`+c, regexp2.None)
		if err != nil {
			return nil, err
		}
		p.brackets = append(p.brackets, bracketPair{
			open:      open,
			close:     closing,
			openRepl:  string(kind.open) + " ",
			closeRepl: " " + string(kind.close),
		})
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(opts Options) *Patterns {
	p, err := Compile(opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Options returns the options the set was compiled with.
func (p *Patterns) Options() Options {
	return p.opts
}

func (p *Patterns) compile(expr string, mode regexp2.RegexOptions) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, mode)
	if err != nil {
		return nil, fmt.Errorf("filter: compile %q: %w", expr, err)
	}
	// regexp2 treats its default as "no limit"; zero would time out at once
	if p.opts.MatchTimeout > 0 {
		re.MatchTimeout = p.opts.MatchTimeout
	}
	return re, nil
}

func replace(re *regexp2.Regexp, src, repl string) (string, error) {
	out, err := re.Replace(src, repl, -1, -1)
	if err != nil {
		return src, matchError(re, err)
	}
	return out, nil
}

func replaceFunc(re *regexp2.Regexp, src string, eval regexp2.MatchEvaluator) (string, error) {
	out, err := re.ReplaceFunc(src, eval, -1, -1)
	if err != nil {
		return src, matchError(re, err)
	}
	return out, nil
}

func matchError(re *regexp2.Regexp, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMatch, re.String(), err)
}
