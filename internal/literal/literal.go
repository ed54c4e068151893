// Package literal reconciles a filtered text with its original by putting back
// the contents of quoted literals the pattern filters may have damaged.
//
// Restoration works line by line. Both texts must have the same number of lines
// and, on every line, the same number of spans of each quote kind; anything else
// means the spans can no longer be paired and is reported as a *MismatchError.
package literal

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Kind selects the quote character delimiting a span.
type Kind uint8

const (
	// Double is a "..." span.
	Double Kind = iota + 1
	// Single is a '...' span.
	Single
)

// Kinds lists the span kinds in restoration order.
var Kinds = []Kind{Double, Single}

// Quote returns the delimiter character.
func (k Kind) Quote() string {
	switch k {
	case Double:
		return `"`
	case Single:
		return `'`
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case Double:
		return "double-quoted"
	case Single:
		return "single-quoted"
	}
	return "unknown"
}

// Restorer holds the compiled span patterns. It is immutable and safe for
// concurrent use.
type Restorer struct {
	spans map[Kind]*regexp2.Regexp
}

// NewRestorer compiles the span patterns. A positive timeout bounds each match.
func NewRestorer(timeout time.Duration) (*Restorer, error) {
	r := &Restorer{spans: make(map[Kind]*regexp2.Regexp, len(Kinds))}
	for _, k := range Kinds {
		q := k.Quote()
		re, err := regexp2.Compile(q+`[^`+q+`\n]*`+q, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("literal: compile %s pattern: %w", k, err)
		}
		if timeout > 0 {
			re.MatchTimeout = timeout
		}
		r.spans[k] = re
	}
	return r, nil
}

// Spans returns the literal spans of the given kind on line, left to right,
// delimiters included. Spans never overlap and never cross a line break.
func (r *Restorer) Spans(line string, kind Kind) ([]string, error) {
	re, ok := r.spans[kind]
	if !ok {
		return nil, fmt.Errorf("literal: unknown span kind %d", kind)
	}
	var out []string
	m, err := re.FindStringMatch(line)
	for m != nil && err == nil {
		out = append(out, m.String())
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("literal: %s spans: %w", kind, err)
	}
	return out, nil
}

// splitLines splits on line breaks; the empty tail left by a final break is
// not a line.
func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
