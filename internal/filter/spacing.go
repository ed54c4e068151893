package filter

import (
	"github.com/dlclark/regexp2"
)

// ArgumentSpacing collapses "name = " to "name=" inside parenthesised spans.
// A span runs from an opening parenthesis to the nearest closing one, so only
// the innermost-first part of nested calls is normalised.
func ArgumentSpacing(p *Patterns, src string) (string, error) {
	var inner error
	out, err := replaceFunc(p.callArgs, src, func(m regexp2.Match) string {
		span := m.String()
		if inner != nil {
			return span
		}
		fixed, err := replace(p.keyword, span, "${1}=")
		if err != nil {
			inner = err
			return span
		}
		return fixed
	})
	if err != nil {
		return src, err
	}
	if inner != nil {
		return src, inner
	}
	return out, nil
}

// BracketPadding inserts a space just inside every bracket that is not already
// followed (opening) or preceded (closing) by whitespace or its partner.
// Parentheses are padded first, then square brackets, then braces.
func BracketPadding(p *Patterns, src string) (string, error) {
	var err error
	for _, b := range p.brackets {
		if src, err = replace(b.open, src, b.openRepl); err != nil {
			return src, err
		}
		if src, err = replace(b.close, src, b.closeRepl); err != nil {
			return src, err
		}
	}
	return src, nil
}
