package filter

import "strings"

// TripleQuotes rewrites apostrophe triple quotes as double-quote triple quotes.
func TripleQuotes(_ *Patterns, src string) (string, error) {
	return strings.ReplaceAll(src, `'''`, `"""`), nil
}

// CollapseDocstrings turns single-line """text""" literals without embedded
// double quotes into "text". Multi-line blocks stay triple quoted.
func CollapseDocstrings(p *Patterns, src string) (string, error) {
	return replace(p.docstring, src, `"${1}"`)
}

// LinefeedCleanup removes the line break between two single-line double-quoted
// literals that sit on adjacent lines with nothing else between them.
func LinefeedCleanup(p *Patterns, src string) (string, error) {
	return replace(p.linefeed, src, "${1}${2}")
}
