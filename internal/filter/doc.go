// Package filter implements the text-to-text style filters of the restyle pipeline.
//
// # Model
//
// Every filter is a pure function
//
//	func(p *Patterns, src string) (string, error)
//
// that rewrites the whole buffer using character patterns only. Filters never
// tokenize or parse their input: identifiers inside literals and comments are
// rewritten just like code. Damage to quoted literals is undone later by the
// internal/literal package; damage to comments is not.
//
// # Patterns
//
// All regular expressions live in a Patterns value built once by Compile and
// passed into every filter explicitly. Patterns is immutable after Compile and
// safe for concurrent use, so one value serves every file of a run.
//
// Expressions are compiled with github.com/dlclark/regexp2, which supports the
// lookahead and lookbehind assertions bracket padding depends on. A non-zero
// Options.MatchTimeout bounds each match; a timed out match is reported as an
// error wrapping ErrMatch. With no timeout the filters are total.
//
// # Filters
//
//   - IdentifierCasing: a_b becomes aB (one non-overlapping pass).
//   - ArgumentSpacing: name = value becomes name=value inside parentheses.
//   - BracketPadding: pads (), [] and {} from the inside.
//   - TripleQuotes, CollapseDocstrings: unify and shorten docstring quotes.
//   - DocMarkers: @param/@return/@author/@todo rewrites.
//   - CommentIndent: re-indents multi-line """ blocks.
//   - LinefeedCleanup: joins adjacent single-line literals split by a line break.
//   - BlankLines: drops the blank line right after a """ opener.
package filter
