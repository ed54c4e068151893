package filter

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// commentStep is added to a non-empty opening indent for continuation lines.
const commentStep = "   "

// CommentIndent re-indents """ blocks that open on a line of their own.
// Continuation lines get the opening indent plus three spaces (or no indent at
// all when the opener is at column zero); deeper nesting inside the block is
// flattened. A closing """ alone on its last line is joined to the line above.
func CommentIndent(p *Patterns, src string) (string, error) {
	return replaceFunc(p.comment, src, func(m regexp2.Match) string {
		indent := m.GroupByNumber(1).String()
		body := m.GroupByNumber(2).String()
		return indent + `"""` + reindentBody(body, indent) + `"""`
	})
}

func reindentBody(body, indent string) string {
	lines := strings.Split(body, "\n")
	if len(lines) == 1 {
		return body
	}
	pad := indent
	if indent != "" {
		pad += commentStep
	}
	for i := 1; i < len(lines); i++ {
		text := strings.TrimLeft(lines[i], " \t")
		if text == "" {
			// blank lines stay blank; no trailing whitespace
			lines[i] = ""
			continue
		}
		lines[i] = pad + text
	}
	// closing marker on its own line: merge onto the previous one
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// BlankLines deletes the blank line directly after a line that opens a """
// block at line start. Only closed blocks count; a blank line after a closing
// marker is kept. It is the only filter that can shorten the text by whole
// lines.
func BlankLines(p *Patterns, src string) (string, error) {
	return replaceFunc(p.docBlock, src, func(m regexp2.Match) string {
		opener := m.GroupByNumber(1).String()
		if opener == "" {
			return m.String()
		}
		return opener + m.GroupByNumber(2).String()
	})
}
