package filter

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// IdentifierCasing merges every <alnum>_<alnum> window into two characters,
// upper-casing the one after the underscore. Matches do not overlap, so one pass
// turns a_b_c into aB_c; with Options.CollapseIdentifiers the pass repeats until
// the text stops changing.
func IdentifierCasing(p *Patterns, src string) (string, error) {
	for {
		out, err := replaceFunc(p.identifier, src, camelPair)
		if err != nil {
			return src, err
		}
		if !p.opts.CollapseIdentifiers || out == src {
			return out, nil
		}
		src = out
	}
}

func camelPair(m regexp2.Match) string {
	return m.GroupByNumber(1).String() + strings.ToUpper(m.GroupByNumber(2).String())
}
