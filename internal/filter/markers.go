package filter

import "strings"

// Replace is a fixed, case-sensitive rewrite.
type Replace struct {
	From, To string
}

// Markers are applied after the @param rewrite, in this order.
var Markers = []Replace{
	{"@return", "returns:"},
	{"@author", "author:"},
	{"@todo", "TODO"},
}

// DocMarkers rewrites documentation markers: "@param name" becomes "name:",
// then each entry of Markers is replaced. Comment boundaries are ignored.
func DocMarkers(p *Patterns, src string) (string, error) {
	out, err := replace(p.param, src, "${1}:")
	if err != nil {
		return src, err
	}
	for _, r := range Markers {
		out = strings.ReplaceAll(out, r.From, r.To)
	}
	return out, nil
}
