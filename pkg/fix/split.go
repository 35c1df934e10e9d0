package fix

import (
	"strings"

	"github.com/pyfold/pyfold/pkg/parse"
)

// fixLeaves splits the over-long construct target by inserting a line break
// before the pivot, the last leaf that still starts within MaxWidth, and
// reports whether it changed anything.
//
// Bracket depth is counted over the leaves walked up to and including the
// pivot. A break at depth > 0 falls inside an existing bracket pair and is
// legal as-is; a break at depth <= 0 needs parentheses synthesized around the
// construct, which is parenthesize's job.
func fixLeaves(target parse.Node) bool {
	var pivot *parse.Leaf
	depth := 0
	for _, leaf := range parse.Leaves(target) {
		if leaf.Col >= MaxWidth {
			break
		}
		pivot = leaf
		if leaf.Kind.Opening() {
			depth++
		} else if leaf.Kind.Closing() {
			depth--
		}
	}
	if pivot == nil || pivot == parse.FirstLeaf(target) || parse.Changed(pivot) {
		// No usable break point: either the construct already starts past the
		// limit, or no token precedes the overflow so the line would stay
		// over-length anyway, or an earlier fix this pass made the columns
		// here stale. Leave the line as it is.
		return false
	}
	pivot.Prefix = strings.TrimSpace(pivot.Prefix)
	dotBreak := false
	if prev, ok := parse.PrevSibling(pivot).(*parse.Leaf); ok && prev.Kind == parse.Dot {
		dotBreak = true
	}
	parse.Replace(pivot,
		parse.NewLeaf(parse.Newline, "\n"),
		parse.NewLeaf(parse.Indent, indentIncrement+parse.Indentation(target)),
		pivot)
	parse.MarkChanged(pivot)
	if depth <= 0 {
		parenthesize(target, dotBreak)
	}
	return true
}
