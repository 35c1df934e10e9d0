package fix

import (
	"strings"

	"github.com/pyfold/pyfold/pkg/parse"
)

// fixPrefix reflows the comments embedded in leaf's prefix so that every
// comment line fits within MaxWidth, and reports whether the prefix changed.
//
// A whole comment region is treated as one unit: consecutive comment lines
// are flattened into a single run of words and refilled. An inline comment
// (one sharing the line with code) moves to its own line above the code and
// aligns with the code's column; standalone comments keep their original
// indentation.
func fixPrefix(leaf *parse.Leaf) bool {
	before, comments, after := parse.SplitComments(leaf.Prefix)
	if comments == "" {
		return false
	}
	var words []string
	for _, line := range strings.Split(comments, "\n") {
		words = append(words, strings.TrimLeft(strings.Replace(line, "#", "", 1), " \t"))
	}
	flat := strings.Join(words, " ")

	isInline := !strings.Contains(leaf.Prefix, "\n")
	indentLevel := strings.IndexByte(comments, '#')
	if isInline {
		if prev := parse.PrevSibling(leaf); prev != nil {
			indentLevel = parse.Col(prev)
		}
	}
	indent := strings.Repeat(" ", indentLevel) + "# "
	lines := wrapText(flat, MaxWidth, indent, indent)
	if len(lines) == 0 {
		return false
	}
	if isInline {
		// The comment was attached to code; push it onto its own line.
		lines[0] = "\n" + lines[0]
	} else {
		after = "\n" + after
	}
	newPrefix := before + strings.Join(lines, "\n") + after
	if newPrefix == leaf.Prefix {
		return false
	}
	leaf.Prefix = newPrefix
	parse.MarkChanged(leaf)
	return true
}
