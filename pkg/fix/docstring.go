package fix

import (
	"strings"

	"github.com/pyfold/pyfold/pkg/parse"
)

// fixDocstring splits an over-long string-literal statement across lines and
// reports whether it changed anything.
//
// Triple-quoted literals simply gain line breaks at word boundaries, since
// they may span lines natively. Single-quoted literals are closed at the end
// of every line and reopened on the next, with the whole sequence wrapped in
// parentheses so that adjacent-literal concatenation joins the pieces back
// together. Continuation lines are indented four columns past the literal's
// starting column; for single-quoted literals the reopening quote is part of
// that indent.
func fixDocstring(leaf *parse.Leaf) bool {
	quoteStart, quoteEnd := parse.Quotes(leaf.Text)
	if quoteStart == "" {
		return false
	}
	maxLength := MaxWidth - leaf.Col
	triple := strings.HasSuffix(quoteStart, `"""`) || strings.HasSuffix(quoteStart, "'''")
	indent := strings.Repeat(" ", 4+leaf.Col)
	value := leaf.Text
	if !triple {
		indent += quoteStart
		maxLength -= len(quoteEnd)
		value = "(" + value + ")"
	}
	lines := wrapText(value, maxLength, "", indent)
	if len(lines) == 0 {
		return false
	}
	if !triple {
		for i := range lines[:len(lines)-1] {
			lines[i] += quoteEnd
		}
	}
	first := parse.NewLeaf(parse.String, lines[0])
	// The original leaf's prefix holds the line's indentation; keep it.
	first.Prefix = leaf.Prefix
	repl := []parse.Node{first}
	for _, line := range lines[1:] {
		repl = append(repl,
			parse.NewLeaf(parse.Newline, "\n"),
			parse.NewLeaf(parse.String, line))
	}
	if len(repl) == 1 && lines[0] == leaf.Text {
		return false
	}
	parse.Replace(leaf, repl...)
	for _, n := range repl {
		parse.MarkChanged(n)
	}
	return true
}
