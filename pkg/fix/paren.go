package fix

import (
	"strings"

	"github.com/pyfold/pyfold/pkg/parse"
)

// parenthesize wraps the freshly split construct n in parentheses so that
// the line break inside it is legal. The wrapping point depends on the
// statement shape: return-like statements and import-froms wrap their
// argument part, assignments wrap the right-hand side, expressions wrap
// whole. Every rule skips constructs that already start with a parenthesis,
// so re-running it is harmless.
func parenthesize(n parse.Node, dotBreak bool) {
	b, ok := n.(*parse.Branch)
	if !ok {
		return
	}
	switch b.Kind {
	case parse.ReturnKind:
		wrapFrom(b, 1, "")
	case parse.AssignKind:
		if value, ok := childAt(b, 2).(*parse.Branch); ok {
			wrapFrom(value, 0, " ")
		}
	case parse.ImportFromKind:
		ch := parse.Children(b)
		if len(ch) == 0 {
			return
		}
		if names, ok := ch[len(ch)-1].(*parse.Branch); ok {
			wrapFrom(names, 0, " ")
		}
	case parse.TestKind:
		wrapTest(b)
	case parse.CallKind:
		// Only a break at a dot continuation needs grouping; chains broken
		// inside a call's own brackets are already covered.
		if dotBreak {
			wrapCall(b)
		}
	case parse.ParamsKind:
		// Already parenthesized by the grammar.
	default:
		// No grouping rule for this shape; leave the bare break in place.
	}
}

// wrapFrom parenthesizes b's children from index i to the end. The opening
// parenthesis takes lparenPrefix as its prefix and the wrapped part loses its
// leading whitespace.
func wrapFrom(b *parse.Branch, i int, lparenPrefix string) {
	ch := parse.Children(b)
	if len(ch) <= i || isLParen(ch[i]) {
		return
	}
	parse.SetPrefix(ch[i], strings.TrimSpace(parse.Prefix(ch[i])))
	lp := parse.NewLeaf(parse.LParen, "(")
	lp.Prefix = lparenPrefix
	parse.InsertChild(b, i, lp)
	parse.AppendChild(b, parse.NewLeaf(parse.RParen, ")"))
	parse.MarkChanged(b)
}

// wrapTest parenthesizes the whole of b. When b starts a fresh line its
// leading whitespace, indentation included, migrates onto the opening
// parenthesis so the wrapped form stays in the same block.
func wrapTest(b *parse.Branch) {
	ch := parse.Children(b)
	if len(ch) == 0 || isLParen(ch[0]) {
		return
	}
	lp := parse.NewLeaf(parse.LParen, "(")
	if prefix := parse.Prefix(ch[0]); strings.Contains(prefix, "\n") {
		lp.Prefix = prefix
		parse.SetPrefix(ch[0], "")
	} else {
		parse.SetPrefix(ch[0], strings.TrimSpace(prefix))
	}
	parse.InsertChild(b, 0, lp)
	parse.AppendChild(b, parse.NewLeaf(parse.RParen, ")"))
	parse.MarkChanged(b)
}

// wrapCall parenthesizes a whole attribute chain, keeping the chain's
// leading whitespace on the opening parenthesis.
func wrapCall(b *parse.Branch) {
	ch := parse.Children(b)
	if len(ch) == 0 || isLParen(ch[0]) {
		return
	}
	lp := parse.NewLeaf(parse.LParen, "(")
	lp.Prefix = parse.Prefix(ch[0])
	parse.SetPrefix(ch[0], "")
	parse.InsertChild(b, 0, lp)
	parse.AppendChild(b, parse.NewLeaf(parse.RParen, ")"))
	parse.MarkChanged(b)
}

func childAt(b *parse.Branch, i int) parse.Node {
	ch := parse.Children(b)
	if i >= len(ch) {
		return nil
	}
	return ch[i]
}

func isLParen(n parse.Node) bool {
	l, ok := n.(*parse.Leaf)
	return ok && l.Kind == parse.LParen
}
