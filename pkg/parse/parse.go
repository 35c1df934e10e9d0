// Package parse turns Python source text into a lossless statement-level
// syntax tree.
//
// The tree is a hybrid: leaves carry every token, comment and whitespace run
// of the original text, so rendering the tree reproduces the input exactly,
// while branches group tokens into just enough structure for the rewrap
// engine to reason about: statement terminators sit next to the construct
// they terminate, and the handful of statement shapes with parenthesization
// rules get dedicated kinds.
package parse

// ParseFile parses src into a FileKind branch. The returned error, if not
// nil, contains one or more [Error] values; the tree is still complete and
// renders back to the input even in the presence of errors.
func ParseFile(src Source) (*Branch, error) {
	leaves, err := lex(src)
	file := NewBranch(FileKind)
	var toks []*Leaf
	for _, leaf := range leaves {
		switch leaf.Kind {
		case Newline:
			AppendChild(file, buildStatement(toks, leaf))
			toks = nil
		case EndMarker:
			AppendChild(file, leaf)
		default:
			toks = append(toks, leaf)
		}
	}
	return file, err
}

// Statements that follow the print/return shape: a keyword followed by an
// argument list that starts at child 1.
var returnLike = map[string]bool{
	"return": true, "print": true, "yield": true,
}

// Keywords that open a block header ending in a colon.
var headerKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "while": true, "for": true,
	"with": true, "try": true, "except": true, "finally": true,
	"def": true, "class": true,
}

func buildStatement(toks []*Leaf, nl *Leaf) *Branch {
	stmt := NewBranch(StatementKind)
	if len(toks) > 0 {
		if toks[0].Kind == Name && headerKeywords[toks[0].Text] {
			shapeHeader(stmt, toks)
		} else {
			shapeSimple(stmt, toks)
		}
	}
	AppendChild(stmt, nl)
	return stmt
}

// shapeSimple shapes a statement with no block header.
func shapeSimple(stmt *Branch, toks []*Leaf) {
	switch {
	case len(toks) == 1 && toks[0].Kind == String:
		// A lone string literal, typically a docstring. Kept as a direct
		// leaf so the docstring rewrapper can find it next to the
		// terminator.
		AppendChild(stmt, toks[0])
	case toks[0].Kind == Name && returnLike[toks[0].Text]:
		AppendChild(stmt, NewBranch(ReturnKind, nodes(toks)...))
	case toks[0].Kind == Name && toks[0].Text == "from":
		if i := indexAtDepth0(toks, func(t *Leaf) bool {
			return t.Kind == Name && t.Text == "import"
		}); i > 0 && i < len(toks)-1 {
			children := nodes(toks[:i+1])
			children = append(children, NewBranch(ImportNamesKind, nodes(toks[i+1:])...))
			AppendChild(stmt, NewBranch(ImportFromKind, children...))
		} else {
			AppendChild(stmt, classifyExpr(toks))
		}
	default:
		if i := indexAtDepth0(toks, func(t *Leaf) bool { return t.Kind == Eq }); i > 0 && i < len(toks)-1 {
			AppendChild(stmt, NewBranch(AssignKind,
				NewBranch(TargetKind, nodes(toks[:i])...),
				toks[i],
				NewBranch(ValueKind, nodes(toks[i+1:])...)))
		} else {
			AppendChild(stmt, classifyExpr(toks))
		}
	}
}

// shapeHeader shapes a block header so that the colon terminator ends up a
// direct sibling of the construct that precedes it.
func shapeHeader(stmt *Branch, toks []*Leaf) {
	ci := indexAtDepth0(toks, func(t *Leaf) bool { return t.Kind == Colon })
	if ci < 0 {
		// Malformed header; keep it in one flat group.
		AppendChild(stmt, classifyExpr(toks))
		return
	}
	kw, head, colon, body := toks[0], toks[1:ci], toks[ci], toks[ci+1:]
	AppendChild(stmt, kw)

	switch kw.Text {
	case "def", "class":
		rest := head
		if len(rest) > 0 && rest[0].Kind == Name {
			AppendChild(stmt, rest[0])
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0].Kind == LParen {
			j := matchingCloser(rest)
			AppendChild(stmt, NewBranch(ParamsKind, nodes(rest[:j+1])...))
			rest = rest[j+1:]
		}
		for _, t := range rest {
			AppendChild(stmt, t)
		}
	case "for":
		if i := indexAtDepth0(head, func(t *Leaf) bool {
			return t.Kind == Name && t.Text == "in"
		}); i >= 0 && i < len(head)-1 {
			for _, t := range head[:i+1] {
				AppendChild(stmt, t)
			}
			AppendChild(stmt, classifyExpr(head[i+1:]))
		} else if len(head) > 0 {
			AppendChild(stmt, classifyExpr(head))
		}
	case "with", "except":
		if i := indexAtDepth0(head, func(t *Leaf) bool {
			return t.Kind == Name && t.Text == "as"
		}); i > 0 && i < len(head)-1 {
			AppendChild(stmt, classifyExpr(head[:i]))
			AppendChild(stmt, head[i])
			AppendChild(stmt, classifyExpr(head[i+1:]))
		} else if len(head) > 0 {
			AppendChild(stmt, classifyExpr(head))
		}
	default:
		// if, elif, while; also else/try/finally, whose head is empty.
		if len(head) > 0 {
			AppendChild(stmt, classifyExpr(head))
		}
	}

	AppendChild(stmt, colon)
	if len(body) > 0 {
		// One-liner body after the colon.
		AppendChild(stmt, classifyExpr(body))
	}
}

// Depth-0 operators that make an expression a test in the sense of the
// parenthesizer: boolean operators, comparisons and additive arithmetic.
// Multiplicative operators deliberately do not count; they have no
// parenthesization rule.
var testOps = map[string]bool{
	"<": true, ">": true, "==": true, "!=": true,
	"<=": true, ">=": true, "<>": true, "+": true, "-": true,
}

var testNames = map[string]bool{
	"and": true, "or": true, "not": true, "in": true, "is": true,
}

// classifyExpr groups toks into a branch tagged with the expression shape
// the parenthesizer dispatches on.
func classifyExpr(toks []*Leaf) *Branch {
	depth := 0
	hasTest, hasDot := false, false
	for i, t := range toks {
		switch {
		case t.Kind.Opening():
			depth++
		case t.Kind.Closing():
			depth--
		case depth > 0:
		case t.Kind == Name && testNames[t.Text]:
			hasTest = true
		case t.Kind == Dot:
			hasDot = true
		case t.Kind == Op && testOps[t.Text] && i > 0 && isOperand(toks[i-1]):
			// Only binary uses count; a leading sign is not an arith_expr.
			hasTest = true
		}
	}
	kind := OtherKind
	switch {
	case hasTest:
		kind = TestKind
	case hasDot, len(toks) >= 2 && toks[0].Kind == Name && toks[1].Kind == LParen:
		kind = CallKind
	}
	return NewBranch(kind, nodes(toks)...)
}

func isOperand(t *Leaf) bool {
	return t.Kind == Name || t.Kind == Number || t.Kind == String || t.Kind.Closing()
}

// indexAtDepth0 returns the index of the first token at bracket depth 0
// satisfying pred, or -1.
func indexAtDepth0(toks []*Leaf, pred func(*Leaf) bool) int {
	depth := 0
	for i, t := range toks {
		switch {
		case t.Kind.Opening():
			depth++
		case t.Kind.Closing():
			depth--
		case depth == 0 && pred(t):
			return i
		}
	}
	return -1
}

// matchingCloser returns the index of the token closing the bracket opened
// at index 0, or the last index if the brackets are unbalanced.
func matchingCloser(toks []*Leaf) int {
	depth := 0
	for i, t := range toks {
		if t.Kind.Opening() {
			depth++
		} else if t.Kind.Closing() {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(toks) - 1
}

func nodes(toks []*Leaf) []Node {
	ns := make([]Node, len(toks))
	for i, t := range toks {
		ns[i] = t
	}
	return ns
}
