package parse

import "strings"

// Node is an element of the syntax tree. It is implemented by [Leaf] and
// [Branch]. The interface contains an unexported method so that only types
// local to this package can satisfy it.
type Node interface {
	n() *node
}

// node is the part common to Leaf and Branch: tree links and the changed
// flag. It is embedded in both.
type node struct {
	parent  Node
	prev    Node
	next    Node
	changed bool
}

func (n *node) n() *node { return n }

// TokenKind identifies the lexical class of a Leaf.
type TokenKind int

// Possible TokenKind values.
const (
	Op TokenKind = iota // catch-all for operators and punctuation
	Name
	Number
	String
	Newline // logical line terminator; may have empty text at EOF
	Colon   // ':' at bracket depth 0 only
	Dot
	Eq // a lone '=' at any depth
	Indent
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	EndMarker // zero-width leaf carrying trailing whitespace at EOF
)

func (k TokenKind) String() string {
	switch k {
	case Op:
		return "Op"
	case Name:
		return "Name"
	case Number:
		return "Number"
	case String:
		return "String"
	case Newline:
		return "Newline"
	case Colon:
		return "Colon"
	case Dot:
		return "Dot"
	case Eq:
		return "Eq"
	case Indent:
		return "Indent"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case EndMarker:
		return "EndMarker"
	default:
		return "BadToken"
	}
}

// Opening reports whether the token opens a bracket pair.
func (k TokenKind) Opening() bool {
	return k == LParen || k == LBracket || k == LBrace
}

// Closing reports whether the token closes a bracket pair.
func (k TokenKind) Closing() bool {
	return k == RParen || k == RBracket || k == RBrace
}

// Kind tags a Branch with the statement or expression shape it covers. The
// set is closed; the rewrap engine dispatches on it when deciding how to
// parenthesize.
type Kind int

// Possible Kind values.
const (
	FileKind      Kind = iota
	StatementKind      // one logical line, terminator leaves included
	ReturnKind         // print/return/yield statement: keyword then arguments
	AssignKind         // target '=' value
	TargetKind         // left-hand side of an assignment
	ValueKind          // right-hand side of an assignment
	CallKind           // attribute/subscript/call chain
	ImportFromKind     // from module import names
	ImportNamesKind    // the trailing name list of an import-from
	TestKind           // boolean, comparison or additive expression
	ParamsKind         // parenthesized parameter or argument list of def/class
	OtherKind          // anything else; no parenthesization rule applies
)

func (k Kind) String() string {
	switch k {
	case FileKind:
		return "File"
	case StatementKind:
		return "Statement"
	case ReturnKind:
		return "Return"
	case AssignKind:
		return "Assign"
	case TargetKind:
		return "Target"
	case ValueKind:
		return "Value"
	case CallKind:
		return "Call"
	case ImportFromKind:
		return "ImportFrom"
	case ImportNamesKind:
		return "ImportNames"
	case TestKind:
		return "Test"
	case ParamsKind:
		return "Params"
	case OtherKind:
		return "Other"
	default:
		return "BadKind"
	}
}

// Leaf is a token node. It carries the literal token text, the
// whitespace/comment run preceding the token, and the display column at which
// the text starts.
type Leaf struct {
	node
	Kind   TokenKind
	Text   string
	Prefix string
	// Col is the 0-based display column of the first character of Text in
	// the rendered source. It is derived during parsing; mutations leave it
	// stale until the rendered text is parsed again.
	Col int
}

// NewLeaf makes a detached Leaf.
func NewLeaf(kind TokenKind, text string) *Leaf {
	return &Leaf{Kind: kind, Text: text}
}

// Branch is a composite node owning an ordered sequence of children that
// fully cover its rendered text.
type Branch struct {
	node
	Kind     Kind
	children []Node
}

// NewBranch makes a Branch owning the given children.
func NewBranch(kind Kind, children ...Node) *Branch {
	b := &Branch{Kind: kind}
	b.children = children
	relink(b)
	return b
}

// Parent returns the parent of n, or nil for the root.
func Parent(n Node) Node { return n.n().parent }

// PrevSibling returns the sibling before n under the same parent, or nil.
func PrevSibling(n Node) Node { return n.n().prev }

// NextSibling returns the sibling after n under the same parent, or nil.
func NextSibling(n Node) Node { return n.n().next }

// Children returns the children of n. It is nil for a Leaf.
func Children(n Node) []Node {
	if b, ok := n.(*Branch); ok {
		return b.children
	}
	return nil
}

// FirstLeaf returns the first leaf of the subtree rooted at n, or nil if the
// subtree contains no leaf.
func FirstLeaf(n Node) *Leaf {
	switch n := n.(type) {
	case *Leaf:
		return n
	case *Branch:
		for _, ch := range n.children {
			if l := FirstLeaf(ch); l != nil {
				return l
			}
		}
	}
	return nil
}

// Leaves returns all leaves of the subtree rooted at n, in rendering order.
func Leaves(n Node) []*Leaf {
	var leaves []*Leaf
	collectLeaves(n, &leaves)
	return leaves
}

func collectLeaves(n Node, leaves *[]*Leaf) {
	switch n := n.(type) {
	case *Leaf:
		*leaves = append(*leaves, n)
	case *Branch:
		for _, ch := range n.children {
			collectLeaves(ch, leaves)
		}
	}
}

// Prefix returns the prefix of n: its own for a Leaf, the first leaf's for a
// Branch. An empty Branch has an empty prefix.
func Prefix(n Node) string {
	if l := FirstLeaf(n); l != nil {
		return l.Prefix
	}
	return ""
}

// SetPrefix sets the prefix of n (of its first leaf for a Branch) and marks
// the node changed if the text differs.
func SetPrefix(n Node, prefix string) {
	l := FirstLeaf(n)
	if l == nil || l.Prefix == prefix {
		return
	}
	l.Prefix = prefix
	MarkChanged(l)
}

// Col returns the column of n's first leaf.
func Col(n Node) int {
	if l := FirstLeaf(n); l != nil {
		return l.Col
	}
	return 0
}

// Changed reports whether n has been marked changed.
func Changed(n Node) bool { return n.n().changed }

// MarkChanged marks n and all of its ancestors as changed, so that a later
// rule in the same pass can tell that positional data below this point is
// stale.
func MarkChanged(n Node) {
	for ; n != nil; n = n.n().parent {
		n.n().changed = true
	}
}

// relink rewrites parent and sibling links for all children of b. Mutations
// call it after any change to the child list.
func relink(b *Branch) {
	for i, ch := range b.children {
		nd := ch.n()
		nd.parent = b
		if i > 0 {
			nd.prev = b.children[i-1]
		} else {
			nd.prev = nil
		}
		if i < len(b.children)-1 {
			nd.next = b.children[i+1]
		} else {
			nd.next = nil
		}
	}
}

// AppendChild appends child at the end of b's children.
func AppendChild(b *Branch, child Node) {
	b.children = append(b.children, child)
	relink(b)
}

// InsertChild inserts child at position i of b's children.
func InsertChild(b *Branch, i int, child Node) {
	b.children = append(b.children, nil)
	copy(b.children[i+1:], b.children[i:])
	b.children[i] = child
	relink(b)
}

// Replace splices repl into the position n occupies in its parent's child
// list. n itself may appear in repl. Replacing the root is a no-op.
func Replace(n Node, repl ...Node) {
	parent, ok := Parent(n).(*Branch)
	if !ok {
		return
	}
	for i, ch := range parent.children {
		if ch == n {
			var children []Node
			children = append(children, parent.children[:i]...)
			children = append(children, repl...)
			children = append(children, parent.children[i+1:]...)
			parent.children = children
			relink(parent)
			return
		}
	}
}

// Render reproduces the source text of the subtree rooted at n, prefixes
// included.
func Render(n Node) string {
	var sb strings.Builder
	for _, leaf := range Leaves(n) {
		sb.WriteString(leaf.Prefix)
		sb.WriteString(leaf.Text)
	}
	return sb.String()
}

// Indentation returns the indentation string of the line on which the
// statement enclosing n begins. For nodes not under a statement it returns
// the empty string.
func Indentation(n Node) string {
	stmt := n
	for stmt != nil {
		if b, ok := Parent(stmt).(*Branch); ok && b.Kind == FileKind {
			break
		}
		stmt = Parent(stmt)
	}
	if stmt == nil {
		return ""
	}
	line := lastLine(Prefix(stmt))
	// The last prefix line of a statement's first token is indentation, but
	// stop at anything else just in case.
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return line[:end]
}

func lastLine(s string) string {
	return s[strings.LastIndexByte(s, '\n')+1:]
}
