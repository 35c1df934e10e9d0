package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/pyfold/pyfold/pkg/diag"
)

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
}

// Error is a parse error.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "parse error" }

// UnpackErrors returns the constituent parse errors if the given error
// contains one or more parse errors. Otherwise it returns nil.
func UnpackErrors(e error) []*Error {
	return diag.UnpackErrors[ErrorTag](e)
}

// lexer scans source text into a flat sequence of leaves. Whitespace,
// comments, blank lines, backslash continuations and newlines inside brackets
// all accumulate into the prefix of the following token, so that
// concatenating every leaf's prefix and text reproduces the input exactly.
//
// NOTE: src is assumed to be valid UTF-8.
type lexer struct {
	name string
	src  string
	pos  int
	col  int

	prefixStart  int
	depth        int
	lineHasToken bool

	leaves []*Leaf
	errors []*Error
}

const eof rune = -1

func lex(src Source) ([]*Leaf, error) {
	lx := &lexer{name: src.Name, src: src.Code}
	lx.run()
	return lx.leaves, diag.PackErrors(lx.errors)
}

func (lx *lexer) run() {
	for lx.pos < len(lx.src) {
		r := lx.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			lx.next()
		case r == '#':
			for lx.peek() != '\n' && lx.peek() != eof {
				lx.next()
			}
		case r == '\\' && (lx.hasPrefix("\\\n") || lx.hasPrefix("\\\r\n")):
			// Explicit line continuation joins into the next token's prefix.
			lx.next()
			for lx.peek() == '\r' {
				lx.next()
			}
			lx.next()
		case r == '\n':
			if lx.depth > 0 || !lx.lineHasToken {
				// Implicit continuation inside brackets, or a blank or
				// comment-only line: no terminator here.
				lx.next()
			} else {
				col, begin := lx.col, lx.pos
				lx.next()
				lx.emit(Newline, begin, col)
				lx.lineHasToken = false
			}
		default:
			lx.lexToken()
		}
	}
	if lx.lineHasToken {
		// No trailing newline; synthesize a zero-width terminator so the
		// last logical line still has one.
		lx.emit(Newline, lx.pos, lx.col)
	}
	lx.emit(EndMarker, lx.pos, lx.col)
}

// Multi-rune operators, longest first so that prefixes never shadow them.
var operators = []string{
	"**=", "//=", ">>=", "<<=",
	"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "<>", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
}

func (lx *lexer) lexToken() {
	col, begin := lx.col, lx.pos
	r := lx.peek()
	switch {
	case isQuote(r):
		lx.lexString(begin)
		lx.emit(String, begin, col)
	case isIdentStart(r):
		for isIdentCont(lx.peek()) {
			lx.next()
		}
		if isQuote(lx.peek()) && isStringPrefix(lx.src[begin:lx.pos]) {
			lx.lexString(lx.pos)
			lx.emit(String, begin, col)
		} else {
			lx.emit(Name, begin, col)
		}
	case unicode.IsDigit(r) || (r == '.' && unicode.IsDigit(lx.peekAt(1))):
		for isNumberCont(lx.peek()) {
			lx.next()
		}
		lx.emit(Number, begin, col)
	case r == '.':
		lx.next()
		lx.emit(Dot, begin, col)
	case r == '(':
		lx.next()
		lx.depth++
		lx.emit(LParen, begin, col)
	case r == ')':
		lx.next()
		lx.depth--
		lx.emit(RParen, begin, col)
	case r == '[':
		lx.next()
		lx.depth++
		lx.emit(LBracket, begin, col)
	case r == ']':
		lx.next()
		lx.depth--
		lx.emit(RBracket, begin, col)
	case r == '{':
		lx.next()
		lx.depth++
		lx.emit(LBrace, begin, col)
	case r == '}':
		lx.next()
		lx.depth--
		lx.emit(RBrace, begin, col)
	case r == ':':
		lx.next()
		if lx.depth > 0 && lx.peek() == '=' {
			lx.next()
			lx.emit(Op, begin, col)
		} else if lx.depth > 0 {
			// Dict and slice colons have no statement structure to them.
			lx.emit(Op, begin, col)
		} else {
			lx.emit(Colon, begin, col)
		}
	case r == '=':
		if op := lx.matchOperator(); op != "" {
			lx.emit(Op, begin, col)
		} else {
			lx.next()
			lx.emit(Eq, begin, col)
		}
	default:
		if op := lx.matchOperator(); op == "" {
			lx.next()
		}
		lx.emit(Op, begin, col)
	}
}

func (lx *lexer) matchOperator() string {
	for _, op := range operators {
		if lx.hasPrefix(op) {
			for range op {
				lx.next()
			}
			return op
		}
	}
	return ""
}

// lexString scans a string literal starting at the opening quote. quoteStart
// is the position of the first quote character; any literal prefix letters
// have already been consumed.
func (lx *lexer) lexString(quoteStart int) {
	q := lx.peek()
	delim := string(q)
	if lx.hasPrefix(strings.Repeat(string(q), 3)) {
		delim = strings.Repeat(string(q), 3)
	}
	for range delim {
		lx.next()
	}
	for {
		r := lx.peek()
		switch {
		case r == eof:
			lx.error(quoteStart, fmt.Errorf("string not terminated"))
			return
		case r == '\\':
			lx.next()
			if lx.peek() != eof {
				lx.next()
			}
		case r == '\n' && len(delim) == 1:
			lx.error(quoteStart, fmt.Errorf("newline in single-quoted string"))
			return
		case lx.hasPrefix(delim):
			for range delim {
				lx.next()
			}
			return
		default:
			lx.next()
		}
	}
}

func (lx *lexer) emit(kind TokenKind, begin, col int) {
	leaf := &Leaf{
		Kind:   kind,
		Text:   lx.src[begin:lx.pos],
		Prefix: lx.src[lx.prefixStart:begin],
		Col:    col,
	}
	lx.leaves = append(lx.leaves, leaf)
	lx.prefixStart = lx.pos
	if kind != Newline && kind != EndMarker {
		lx.lineHasToken = true
	}
}

func (lx *lexer) peek() rune {
	if lx.pos == len(lx.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return r
}

func (lx *lexer) peekAt(offset int) rune {
	pos := lx.pos
	for i := 0; i < offset; i++ {
		if pos >= len(lx.src) {
			return eof
		}
		_, s := utf8.DecodeRuneInString(lx.src[pos:])
		pos += s
	}
	if pos >= len(lx.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(lx.src[pos:])
	return r
}

func (lx *lexer) hasPrefix(prefix string) bool {
	return strings.HasPrefix(lx.src[lx.pos:], prefix)
}

func (lx *lexer) next() rune {
	if lx.pos == len(lx.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += s
	if r == '\n' {
		lx.col = 0
	} else {
		lx.col += runewidth.RuneWidth(r)
	}
	return r
}

func (lx *lexer) error(begin int, e error) {
	end := lx.pos
	if end == begin {
		end++
		if end > len(lx.src) {
			end = len(lx.src)
		}
	}
	lx.errors = append(lx.errors, &Error{
		Message: e.Error(),
		Context: *diag.NewContext(lx.name, lx.src, diag.Ranging{From: begin, To: end}),
	})
}

func isQuote(r rune) bool { return r == '\'' || r == '"' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isNumberCont(r rune) bool {
	return r == '.' || r == '_' || unicode.IsDigit(r) || unicode.IsLetter(r)
}

func isStringPrefix(s string) bool {
	if len(s) > 2 {
		return false
	}
	for _, r := range s {
		switch r {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}
