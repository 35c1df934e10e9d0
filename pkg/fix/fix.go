// Package fix rewraps source lines that exceed MaxWidth columns.
//
// The engine works on the lossless tree built by the parse package and
// performs one local, greedy fix per violation: over-long comments are
// reflowed inside prefixes, over-long string-literal statements are split
// into juxtaposed literals, and anything else gets a line break at the last
// token that still fits, with grouping parentheses synthesized when the break
// falls outside existing brackets. [Source] drives the per-node entry point
// [AttemptFix] to a fixed point by re-parsing the rendered output between
// passes, which also re-derives every column.
package fix

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pyfold/pyfold/pkg/logutil"
	"github.com/pyfold/pyfold/pkg/parse"
)

// MaxWidth is the maximum number of display columns a line may occupy.
const MaxWidth = 79

// indentIncrement is prepended to the enclosing indentation on continuation
// lines created by a split.
const indentIncrement = "    "

// maxPasses bounds the fixed-point iteration. Natural termination is the
// rule; the cap only guards against a statement shape none of the
// parenthesization rules know how to make progress on.
const maxPasses = 10

var logger = logutil.GetLogger("[fix] ")

// Source rewraps src until no fix changes anything, returning the final
// text. The tree is rebuilt from the rendered text between passes, so every
// pass sees fresh columns. Inputs with no over-long lines come back
// byte-for-byte unchanged.
func Source(src parse.Source) (string, error) {
	code := src.Code
	for pass := 0; pass < maxPasses; pass++ {
		file, err := parse.ParseFile(parse.Source{Name: src.Name, Code: code})
		if err != nil {
			return "", err
		}
		changed := false
		for _, leaf := range parse.Leaves(file) {
			if AttemptFix(leaf) {
				changed = true
			}
		}
		out := parse.Render(file)
		if !changed || out == code {
			return out, nil
		}
		logger.Printf("%s: pass %d rewrapped long lines", src.Name, pass+1)
		code = out
	}
	return code, nil
}

// IsViolation reports whether leaf needs fixing: either it is a statement
// terminator (newline or block-opening colon) positioned past MaxWidth, in
// which case the construct before it overflows, or its prefix contains an
// over-long physical line, which is where standalone comments live.
func IsViolation(leaf *parse.Leaf) bool {
	if (leaf.Kind == parse.Newline || leaf.Kind == parse.Colon) && leaf.Col > MaxWidth {
		return true
	}
	return prefixLineTooLong(leaf.Prefix)
}

// AttemptFix fixes the violation at leaf, if there is one, and reports
// whether anything changed. It is safe to call repeatedly: every mutation
// path either guards on text equality or marks the touched nodes changed and
// refuses to touch them again within the pass.
func AttemptFix(leaf *parse.Leaf) bool {
	if !IsViolation(leaf) {
		return false
	}
	changed := false
	if prefixLineTooLong(leaf.Prefix) ||
		(strings.Contains(leaf.Prefix, "#") &&
			leaf.Col+runewidth.StringWidth(leaf.Prefix) > MaxWidth) {
		changed = fixPrefix(leaf)
	}
	if (leaf.Kind == parse.Newline || leaf.Kind == parse.Colon) &&
		leaf.Col-runewidth.StringWidth(leaf.Prefix) > MaxWidth {
		// The terminator itself is past the limit even without its trailing
		// comment, so the construct before it must be split.
		target := parse.PrevSibling(leaf)
		if target == nil {
			return changed
		}
		if l, ok := target.(*parse.Leaf); ok && l.Kind == parse.String {
			changed = fixDocstring(l) || changed
		} else {
			changed = fixLeaves(target) || changed
		}
	}
	return changed
}

func prefixLineTooLong(prefix string) bool {
	for _, line := range strings.Split(prefix, "\n") {
		if runewidth.StringWidth(line) > MaxWidth {
			return true
		}
	}
	return false
}
