package parse

import "strings"

// SplitComments splits a prefix into three parts: the text before the
// comment-bearing region, the region itself, and the text after it.
//
// The comment region starts at the beginning of the line holding the first
// '#', so that the region's indentation is part of it, and ends at the end of
// the last line holding a '#'. The newline terminating that last line is
// dropped from all three parts; callers re-add it when reassembling. A prefix
// without '#' comes back entirely in the third part.
func SplitComments(prefix string) (before, comments, after string) {
	first := strings.IndexByte(prefix, '#')
	if first < 0 {
		return "", "", prefix
	}
	start := strings.LastIndexByte(prefix[:first], '\n') + 1

	last := strings.LastIndexByte(prefix, '#')
	end := len(prefix)
	after = ""
	if nl := strings.IndexByte(prefix[last:], '\n'); nl >= 0 {
		end = last + nl
		after = prefix[end+1:]
	}
	return prefix[:start], prefix[start:end], after
}

// Quotes returns the opening and closing delimiter of a string literal
// token. The opening delimiter includes any literal prefix letters (r, b, u,
// f); the closing one is bare quotes. Both are empty if the text does not
// look like a string literal.
func Quotes(s string) (start, end string) {
	i := 0
	for i < len(s) && isPrefixLetter(s[i]) {
		i++
	}
	if i > 2 {
		return "", ""
	}
	rest := s[i:]
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(rest, q) {
			return s[:i] + q, q
		}
	}
	return "", ""
}

func isPrefixLetter(b byte) bool {
	switch b {
	case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		return true
	}
	return false
}
