package fix

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText reflows text into lines of at most width display columns, indent
// included. The first line starts with initialIndent, every further line
// with subsequentIndent. Whitespace runs between words collapse to single
// spaces and no line ends in whitespace. Words are never broken: a word that
// does not fit even alone on a line is emitted over-length. Empty or
// whitespace-only text yields no lines.
func wrapText(text string, width int, initialIndent, subsequentIndent string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	var sb strings.Builder
	sb.WriteString(initialIndent)
	lineWidth := runewidth.StringWidth(initialIndent)
	hasWord := false
	for _, word := range words {
		w := runewidth.StringWidth(word)
		if hasWord && lineWidth+1+w > width {
			lines = append(lines, sb.String())
			sb.Reset()
			sb.WriteString(subsequentIndent)
			lineWidth = runewidth.StringWidth(subsequentIndent)
			hasWord = false
		}
		if hasWord {
			sb.WriteByte(' ')
			lineWidth++
		}
		sb.WriteString(word)
		lineWidth += w
		hasWord = true
	}
	lines = append(lines, sb.String())
	return lines
}
