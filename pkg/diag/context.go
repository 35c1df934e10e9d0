package diag

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Context is a range of text in a source code, attached to its name and full
// content so that the offending part can be shown with surroundings.
type Context struct {
	Name   string
	Source string
	Ranging

	savedShowInfo *rangeShowInfo
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{Name: name, Source: source, Ranging: r.Range()}
}

// Information about the source range needed for showing.
type rangeShowInfo struct {
	// Head is the text between the last line boundary before the culprit and
	// the culprit itself.
	head string
	// Culprit is Source[From:To] with one trailing newline stripped.
	culprit string
	// Tail is the text between the culprit and the next line boundary, empty
	// if the culprit ends with a newline.
	tail string
	// 1-based line numbers of the first and last line of the culprit.
	beginLine, endLine int
}

func (c *Context) showInfo() *rangeShowInfo {
	if c.savedShowInfo != nil {
		return c.savedShowInfo
	}
	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	head := lastLine(before)
	beginLine := strings.Count(before, "\n") + 1

	var tail string
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else {
		tail = firstLine(after)
	}
	endLine := beginLine + strings.Count(culprit, "\n")

	c.savedShowInfo = &rangeShowInfo{head, culprit, tail, beginLine, endLine}
	return c.savedShowInfo
}

func (c *Context) describeRange() string {
	info := c.showInfo()
	if info.beginLine == info.endLine {
		return fmt.Sprintf("%s:%d", c.Name, info.beginLine)
	}
	return fmt.Sprintf("%s:%d-%d", c.Name, info.beginLine, info.endLine)
}

// Show shows the context, with the culprit highlighted. Each line after the
// first is prefixed with sourceIndent.
func (c *Context) Show(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.describeRange() + ": "
	// Extra indent so that the following lines line up with the first one.
	descIndent := strings.Repeat(" ", runewidth.StringWidth(desc))
	return desc + c.relevantSource(sourceIndent+descIndent)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) relevantSource(sourceIndent string) string {
	info := c.showInfo()

	var sb strings.Builder
	sb.WriteString(info.head)

	culprit := info.culprit
	if culprit == "" {
		culprit = culpritPlaceholder
	}
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(sourceIndent)
		}
		sb.WriteString(styled(line, culpritStyle))
	}

	sb.WriteString(info.tail)
	return sb.String()
}

const culpritPlaceholder = "^"

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func lastLine(s string) string {
	// LastIndexByte returns -1 when there is no newline, which happens to be
	// what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
