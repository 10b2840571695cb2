package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text in a source file. It is used by errors that can
// be attributed to a part of the program text, like syntax errors and runtime
// errors.
type Context struct {
	Name   string
	Source string
	Ranging

	savedInfo *rangeInfo
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range(), nil}
}

type rangeInfo struct {
	// Text immediately before Culprit, up to but excluding the previous line
	// boundary.
	head string
	// Source[From:To] with a trailing newline stripped.
	culprit string
	// Text immediately after Culprit, up to but excluding the next line
	// boundary.
	tail string
	// 1-based line and column of the start of the culprit. The column counts
	// runes.
	line, col int
}

// Styling of the culprit and the message. Disabled by UseANSI(false).
var (
	culpritStart  = "\033[1;4m"
	culpritEnd    = "\033[m"
	culpritMarker = "^"
	messageStart  = "\033[31;1m"
	messageEnd    = "\033[m"
)

// UseANSI turns ANSI styling of culprits and messages on or off.
func UseANSI(on bool) {
	if on {
		culpritStart, culpritEnd = "\033[1;4m", "\033[m"
		messageStart, messageEnd = "\033[31;1m", "\033[m"
	} else {
		culpritStart, culpritEnd = "", ""
		messageStart, messageEnd = "", ""
	}
}

func (c *Context) info() *rangeInfo {
	if c.savedInfo != nil {
		return c.savedInfo
	}
	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	head := lastLine(before)
	var tail string
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else {
		tail = firstLine(after)
	}
	c.savedInfo = &rangeInfo{
		head:    head,
		culprit: culprit,
		tail:    tail,
		line:    strings.Count(before, "\n") + 1,
		col:     len([]rune(head)) + 1,
	}
	return c.savedInfo
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

// Line returns the 1-based line number of the start of the range, or 0 if the
// range is not valid.
func (c *Context) Line() int {
	if c.checkPosition() != nil {
		return 0
	}
	return c.info().line
}

// Culprit returns the text covered by the range.
func (c *Context) Culprit() string {
	if c.checkPosition() != nil {
		return ""
	}
	return c.info().culprit
}

// Describe returns "name:line:col" for the start of the range.
func (c *Context) Describe() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	info := c.info()
	return fmt.Sprintf("%s:%d:%d", c.Name, info.line, info.col)
}

// Show shows the position of the range, followed by the line containing it
// with the culprit highlighted. Lines after the first are indented with
// indent.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.Describe() + ": "
	info := c.info()

	var sb strings.Builder
	sb.WriteString(desc)
	sb.WriteString(info.head)
	culprit := info.culprit
	if culprit == "" {
		culprit = culpritMarker
	}
	descIndent := strings.Repeat(" ", len([]rune(desc)))
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent + descIndent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	sb.WriteString(info.tail)
	return sb.String()
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
