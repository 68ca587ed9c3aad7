package token

import "strings"

// Comment represents a `#` line comment with position.
type Comment struct {
	Text string // includes the leading #
	Span Span
}

// Body returns the comment text without the leading # and surrounding space.
func (c *Comment) Body() string {
	return strings.TrimSpace(strings.TrimPrefix(c.Text, "#"))
}
