package review

import "strings"

type Comment struct {
	text string
}

// NewComment trims surrounding whitespace. Empty comments are accepted.
func NewComment(s string) Comment {
	return Comment{text: strings.TrimSpace(s)}
}

func (c Comment) String() string { return c.text }
