package circuit

import "unicode/utf8"

// cursor walks source text one rune at a time. Its span always ends at the
// next unread rune and starts wherever it was last reset.
type cursor struct {
	src  string
	span Span
}

func newCursor(src string) *cursor {
	return &cursor{src: src}
}

func (c *cursor) pos() Position {
	return c.span.End
}

func (c *cursor) atEnd() bool {
	return c.span.End.Offset >= len(c.src)
}

func (c *cursor) peek() (rune, bool) {
	return c.peekN(0)
}

// peekN looks n runes past the next unread rune without consuming anything.
func (c *cursor) peekN(n int) (rune, bool) {
	idx := c.span.End.Offset
	for i := 0; ; i++ {
		if idx >= len(c.src) {
			return 0, false
		}
		r, w := utf8.DecodeRuneInString(c.src[idx:])
		if i == n {
			return r, true
		}
		idx += w
	}
}

func (c *cursor) peekIs(want rune) bool {
	r, ok := c.peek()
	return ok && r == want
}

func (c *cursor) bump() (rune, bool) {
	if c.atEnd() {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(c.src[c.span.End.Offset:])
	c.span.End = c.span.End.advance(r, w)
	return r, true
}

func (c *cursor) bumpWhile(pred func(rune) bool) {
	for {
		r, ok := c.peek()
		if !ok || !pred(r) {
			return
		}
		c.bump()
	}
}

func (c *cursor) reset() {
	c.span = c.span.narrow()
}

func (c *cursor) text() string {
	return c.span.Text(c.src)
}
