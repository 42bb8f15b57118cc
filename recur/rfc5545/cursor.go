package rfc5545

// cursor walks the remaining input. Every helper either consumes what it
// recognised and reports success, or leaves pos untouched and reports failure,
// so callers never observe a half-consumed token. Multi-token productions take
// a mark, and rewind to it when a later step fails.
type cursor struct {
	input string
	pos   int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.input)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.input[c.pos]
}

// mark returns a checkpoint for rewind.
func (c *cursor) mark() int {
	return c.pos
}

func (c *cursor) rewind(m int) {
	c.pos = m
}

// consume advances past b if it is the next byte.
func (c *cursor) consume(b byte) bool {
	if c.eof() || c.input[c.pos] != b {
		return false
	}
	c.pos++
	return true
}

// span consumes the longest run of bytes matching pred.
func (c *cursor) span(pred func(byte) bool) string {
	start := c.pos
	for !c.eof() && pred(c.input[c.pos]) {
		c.pos++
	}
	return c.input[start:c.pos]
}

// name consumes a part name or weekday: ASCII letters, digits and '-'.
func (c *cursor) name() (string, bool) {
	s := c.span(func(b byte) bool { return isAlpha(b) || isDigit(b) || b == '-' })
	return s, s != ""
}

// unsigned consumes one or more digits.
func (c *cursor) unsigned() (int, bool) {
	m := c.mark()
	digits := c.span(isDigit)
	if digits == "" || len(digits) > 9 {
		c.rewind(m)
		return 0, false
	}
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return n, true
}

// signed consumes an optionally signed integer.
func (c *cursor) signed() (int, bool) {
	m := c.mark()
	neg := false
	switch {
	case c.consume('-'):
		neg = true
	case c.consume('+'):
	}
	n, ok := c.unsigned()
	if !ok {
		c.rewind(m)
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// value consumes everything up to the next part separator.
func (c *cursor) value() string {
	return c.span(func(b byte) bool { return b != ';' })
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
