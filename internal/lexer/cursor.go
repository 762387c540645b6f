package lexer

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"reflectc/internal/source"
)

// Cursor walks the bytes of one header. Reads past the end yield 0, so
// scanners can look ahead without bounds checks.
type Cursor struct {
	file *source.File
	src  []byte
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("header %s too large: %w", f.Path, err))
	}
	return Cursor{file: f, src: f.Content}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// Peek returns the current byte or 0 at the end.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead or 0.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := int(c.Off) + int(n); i < len(c.src) {
		return c.src[i]
	}
	return 0
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Skip consumes up to n bytes.
func (c *Cursor) Skip(n uint32) {
	for range n {
		c.Bump()
	}
}

// Eat consumes the next byte if it is b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Peek() == b {
		c.Off++
		return true
	}
	return false
}

// TakeWhile consumes bytes while pred holds and returns how many it took.
func (c *Cursor) TakeWhile(pred func(byte) bool) uint32 {
	start := c.Off
	for !c.EOF() && pred(c.Peek()) {
		c.Off++
	}
	return c.Off - start
}

// HasPrefix reports whether the remaining input starts with p.
func (c *Cursor) HasPrefix(p string) bool {
	return !c.EOF() && bytes.HasPrefix(c.src[c.Off:], []byte(p))
}

// SkipPast moves right after the next occurrence of end. Without one it stops
// at EOF and returns false.
func (c *Cursor) SkipPast(end string) bool {
	if c.EOF() {
		return false
	}
	i := bytes.Index(c.src[c.Off:], []byte(end))
	if i < 0 {
		c.Off = uint32(len(c.src)) //nolint:gosec // checked in NewCursor
		return false
	}
	c.Off += uint32(i + len(end)) //nolint:gosec // checked in NewCursor
	return true
}

// Mark is a saved offset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers everything consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.Off}
}
