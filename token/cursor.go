package token

import "fmt"

// Cursor is a read position over borrowed buffer window buf[start:start+length].
// Position only moves forward. Failed reads do not move it.
type Cursor struct {
	buf   []byte
	start int
	end   int
	pos   int
}

// NewCursor creates cursor over buf[off:off+n].
func NewCursor(buf []byte, off, n int) (*Cursor, error) {
	if off < 0 || n < 0 || off > len(buf) || n > len(buf)-off {
		return nil, fmt.Errorf("%w: window off=%d n=%d over %d bytes", ErrTruncatedInput, off, n, len(buf))
	}
	return &Cursor{
		buf:   buf,
		start: off,
		end:   off + n,
		pos:   off,
	}, nil
}

// Pos returns absolute position in underlying buffer.
func (c *Cursor) Pos() int { return c.pos }

// Offset returns position relative to window start.
func (c *Cursor) Offset() int { return c.pos - c.start }

func (c *Cursor) Remaining() int { return c.end - c.pos }

func (c *Cursor) AtEnd() bool { return c.pos >= c.end }

func (c *Cursor) need(n int) error {
	if n < 0 || c.end-c.pos < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedInput, n, c.Offset(), c.Remaining())
	}
	return nil
}

// Peek returns next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.buf[c.pos], nil
}

func (c *Cursor) Advance(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes returns next n bytes. Result aliases the underlying buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadUint16 reads big endian 16 bit unsigned int.
func (c *Cursor) ReadUint16() (uint16, error) {
	return DecodeUint16(c)
}

// ReadUint32 reads big endian 32 bit unsigned int.
func (c *Cursor) ReadUint32() (uint32, error) {
	return DecodeUint32(c)
}

// Rest consumes and returns everything left in the window.
func (c *Cursor) Rest() []byte {
	b := c.buf[c.pos:c.end:c.end]
	c.pos = c.end
	return b
}
