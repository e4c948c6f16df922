package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorWindow(t *testing.T) {
	buf := []byte{0xAA, 0x01, 0x02, 0x03, 0xBB}

	_, err := NewCursor(buf, 2, 4)
	require.ErrorIs(t, err, ErrTruncatedInput)
	_, err = NewCursor(buf, -1, 1)
	require.ErrorIs(t, err, ErrTruncatedInput)

	c, err := NewCursor(buf, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Pos())
	assert.Equal(t, 0, c.Offset())
	assert.Equal(t, 3, c.Remaining())

	b, err := c.Peek()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 0, c.Offset(), "peek must not move")

	b, err = c.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	rest := c.Rest()
	assert.Equal(t, []byte{0x02, 0x03}, rest)
	assert.True(t, c.AtEnd())

	// window end is respected even if buffer has more
	_, err = c.ReadByte()
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 4, c.Pos())
}

func TestCursorMonotonic(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7}
	c, err := NewCursor(buf, 0, len(buf))
	require.NoError(t, err)

	last := c.Pos()
	ops := []func() error{
		func() error { _, err := c.ReadByte(); return err },
		func() error { _, err := c.ReadUint16(); return err },
		func() error { _, err := c.ReadUint32(); return err },
		func() error { return c.Advance(1) },
		func() error { _, err := c.ReadBytes(2); return err },
		func() error { _, err := c.Peek(); return err },
	}
	for i := 0; i < 10; i++ {
		for _, op := range ops {
			before := c.Pos()
			err := op()
			if err != nil {
				assert.Equal(t, before, c.Pos(), "failed read moved cursor")
			}
			require.GreaterOrEqual(t, c.Pos(), last)
			require.LessOrEqual(t, c.Pos(), len(buf))
			last = c.Pos()
		}
	}
	assert.True(t, c.AtEnd())
}

func TestCursorReadBytesAlias(t *testing.T) {
	buf := []byte("abcdef")
	c, err := NewCursor(buf, 0, len(buf))
	require.NoError(t, err)

	v, err := c.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
	assert.Equal(t, 3, cap(v))

	// appending must not clobber following bytes
	_ = append(v, 'x')
	assert.Equal(t, "abcdef", string(buf))
}
