package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 0, 2)
	for v := 0; v <= math.MaxUint16; v++ {
		buf = EncodeUint16(buf[:0], uint16(v))
		c, err := NewCursor(buf, 0, len(buf))
		require.NoError(t, err)
		got, err := DecodeUint16(c)
		require.NoError(t, err)
		if got != uint16(v) {
			t.Fatalf("decoded %d, want %d", got, v)
		}
		require.True(t, c.AtEnd())
	}
}

func TestUint32Boundaries(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xFF, 0x100, 0xFFFF, 0x10000, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF} {
		buf := EncodeUint32(nil, v)
		require.Len(t, buf, 4)
		c, err := NewCursor(buf, 0, len(buf))
		require.NoError(t, err)
		got, err := DecodeUint32(c)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x00}, EncodeUint32(nil, 0x80000000))
	assert.Equal(t, []byte{0x12, 0x34}, EncodeUint16(nil, 0x1234))
}

func TestIntegerTruncated(t *testing.T) {
	c, err := NewCursor([]byte{0x01, 0x02, 0x03}, 0, 3)
	require.NoError(t, err)

	_, err = DecodeUint32(c)
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 0, c.Offset())

	v, err := DecodeUint16(c)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v)

	_, err = DecodeUint16(c)
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 2, c.Offset())
}
