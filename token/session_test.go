package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionGet(t *testing.T, s *SessionDictionary, wire []byte) ([]byte, *Cursor, error) {
	t.Helper()
	c, err := NewCursor(wire, 0, len(wire))
	require.NoError(t, err)
	v, err := s.Get(c)
	return v, c, err
}

func TestSessionNumbers(t *testing.T) {
	s := NewSessionDictionary(DefaultDictionary())

	tests := []struct {
		wire []byte
		want string
	}{
		{[]byte{tokByte, 0}, "0"},
		{[]byte{tokByte, 255}, "255"},
		{cat([]byte{tokInt16}, u16(5060)), "5060"},
		{cat([]byte{tokInt16}, u16(0xFFFF)), "65535"},
		{cat([]byte{tokInt32}, u32(0x80000000)), "2147483648"},
		{cat([]byte{tokInt32}, u32(0xFFFFFFFF)), "4294967295"},
	}
	for _, tc := range tests {
		v, c, err := sessionGet(t, s, tc.wire)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(v))
		assert.True(t, c.AtEnd())
	}
	assert.Equal(t, len(tests), s.Learned(), "numbers are learned like byte arrays")
}

func TestSessionNumberBackReference(t *testing.T) {
	s := NewSessionDictionary(DefaultDictionary())

	v, _, err := sessionGet(t, s, []byte{tokByte, 70})
	require.NoError(t, err)
	assert.Equal(t, "70", string(v))
	_, _, err = sessionGet(t, s, cat([]byte{tokInt16}, u16(5060)))
	require.NoError(t, err)
	_, _, err = sessionGet(t, s, lit("atlanta.com"))
	require.NoError(t, err)
	require.Equal(t, 3, s.Learned())

	for i, want := range []string{"70", "5060", "atlanta.com"} {
		v, _, err := sessionGet(t, s, []byte{tokBackRefInline + byte(i)})
		require.NoError(t, err)
		assert.Equal(t, want, string(v))
	}

	// static references are not learned
	_, _, err = sessionGet(t, s, []byte{0x00})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Learned())
}

func TestSessionStatic(t *testing.T) {
	s := NewSessionDictionary(DefaultDictionary())

	v, _, err := sessionGet(t, s, []byte{0x00})
	require.NoError(t, err)
	assert.Equal(t, "INVITE", string(v))

	v, _, err = sessionGet(t, s, prim(t, "Server Internal Error"))
	require.NoError(t, err)
	assert.Equal(t, "Server Internal Error", string(v))

	v, _, err = sessionGet(t, s, sec(t, "rtcp-mux"))
	require.NoError(t, err)
	assert.Equal(t, "rtcp-mux", string(v))

	// empty slots
	_, _, err = sessionGet(t, s, []byte{tokPrimaryLong, 0x01, 0xFF})
	require.ErrorIs(t, err, ErrMalformedDictionaryReference)
	_, _, err = sessionGet(t, s, []byte{tokSecondary, 0xFF})
	require.ErrorIs(t, err, ErrMalformedDictionaryReference)

	assert.Equal(t, 0, s.Learned())
}

func TestSessionBackReference(t *testing.T) {
	s := NewSessionDictionary(DefaultDictionary())

	// index equal to learned count is invalid
	_, _, err := sessionGet(t, s, []byte{tokBackRefInline})
	require.ErrorIs(t, err, ErrMalformedDictionaryReference)

	v, _, err := sessionGet(t, s, lit("atlanta.com"))
	require.NoError(t, err)
	assert.Equal(t, "atlanta.com", string(v))
	v, _, err = sessionGet(t, s, lit(""))
	require.NoError(t, err)
	assert.Empty(t, v)
	require.Equal(t, 2, s.Learned())

	v, _, err = sessionGet(t, s, []byte{tokBackRefInline})
	require.NoError(t, err)
	assert.Equal(t, "atlanta.com", string(v))

	v, _, err = sessionGet(t, s, []byte{tokBackRef, 0})
	require.NoError(t, err)
	assert.Equal(t, "atlanta.com", string(v))

	_, _, err = sessionGet(t, s, []byte{tokBackRefInline + 2})
	require.ErrorIs(t, err, ErrMalformedDictionaryReference)
	_, _, err = sessionGet(t, s, []byte{tokBackRef, 2})
	require.ErrorIs(t, err, ErrMalformedDictionaryReference)

	// references do not grow learned list
	assert.Equal(t, 2, s.Learned())
}

func TestSessionLongLiteral(t *testing.T) {
	s := NewSessionDictionary(DefaultDictionary())
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a' + byte(i%26)
	}

	v, c, err := sessionGet(t, s, lit(string(long)))
	require.NoError(t, err)
	assert.Equal(t, long, v)
	assert.True(t, c.AtEnd())
}

func TestSessionErrors(t *testing.T) {
	s := NewSessionDictionary(DefaultDictionary())

	_, c, err := sessionGet(t, s, []byte{ctxParam})
	require.ErrorIs(t, err, ErrMalformedDictionaryReference)
	assert.Equal(t, 0, c.Offset())

	_, _, err = sessionGet(t, s, []byte{0xFF})
	require.ErrorIs(t, err, ErrMalformedDictionaryReference)

	_, _, err = sessionGet(t, s, []byte{tokBytes, 5, 'a'})
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, _, err = sessionGet(t, s, []byte{tokInt32, 0, 0})
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, _, err = sessionGet(t, s, nil)
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, 0, s.Learned())
}
