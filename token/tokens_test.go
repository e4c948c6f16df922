package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenClassification(t *testing.T) {
	for b := 0; b < 0x80; b++ {
		assert.Equal(t, KindData, KindOf(byte(b)))
		assert.Equal(t, ShapeDictionaryRef, DataShapeOf(byte(b)))
		assert.Equal(t, ChangeNone, ContextChangeOf(byte(b)))
	}

	tests := []struct {
		b      byte
		kind   TokenKind
		change ContextChange
		shape  DataShape
	}{
		{0x80, KindData, ChangeNone, ShapeDictionaryRef},
		{0x8F, KindData, ChangeNone, ShapeDictionaryRef},
		{0x92, KindData, ChangeNone, ShapeDictionaryRef},
		{0x93, KindData, ChangeNone, ShapeByte},
		{0x94, KindData, ChangeNone, ShapeInt16},
		{0x95, KindData, ChangeNone, ShapeInt32},
		{0x96, KindData, ChangeNone, ShapeByteArray},
		{0x97, KindData, ChangeNone, ShapeByteArray},
		{0x98, KindUndefined, ChangeNone, ShapeNone},
		{0xA0, KindContext, ChangeParameter, ShapeNone},
		{0xA1, KindContext, ChangeParameter, ShapeNone},
		{0xA2, KindContext, ChangeNameAddr, ShapeNone},
		{0xA3, KindContext, ChangeNameAddr, ShapeNone},
		{0xA4, KindUndefined, ChangeNone, ShapeNone},
		{0xB0, KindContext, ChangeNewField, ShapeNone},
		{0xB8, KindContext, ChangeNewField, ShapeNone},
		{0xB9, KindContext, ChangeNewField, ShapeNone},
		{0xBF, KindContext, ChangeNewField, ShapeNone},
		{0xC0, KindContext, ChangeNewField, ShapeNone},
		{0xDF, KindContext, ChangeNewField, ShapeNone},
		{0xE0, KindUndefined, ChangeNone, ShapeNone},
		{0xF0, KindContext, ChangeNewField, ShapeNone},
		{0xF1, KindContext, ChangeNewField, ShapeNone},
		{0xFF, KindUndefined, ChangeNone, ShapeNone},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.kind, KindOf(tc.b), "kind 0x%02x", tc.b)
		assert.Equal(t, tc.change, ContextChangeOf(tc.b), "change 0x%02x", tc.b)
		assert.Equal(t, tc.shape, DataShapeOf(tc.b), "shape 0x%02x", tc.b)
	}
}

func TestShortcutBijection(t *testing.T) {
	seen := map[HeaderType]bool{}
	for b := int(ctxShortcutFirst); b <= int(ctxShortcutLast); b++ {
		h, ok := ShortcutToHeader(byte(b))
		require.True(t, ok, "0x%02x", b)
		require.False(t, seen[h], "%s twice", h)
		seen[h] = true

		back, ok := HeaderToShortcut(h)
		require.True(t, ok)
		assert.Equal(t, byte(b), back)
	}

	h, ok := ShortcutToHeader(0xBF)
	assert.False(t, ok)
	assert.Equal(t, HeaderUnknown, h)
	_, ok = ShortcutToHeader(0xE0)
	assert.False(t, ok)

	_, ok = HeaderToShortcut(HeaderWarning)
	assert.False(t, ok)
}

func TestKnownHeaderIndex(t *testing.T) {
	for h := HeaderAccept; h < headerTypeCount; h++ {
		idx, ok := HeaderToKnownIndex(h)
		require.True(t, ok, h.String())
		back, ok := KnownIndexToHeader(idx)
		require.True(t, ok)
		assert.Equal(t, h, back)
	}

	_, ok := KnownIndexToHeader(0)
	assert.False(t, ok)
	_, ok = KnownIndexToHeader(0xFF)
	assert.False(t, ok)

	// alphabetical byte order
	accept, _ := HeaderToKnownIndex(HeaderAccept)
	assert.Equal(t, byte(1), accept)
	cseq, _ := HeaderToKnownIndex(HeaderCSeq)
	callID, _ := HeaderToKnownIndex(HeaderCallID)
	assert.Less(t, cseq, callID)
}

func TestHeaderPredicates(t *testing.T) {
	for _, h := range []HeaderType{HeaderTo, HeaderFrom, HeaderContact, HeaderRoute, HeaderRecordRoute, HeaderReferTo, HeaderPAssertedIdentity} {
		assert.True(t, IsFixedFormatURIHeader(h), h.String())
	}
	for _, h := range []HeaderType{HeaderVia, HeaderCSeq, HeaderCallID, HeaderDate, HeaderUnknown, HeaderNone} {
		assert.False(t, IsFixedFormatURIHeader(h), h.String())
	}

	for _, h := range []HeaderType{HeaderContentLength, HeaderEncryption, HeaderHide, HeaderResponseKey} {
		assert.True(t, IsBlockedHeader(h), h.String())
	}
	assert.False(t, IsBlockedHeader(HeaderContentType))
	assert.False(t, IsBlockedHeader(headerTypeCount+5))

	h, ok := HeaderByName("call-id")
	require.True(t, ok)
	assert.Equal(t, HeaderCallID, h)
	assert.Equal(t, "WWW-Authenticate", HeaderWWWAuthenticate.String())
}
