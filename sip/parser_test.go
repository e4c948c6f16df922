package sip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreateMessage(t testing.TB, rawMsg []string) Message {
	msg, err := NewParser().ParseSIP([]byte(strings.Join(rawMsg, "\r\n")))
	require.NoError(t, err)
	return msg
}

func TestParseRequest(t *testing.T) {
	msg := testCreateMessage(t, []string{
		"INVITE sip:bob@biloxi.com SIP/2.0",
		"Via: SIP/2.0/UDP a.com;branch=z9hG4bK1, SIP/2.0/TCP b.com:5070",
		"From: \"Alice\" <sip:alice@atlanta.com>;tag=1928301774",
		"To: <sip:bob@biloxi.com>",
		"Call-ID: a84b4c76e66710@pc33.atlanta.com",
		"CSeq: 314159 INVITE",
		"Max-Forwards: 70",
		"Contact: <sip:alice@pc33.atlanta.com>, <sip:alice@mobile.atlanta.com>",
		"X-Custom: something",
		"Content-Type: application/sdp",
		"Content-Length: 5",
		"",
		"v=0\r\n",
	})

	req, ok := msg.(*Request)
	require.True(t, ok)
	assert.Equal(t, INVITE, req.Method)
	assert.Equal(t, "sip:bob@biloxi.com", req.Recipient.String())

	vias := req.GetHeaders("Via")
	require.Len(t, vias, 2)
	via, _ := req.Via()
	assert.Equal(t, "a.com", via.Host)
	assert.Equal(t, "z9hG4bK1", via.Params.GetOr("branch", ""))
	second := vias[1].(*ViaHeader)
	assert.Equal(t, "TCP", second.Transport)
	assert.Equal(t, 5070, second.Port)

	from, ok := req.From()
	require.True(t, ok)
	assert.Equal(t, "Alice", from.DisplayName)
	assert.Equal(t, "1928301774", from.Params.GetOr("tag", ""))

	callid, ok := req.CallID()
	require.True(t, ok)
	assert.Equal(t, "a84b4c76e66710@pc33.atlanta.com", callid.Value())

	cseq, ok := req.CSeq()
	require.True(t, ok)
	assert.Equal(t, uint32(314159), cseq.SeqNo)
	assert.Equal(t, INVITE, cseq.MethodName)

	assert.Len(t, req.GetHeaders("Contact"), 2)
	assert.Equal(t, "something", req.GetHeader("x-custom").Value())

	ct, ok := req.ContentType()
	require.True(t, ok)
	assert.Equal(t, "application/sdp", ct.Value())
	assert.Equal(t, "v=0\r\n", string(req.Body()))
}

func TestParseResponse(t *testing.T) {
	msg := testCreateMessage(t, []string{
		"SIP/2.0 183 Session Progress",
		"CSeq: 2 BYE",
		"",
		"",
	})

	res, ok := msg.(*Response)
	require.True(t, ok)
	assert.Equal(t, StatusCode(183), res.StatusCode())
	assert.Equal(t, "Session Progress", res.Reason())
	assert.Equal(t, "SIP/2.0 183 Session Progress\r\nCSeq: 2 BYE\r\n\r\n", res.String())
}

func TestParseBadMessages(t *testing.T) {
	_, err := NewParser().ParseSIP([]byte("HELLO\r\n\r\n"))
	assert.Error(t, err)

	// no empty line
	_, err = NewParser().ParseSIP([]byte("OPTIONS sip:a.com SIP/2.0\r\nCSeq: 1 OPTIONS\r\n"))
	assert.ErrorIs(t, err, ErrParseInvalidMessage)

	_, err = NewParser().ParseSIP([]byte("OPTIONS sip:a.com SIP/2.0\nCSeq: 1 OPTIONS\r\n\r\n"))
	assert.ErrorIs(t, err, ErrParseLineNoCRLF)

	_, err = NewParser().ParseSIP([]byte("OPTIONS sip:a.com SIP/2.0\r\nContent-Length: 10\r\n\r\nabc"))
	assert.Error(t, err)
}

func TestParseHeader(t *testing.T) {
	parser := DefaultHeadersParser()

	t.Run("compact", func(t *testing.T) {
		hdrs, err := parser.ParseHeader(nil, "f", "<sip:alice@a.com>;tag=1")
		require.NoError(t, err)
		require.Len(t, hdrs, 1)
		from, ok := hdrs[0].(*FromHeader)
		require.True(t, ok)
		assert.Equal(t, "From: <sip:alice@a.com>;tag=1", from.String())
	})

	t.Run("line", func(t *testing.T) {
		hdrs, err := parser.ParseHeaderLine(nil, "Route: <sip:p1.a.com;lr>, <sip:p2.a.com;lr>")
		require.NoError(t, err)
		require.Len(t, hdrs, 2)
		assert.Equal(t, "<sip:p2.a.com;lr>", hdrs[1].Value())
	})

	t.Run("refer", func(t *testing.T) {
		hdrs, err := parser.ParseHeader(nil, "Refer-To", "<sip:carol@c.com>")
		require.NoError(t, err)
		refer, ok := hdrs[0].(*ReferToHeader)
		require.True(t, ok)
		assert.Equal(t, "carol", refer.Address.User)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := parser.ParseHeader(nil, "CSeq", "abc")
		assert.Error(t, err)
		_, err = parser.ParseHeader(nil, "To", "<sip:bob@b.com")
		assert.Error(t, err)
		_, err = parser.ParseHeaderLine(nil, "NoColon")
		assert.Error(t, err)
		_, err = parser.ParseHeader(nil, "Call-ID", "a b")
		assert.Error(t, err)
	})
}
