package token

import (
	"bytes"
	"testing"

	"github.com/pradhp1999/dhruva-sub011/sip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessageInvite(t *testing.T) {
	msg, err := DecodeMessage(testInvite(t))
	require.NoError(t, err)

	req, ok := msg.(*sip.Request)
	require.True(t, ok)
	assert.Equal(t, sip.INVITE, req.Method)
	assert.Equal(t, "sip:bob@biloxi.com", req.Recipient.String())
	assert.Equal(t, "SIP/2.0", req.SipVersion)

	via, ok := req.Via()
	require.True(t, ok)
	assert.Equal(t, "UDP", via.Transport)
	assert.Equal(t, "pc33.atlanta.com", via.Host)
	assert.Equal(t, 5060, via.Port)
	branch, _ := via.Params.Get("branch")
	assert.Equal(t, "z9hG4bK776asdhds", branch)

	from, ok := req.From()
	require.True(t, ok)
	assert.Equal(t, "Alice", from.DisplayName)
	tag, _ := from.Params.Get("tag")
	assert.Equal(t, "1928301774", tag)

	to, ok := req.To()
	require.True(t, ok)
	assert.Equal(t, "bob", to.Address.User)

	callID, ok := req.CallID()
	require.True(t, ok)
	assert.Equal(t, "a84b4c76@pc33.atlanta.com", callID.Value())

	cseq, ok := req.CSeq()
	require.True(t, ok)
	assert.Equal(t, uint32(314), cseq.SeqNo)
	assert.Equal(t, sip.INVITE, cseq.MethodName)

	assert.Equal(t, "v=0\r\n", string(req.Body()))
	cl, ok := req.ContentLength()
	require.True(t, ok, "content length is restored from body")
	assert.Equal(t, sip.ContentLengthHeader(5), *cl)

	// text form is parsable SIP
	parsed, err := sip.NewParser().ParseSIP([]byte(req.String()))
	require.NoError(t, err)
	assert.Equal(t, req.StartLine(), parsed.StartLine())
	assert.Equal(t, "v=0\r\n", string(parsed.Body()))
}

func TestDecodeMessageResponse(t *testing.T) {
	wire := cat(
		[]byte{ctxResponse}, u16(180), prim(t, "Ringing"),
		shortcut(HeaderVia), []byte{0x01}, lit("10.0.0.1"),
		shortcut(HeaderCSeq), []byte{cseqVariantShort}, u16(1), prim(t, "INVITE"),
		shortcut(HeaderUserAgent), lit("phone/1.0"),
		[]byte{ctxEndHeaders},
	)
	d := NewDecoder()
	msg, err := d.DecodeMessage(wire, 0, len(wire))
	require.NoError(t, err)

	res, ok := msg.(*sip.Response)
	require.True(t, ok)
	assert.Equal(t, sip.StatusCode(180), res.StatusCode())
	assert.Equal(t, "Ringing", res.Reason())

	via, ok := res.Via()
	require.True(t, ok)
	assert.Equal(t, "TCP", via.Transport)
	ua, ok := res.GetHeader("User-Agent").(*sip.UserAgentHeader)
	require.True(t, ok)
	assert.Equal(t, "phone/1.0", ua.Value())
	assert.Nil(t, res.Body())
}

func TestDecodeMessageError(t *testing.T) {
	wire := testInvite(t)
	// cut inside Via host literal
	_, err := DecodeMessage(wire[:30])
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestMessageBuilder(t *testing.T) {
	b := NewMessageBuilder()

	_, err := b.Message()
	require.ErrorIs(t, err, ErrMessageIncomplete)

	b.MessageBegin(MessageInfo{Request: true, Method: "OPTIONS", RequestURI: "sip:example.com", Version: "SIP/2.0"})
	_, err = b.Message()
	require.ErrorIs(t, err, ErrMessageIncomplete)

	b.HeaderFound(HeaderMaxForwards, []byte("Max-Forwards"), []byte("many"), true)
	b.HeaderFound(HeaderDate, []byte("Date"), []byte("tomorrow"), false)
	b.UnknownHeaderFound([]byte("X-Foo"), []byte("bar"), true)
	b.MessageFound(true)

	msg, err := b.Message()
	require.NoError(t, err)
	assert.Equal(t, "many", msg.GetHeader("Max-Forwards").Value())
	assert.Equal(t, "tomorrow", msg.GetHeader("Date").Value())
	assert.Equal(t, "bar", msg.GetHeader("X-Foo").Value())
	assert.Len(t, msg.Headers(), 3)

	b.Reset()
	_, err = b.Message()
	require.ErrorIs(t, err, ErrMessageIncomplete)
}

func TestMessageBuilderSessionDescription(t *testing.T) {
	var logs bytes.Buffer
	b := NewMessageBuilder(WithBuilderLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	begin := func() {
		b.MessageBegin(MessageInfo{StatusCode: 200, Reason: "OK", Version: "SIP/2.0"})
	}

	begin()
	b.BodyFound([]byte("Application/SDP; charset=utf-8"), []byte(sdpLines(
		"v=0",
		"o=bob 1 1 IN IP4 192.0.2.1",
		"s=-",
		"c=IN IP4 192.0.2.1",
		"t=0 0",
		"m=audio 49170 RTP/AVP 0",
	)))
	b.MessageFound(true)
	sd, err := b.SessionDescription()
	require.NoError(t, err)
	require.NotNil(t, sd)
	assert.Equal(t, "bob", sd.Origin.Username)
	assert.Contains(t, logs.String(), "response status=200 reason=OK")

	begin()
	b.BodyFound([]byte("application/sdp"), []byte("not sdp"))
	b.MessageFound(true)
	sd, err = b.SessionDescription()
	require.Error(t, err)
	assert.Nil(t, sd)
	assert.Contains(t, logs.String(), "sdp body not parsable")
	_, err = b.Message()
	require.NoError(t, err, "unparsable sdp does not fail message")

	begin()
	b.BodyFound([]byte("text/plain"), []byte("not sdp"))
	sd, err = b.SessionDescription()
	assert.NoError(t, err)
	assert.Nil(t, sd)
}
