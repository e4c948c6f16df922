package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrependHeader(t *testing.T) {
	hs := headers{}

	hs.PrependHeader(&ViaHeader{})
	assert.Equal(t, 1, len(hs.headerOrder))

	v := &ViaHeader{}
	hs.PrependHeader(v.Clone())
	assert.Equal(t, 2, len(hs.headerOrder))
	assert.Equal(t, v, hs.GetHeader("via"))
}

func TestHeadersRefs(t *testing.T) {
	hs := headers{}
	first := &ViaHeader{ProtocolName: "SIP", ProtocolVersion: "2.0", Transport: "UDP", Host: "a.com"}
	second := &ViaHeader{ProtocolName: "SIP", ProtocolVersion: "2.0", Transport: "TCP", Host: "b.com"}
	hs.AppendHeader(first)
	hs.AppendHeader(second)

	via, ok := hs.Via()
	require.True(t, ok)
	assert.Equal(t, "a.com", via.Host)

	require.True(t, hs.RemoveHeader("Via"))
	via, ok = hs.Via()
	require.True(t, ok)
	assert.Equal(t, "b.com", via.Host)

	require.True(t, hs.RemoveHeader("Via"))
	_, ok = hs.Via()
	assert.False(t, ok)
	assert.False(t, hs.RemoveHeader("Via"))
}

func TestHeaderStrings(t *testing.T) {
	to := &ToHeader{
		DisplayName: "Bob",
		Address:     Uri{Scheme: SCHEME_SIP, User: "bob", Host: "biloxi.com"},
		Params:      HeaderParams{{K: "tag", V: "a6c85cf"}},
	}
	assert.Equal(t, `To: "Bob" <sip:bob@biloxi.com>;tag=a6c85cf`, to.String())

	cseq := &CSeqHeader{SeqNo: 314159, MethodName: INVITE}
	assert.Equal(t, "CSeq: 314159 INVITE", cseq.String())

	via := &ViaHeader{
		ProtocolName:    "SIP",
		ProtocolVersion: "2.0",
		Transport:       "UDP",
		Host:            "pc33.atlanta.com",
		Port:            5060,
		Params:          HeaderParams{{K: "branch", V: "z9hG4bK776asdhds"}},
	}
	assert.Equal(t, "Via: SIP/2.0/UDP pc33.atlanta.com:5060;branch=z9hG4bK776asdhds", via.String())
	assert.Equal(t, "pc33.atlanta.com:5060", via.SentBy())

	contact := &ContactHeader{Address: Uri{Wildcard: true, Host: "*"}}
	assert.Equal(t, "Contact: *", contact.String())

	rr := &RecordRouteHeader{Address: Uri{Scheme: SCHEME_SIP, Host: "p1.example.com", UriParams: HeaderParams{{K: "lr"}}}}
	assert.Equal(t, "Record-Route: <sip:p1.example.com;lr>", rr.String())

	maxfwd := MaxForwardsHeader(70)
	assert.Equal(t, "Max-Forwards: 70", maxfwd.String())

	generic := NewHeader("X-Custom", "value")
	assert.Equal(t, "X-Custom: value", generic.String())
}

func TestCopyHeaders(t *testing.T) {
	invite := NewRequest(INVITE, &Uri{Scheme: SCHEME_SIP, User: "bob", Host: "example.com"})
	invite.AppendHeader(NewHeader("Record-Route", "<sip:p1:5060;lr;transport=udp>"))
	invite.AppendHeader(NewHeader("Record-Route", "<sip:p2:5060;lr>"))

	res := NewResponse(200, "OK")
	CopyHeaders("Record-Route", invite, res)

	hdrs := res.GetHeaders("Record-Route")
	require.Len(t, hdrs, 2)
	require.Equal(t, "Record-Route: <sip:p1:5060;lr;transport=udp>", hdrs[0].String())
	require.Equal(t, "Record-Route: <sip:p2:5060;lr>", hdrs[1].String())
}

func TestMessageSetBody(t *testing.T) {
	req := NewRequest(OPTIONS, &Uri{Scheme: SCHEME_SIP, Host: "example.com"})
	req.SetBody([]byte("hello"))

	cl, ok := req.ContentLength()
	require.True(t, ok)
	assert.Equal(t, ContentLengthHeader(5), *cl)

	req.SetBody([]byte("hi"))
	cl, _ = req.ContentLength()
	assert.Equal(t, ContentLengthHeader(2), *cl)
	assert.Len(t, req.GetHeaders("Content-Length"), 1)
	assert.Equal(t, "OPTIONS sip:example.com SIP/2.0\r\nContent-Length: 2\r\n\r\nhi", req.String())
}

func TestParseUserAgent(t *testing.T) {
	hdrs, err := DefaultHeadersParser().ParseHeader(nil, "User-Agent", " softphone/1.2 (linux) ")
	require.NoError(t, err)
	require.Len(t, hdrs, 1)
	ua, ok := hdrs[0].(*UserAgentHeader)
	require.True(t, ok)
	assert.Equal(t, "softphone/1.2 (linux)", ua.Value())
	assert.Equal(t, "User-Agent: softphone/1.2 (linux)", ua.String())

	c := HeaderClone(ua)
	assert.NotSame(t, ua, c)
	assert.Equal(t, ua.Value(), c.Value())

	_, err = DefaultHeadersParser().ParseHeader(nil, "User-Agent", "  ")
	require.Error(t, err)
}
