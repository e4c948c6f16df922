package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseMapping(t *testing.T) {
	assert.Equal(t, "invite", ASCIIToLower("INVITE"))
	assert.Equal(t, "INVITE", ASCIIToUpper("invite"))
	assert.Equal(t, "x-ünï", ASCIIToLower("X-ünï"))
	assert.Equal(t, "already", ASCIIToLower("already"))

	assert.Equal(t, "cseq", HeaderToLower("CSeq"))
	assert.Equal(t, "cseq", HeaderToLower("CSEQ"))
	assert.Equal(t, "x-custom", HeaderToLower("X-Custom"))
}

func TestMessageShortString(t *testing.T) {
	req := NewRequest(OPTIONS, &Uri{Scheme: SCHEME_SIP, Host: "example.com"})
	assert.Contains(t, MessageShortString(req), "request method=OPTIONS")

	res := NewResponse(StatusCode(486), "Busy Here")
	assert.Contains(t, MessageShortString(res), "response status=486 reason=Busy Here")

	assert.Equal(t, "<nil>", MessageShortString(nil))
}
