package sip

import (
	"fmt"
	"io"
	"strings"
)

// UserAgentHeader is User-Agent header. Value is kept as product list text.
type UserAgentHeader string

func (h *UserAgentHeader) String() string {
	var buffer strings.Builder
	h.StringWrite(&buffer)
	return buffer.String()
}

func (h *UserAgentHeader) StringWrite(buffer io.StringWriter) {
	buffer.WriteString(h.Name())
	buffer.WriteString(": ")
	h.valueStringWrite(buffer)
}

func (h *UserAgentHeader) valueStringWrite(buffer io.StringWriter) {
	buffer.WriteString(h.Value())
}

func (h *UserAgentHeader) Name() string { return "User-Agent" }

func (h *UserAgentHeader) Value() string {
	if h == nil {
		return ""
	}
	return string(*h)
}

func (h *UserAgentHeader) headerClone() Header {
	c := *h
	return &c
}

func headerParserUserAgent(headerName string, headerText string) (header Header, err error) {
	ua := UserAgentHeader(strings.TrimSpace(headerText))
	if ua == "" {
		return &ua, fmt.Errorf("empty User-Agent body")
	}
	return &ua, nil
}
