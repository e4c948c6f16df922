package sip

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Response RFC 3261 - 7.2.
type Response struct {
	MessageData
	status StatusCode
	reason string
}

func NewResponse(
	statusCode StatusCode,
	reason string,
) *Response {
	res := &Response{}
	res.SipVersion = SIPVersion
	res.headers = headers{
		headerOrder: make([]Header, 0),
	}
	res.status = statusCode
	res.reason = reason
	res.body = nil
	res.id = NextMessageID()

	return res
}

func (res *Response) Short() string {
	if res == nil {
		return "<nil>"
	}

	return fmt.Sprintf("response status=%d reason=%s id=%s",
		res.StatusCode(),
		res.Reason(),
		res.ID(),
	)
}

func (res *Response) StatusCode() StatusCode {
	return res.status
}

func (res *Response) Reason() string {
	return res.reason
}

// StartLine returns Response Status Line - RFC 2361 7.2.
func (res *Response) StartLine() string {
	var buffer strings.Builder
	res.StartLineWrite(&buffer)
	return buffer.String()
}

func (res *Response) StartLineWrite(buffer io.StringWriter) {
	statusCode := strconv.Itoa(int(res.StatusCode()))
	buffer.WriteString(res.SipVersion)
	buffer.WriteString(" ")
	buffer.WriteString(statusCode)
	buffer.WriteString(" ")
	buffer.WriteString(res.Reason())
}

func (res *Response) String() string {
	var buffer strings.Builder
	res.StringWrite(&buffer)
	return buffer.String()
}

func (res *Response) StringWrite(buffer io.StringWriter) {
	res.StartLineWrite(buffer)
	buffer.WriteString("\r\n")
	res.headers.StringWrite(buffer)
	buffer.WriteString("\r\n")
	if res.body != nil {
		buffer.WriteString(string(res.body))
	}
}
