package sip

import (
	"fmt"
	"strconv"
	"strings"
)

// A HeaderParser is any function that turns raw header data into one Header.
// Parser returns errComaDetected when more values follow in same header line.
type HeaderParser func(headerName string, headerText string) (Header, error)

type HeadersParser map[string]HeaderParser

type errComaDetected int

func (e errComaDetected) Error() string {
	return "comma detected"
}

// This needs to kept minimalistic in order to avoid overhead of parsing
// Headers compact form
// b	Referred-By	-refer-	"by"
// c	Content-Type	RFC 3261
// f	From	RFC 3261
// i	Call-ID	RFC 3261
// l	Content-Length	RFC 3261
// m	Contact	RFC 3261	"moved"
// r	Refer-To	-refer-
// t	To	RFC 3261
// v	Via	RFC 3261
var headersParsers = HeadersParser{
	"c":              headerParserContentType,
	"content-type":   headerParserContentType,
	"f":              headerParserFrom,
	"from":           headerParserFrom,
	"to":             headerParserTo,
	"t":              headerParserTo,
	"contact":        headerParserContact,
	"m":              headerParserContact,
	"i":              headerParserCallId,
	"call-id":        headerParserCallId,
	"cseq":           headerParserCSeq,
	"via":            headerParserVia,
	"v":              headerParserVia,
	"max-forwards":   headerParserMaxForwards,
	"expires":        headerParserExpires,
	"content-length": headerParserContentLength,
	"l":              headerParserContentLength,
	"route":          headerParserRoute,
	"record-route":   headerParserRecordRoute,
	"refer-to":       headerParserReferTo,
	"r":              headerParserReferTo,
	"referred-by":    headerParserReferredBy,
	"user-agent":     headerParserUserAgent,
	"b":              headerParserReferredBy,
}

// DefaultHeadersParser returns minimal version header parser.
// It can be extended or overwritten.
func DefaultHeadersParser() HeadersParser {
	return headersParsers
}

// ParseHeaderLine parses "Name: value" line and appends result to out.
func (headersParser HeadersParser) ParseHeaderLine(out []Header, line string) ([]Header, error) {
	colonIdx := strings.IndexByte(line, ':')
	if colonIdx == -1 {
		return out, fmt.Errorf("field name with no value in header: %q", line)
	}

	return headersParser.ParseHeader(out, line[:colonIdx], line[colonIdx+1:])
}

// ParseHeader parses header value under given name and appends it to out.
// Comma separated values of multi value headers are appended as separate headers.
// Headers without registered parser are kept as generic headers.
func (headersParser HeadersParser) ParseHeader(out []Header, name string, value string) ([]Header, error) {
	fieldName := strings.TrimSpace(name)
	fieldText := strings.TrimSpace(value)
	if fieldName == "" {
		return out, fmt.Errorf("empty header name")
	}

	headerParser, ok := headersParser[HeaderToLower(fieldName)]
	if !ok {
		// We do only forwarding on this with trimmed space. Validation and parsing is required by user
		return append(out, NewHeader(fieldName, fieldText)), nil
	}

	for {
		h, err := headerParser(fieldName, fieldText)
		if err == nil {
			return append(out, h), nil
		}

		commaErr, ok := err.(errComaDetected)
		if !ok {
			return out, fmt.Errorf("parse %s header: %w", fieldName, err)
		}
		out = append(out, h)
		fieldText = strings.TrimSpace(fieldText[commaErr+1:])
	}
}

func headerParserCallId(headerName string, headerText string) (header Header, err error) {
	var callId CallIDHeader
	return &callId, parseCallIdHeader(headerText, &callId)
}

// parseCallIdHeader parses Call-ID header
func parseCallIdHeader(headerText string, callId *CallIDHeader) error {
	headerText = strings.TrimSpace(headerText)
	if len(headerText) == 0 {
		return fmt.Errorf("empty Call-ID body")
	}
	if strings.ContainsAny(headerText, abnfWs) {
		return fmt.Errorf("whitespace in Call-ID %q", headerText)
	}

	*callId = CallIDHeader(headerText)
	return nil
}

func headerParserMaxForwards(headerName string, headerText string) (header Header, err error) {
	var maxfwd MaxForwardsHeader
	val, err := strconv.ParseUint(headerText, 10, 32)
	maxfwd = MaxForwardsHeader(val)
	return &maxfwd, err
}

func headerParserExpires(headerName string, headerText string) (header Header, err error) {
	var expires ExpiresHeader
	val, err := strconv.ParseUint(headerText, 10, 32)
	expires = ExpiresHeader(val)
	return &expires, err
}

func headerParserCSeq(headerName string, headerText string) (headers Header, err error) {
	var cseq CSeqHeader
	return &cseq, parseCSeqHeader(headerText, &cseq)
}

// parseCSeqHeader parses CSeq header
func parseCSeqHeader(headerText string, cseq *CSeqHeader) error {
	ind := strings.IndexAny(headerText, abnfWs)
	if ind < 1 || len(headerText)-ind < 2 {
		return fmt.Errorf("CSeq field should have precisely one whitespace section: '%s'", headerText)
	}

	seqno, err := strconv.ParseUint(headerText[:ind], 10, 32)
	if err != nil {
		return err
	}

	if seqno > maxCseq {
		return fmt.Errorf("invalid CSeq %d: exceeds maximum permitted value 2**31 - 1", seqno)
	}

	cseq.SeqNo = uint32(seqno)
	cseq.MethodName = RequestMethod(strings.TrimSpace(headerText[ind+1:]))
	return nil
}

func headerParserContentLength(headerName string, headerText string) (header Header, err error) {
	var contentLength ContentLengthHeader
	value, err := strconv.ParseUint(strings.TrimSpace(headerText), 10, 32)
	contentLength = ContentLengthHeader(value)
	return &contentLength, err
}

// headerParserContentType parses ContentType header
func headerParserContentType(headerName string, headerText string) (headers Header, err error) {
	var contentType ContentTypeHeader
	headerText = strings.TrimSpace(headerText)
	if len(headerText) == 0 {
		return &contentType, fmt.Errorf("empty Content-Type body")
	}

	contentType = ContentTypeHeader(headerText)
	return &contentType, nil
}
