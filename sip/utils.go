package sip

import "strings"

func isASCII(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// ASCIIToLower lowers ASCII letters only. Input without upper case letters is
// returned as is, without allocation.
func ASCIIToLower(s string) string {
	return mapCase(s, 'A', 'Z', 'a'-'A')
}

// ASCIIToUpper is ASCIIToLower counterpart used for request methods.
func ASCIIToUpper(s string) string {
	return mapCase(s, 'a', 'z', -('a' - 'A'))
}

func mapCase(s string, from, to byte, shift int) string {
	first := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= from && s[i] <= to {
			first = i
			break
		}
	}
	if first < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:first])
	for i := first; i < len(s); i++ {
		c := s[i]
		if c >= from && c <= to {
			c = byte(int(c) + shift)
		}
		b.WriteByte(c)
	}
	return b.String()
}

// canonicalLower holds lowered names of headers the token decoder emits most.
var canonicalLower = map[string]string{
	"Via":            "via",
	"From":           "from",
	"To":             "to",
	"Call-ID":        "call-id",
	"CSeq":           "cseq",
	"Contact":        "contact",
	"Max-Forwards":   "max-forwards",
	"Content-Type":   "content-type",
	"Content-Length": "content-length",
	"Route":          "route",
	"Record-Route":   "record-route",
	"User-Agent":     "user-agent",
}

// HeaderToLower lowers header name, names from decoder dictionary avoid allocation.
func HeaderToLower(s string) string {
	if l, ok := canonicalLower[s]; ok {
		return l
	}
	return ASCIIToLower(s)
}

// UriIsSIP matches sip scheme in either case.
func UriIsSIP(s string) bool {
	return s == "sip" || s == "SIP"
}

// MessageShortString dumps one line summary of msg for logs.
func MessageShortString(msg Message) string {
	if msg == nil {
		return "<nil>"
	}
	return msg.Short()
}
