package sip

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUriEmpty = errors.New("empty URI")

type uriFSM func(uri *Uri, s string) (uriFSM, string, error)

// ParseUri converts a string representation of a URI into a Uri object.
// Following https://datatracker.ietf.org/doc/html/rfc3261#section-19.1.1
// sip:user:password@host:port;uri-parameters?headers
//
// Schemes other than sip, sips and tel are accepted and kept opaque.
func ParseUri(uriStr string, uri *Uri) (err error) {
	if len(uriStr) == 0 {
		return ErrUriEmpty
	}

	state := uriStateStart
	str := uriStr
	for state != nil {
		state, str, err = state(uri, str)
		if err != nil {
			return
		}
	}
	return
}

func uriStateStart(uri *Uri, s string) (uriFSM, string, error) {
	if s == "*" {
		// Normally this goes under url path, but we set on host
		uri.Host = "*"
		uri.Wildcard = true
		return nil, "", nil
	}

	return uriStateScheme, s, nil
}

func uriStateScheme(uri *Uri, s string) (uriFSM, string, error) {
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return nil, s, fmt.Errorf("missing scheme in uri %q", s)
	}

	scheme := s[:colon]
	for i := 0; i < len(scheme); i++ {
		c := scheme[i]
		if !isASCII(rune(c)) && !(i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.')) {
			return nil, s, fmt.Errorf("invalid scheme %q", scheme)
		}
	}
	rest := s[colon+1:]

	switch {
	case strings.EqualFold(scheme, "sip"):
		uri.Scheme = SCHEME_SIP
	case strings.EqualFold(scheme, "sips"):
		uri.Scheme = SCHEME_SIPS
		uri.Encrypted = true
	case strings.EqualFold(scheme, "tel"):
		uri.Scheme = SCHEME_TEL
		return uriTelNumber, rest, nil
	default:
		uri.Scheme = Scheme(ASCIIToLower(scheme))
		uri.Opaque = rest
		return nil, "", nil
	}

	// Slashes are valid in uri but normally we cut them
	rest, _ = strings.CutPrefix(rest, "//")
	if rest == "" {
		return nil, rest, errors.New("missing host in sip uri")
	}
	return uriStateUser, rest, nil
}

func uriStateUser(uri *Uri, s string) (uriFSM, string, error) {
	var userend int = 0
	for i, c := range s {
		if c == ':' && userend == 0 {
			userend = i
		}

		if c == '@' {
			if userend > 0 {
				uri.User = s[:userend]
				uri.Password = s[userend+1 : i]
			} else {
				uri.User = s[:i]
			}
			return uriStateHost, s[i+1:], nil
		}
	}

	return uriStateHost, s, nil
}

func uriStateHost(uri *Uri, s string) (uriFSM, string, error) {
	// IPv6 reference
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, s, errors.New("unterminated IPv6 reference")
		}
		uri.Host = s[:end+1]
		s = s[end+1:]
		if s == "" {
			return nil, "", nil
		}
		switch s[0] {
		case ':':
			return uriStatePort, s[1:], nil
		case ';':
			return uriStateUriParams, s[1:], nil
		case '?':
			return uriStateHeaders, s[1:], nil
		}
		return nil, s, fmt.Errorf("unexpected %q after host", s[0])
	}

	for i, c := range s {
		switch c {
		case ':':
			uri.Host = s[:i]
			return uriStatePort, s[i+1:], nil
		case ';':
			uri.Host = s[:i]
			return uriStateUriParams, s[i+1:], nil
		case '?':
			uri.Host = s[:i]
			return uriStateHeaders, s[i+1:], nil
		}
	}
	// If no special chars found, it means we are at end
	uri.Host = s
	uri.Wildcard = s == "*"
	return nil, "", nil
}

func uriStatePort(uri *Uri, s string) (uriFSM, string, error) {
	var err error
	for i, c := range s {
		if c == ';' {
			uri.Port, err = parsePort(s[:i])
			return uriStateUriParams, s[i+1:], err
		}

		if c == '?' {
			uri.Port, err = parsePort(s[:i])
			return uriStateHeaders, s[i+1:], err
		}
	}

	uri.Port, err = parsePort(s)
	return nil, s, err
}

func parsePort(s string) (int, error) {
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return int(p), nil
}

func uriStateUriParams(uri *Uri, s string) (uriFSM, string, error) {
	if len(s) == 0 {
		return nil, s, nil
	}
	uri.UriParams = NewParams()
	n, err := UnmarshalHeaderParams(s, ';', '?', &uri.UriParams)
	if err != nil {
		return nil, s, err
	}

	if n >= len(s) || s[n] != '?' {
		return nil, s, nil
	}

	return uriStateHeaders, s[n+1:], nil
}

func uriStateHeaders(uri *Uri, s string) (uriFSM, string, error) {
	uri.Headers = NewParams()
	_, err := UnmarshalHeaderParams(s, '&', 0, &uri.Headers)
	return nil, s, err
}

func uriTelNumber(uri *Uri, s string) (uriFSM, string, error) {
	if s == "" {
		return nil, s, errors.New("empty telephone number")
	}
	for i, c := range s {
		if c == ';' {
			uri.Telephone = s[:i]
			return uriStateUriParams, s[i+1:], nil
		}
	}

	uri.Telephone = s
	return nil, "", nil
}
