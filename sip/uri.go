package sip

import (
	"io"
	"strconv"
	"strings"
)

type Scheme string

const (
	SCHEME_SIP  Scheme = "sip"
	SCHEME_SIPS Scheme = "sips"
	SCHEME_TEL  Scheme = "tel"
)

// Uri is parsed form of
// sip:user:password@host:port;uri-parameters?headers
// tel:number;params
// or any other scheme:opaque, which is kept as is.
type Uri struct {
	// The scheme part of the URI
	Scheme Scheme

	// True if and only if the URI is a SIPS URI.
	Encrypted bool
	Wildcard  bool

	// The user part of the URI: the 'joe' in sip:joe@bloggs.com
	User string

	// The password field of the URI. This is represented in the URI as joe:hunter2@bloggs.com.
	Password string

	// The host part of the URI. This can be a domain, or a string representation of an IP address.
	Host string

	// The port part of the URI. This is optional, and can be empty.
	Port int

	// The telephone-subscriber part of the tel: URI.
	// https://datatracker.ietf.org/doc/html/rfc3966#section-3
	Telephone string

	// Opaque holds everything after the colon for schemes other than sip, sips and tel.
	Opaque string

	// Any parameters associated with the URI.
	// These appear as a semicolon-separated list of key=value pairs following the host[:port] part.
	UriParams HeaderParams

	// Any headers to be included on requests constructed from this URI.
	// These appear as a '&'-separated list at the end of the URI, introduced by '?'.
	Headers HeaderParams
}

// IsSIP is true for sip and sips schemes.
func (uri *Uri) IsSIP() bool {
	return uri.Scheme == SCHEME_SIP || uri.Scheme == SCHEME_SIPS
}

// Generates the string representation of a SipUri struct.
func (uri *Uri) String() string {
	var buffer strings.Builder
	uri.StringWrite(&buffer)

	return buffer.String()
}

// StringWrite writes uri string to buffer
func (uri *Uri) StringWrite(buffer io.StringWriter) {
	if uri.Wildcard {
		buffer.WriteString("*")
		return
	}

	buffer.WriteString(string(uri.Scheme))
	buffer.WriteString(":")

	switch {
	case uri.Scheme == SCHEME_TEL:
		buffer.WriteString(uri.Telephone)
	case !uri.IsSIP():
		buffer.WriteString(uri.Opaque)
		return
	default:
		if uri.User != "" {
			buffer.WriteString(uri.User)
			if uri.Password != "" {
				buffer.WriteString(":")
				buffer.WriteString(uri.Password)
			}
			buffer.WriteString("@")
		}

		buffer.WriteString(uri.Host)

		if uri.Port > 0 {
			buffer.WriteString(":")
			buffer.WriteString(strconv.Itoa(uri.Port))
		}
	}

	if uri.UriParams.Length() > 0 {
		buffer.WriteString(";")
		uri.UriParams.ToStringWrite(';', buffer)
	}

	if uri.Headers.Length() > 0 {
		buffer.WriteString("?")
		uri.Headers.ToStringWrite('&', buffer)
	}
}

// Clone
func (uri *Uri) Clone() *Uri {
	c := *uri
	if uri.UriParams != nil {
		c.UriParams = uri.UriParams.Clone()
	}
	if uri.Headers != nil {
		c.Headers = uri.Headers.Clone()
	}
	return &c
}

// IsEncrypted returns true if uri is SIPS uri
func (uri *Uri) IsEncrypted() bool {
	return uri.Encrypted
}

// Endpoint is uri user identifier. user@host[:port]
func (uri *Uri) Endpoint() string {
	if !uri.IsSIP() {
		return ""
	}
	addr := uri.User + "@" + uri.Host
	if uri.Port > 0 {
		addr += ":" + strconv.Itoa(uri.Port)
	}
	return addr
}

// HostPort represents host:port part
func (uri *Uri) HostPort() string {
	if !uri.IsSIP() {
		return ""
	}
	if uri.Port == 0 {
		return uri.Host
	}
	return uri.Host + ":" + strconv.Itoa(uri.Port)
}
