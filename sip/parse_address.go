package sip

import (
	"errors"
	"fmt"
	"strings"
)

type nameAddress struct {
	displayName  string
	uri          *Uri
	headerParams *HeaderParams
}

type addressFSM func(dispName *nameAddress, s string) (addressFSM, string, error)

// ParseAddressValue parses an address - such as from a From, To, or
// Contact header. headerParams can be nil when params are not needed.
// See RFC 3261 section 20.10 for details on parsing an address.
func ParseAddressValue(addressText string, uri *Uri, headerParams *HeaderParams) (displayName string, err error) {
	addressText = strings.TrimSpace(addressText)
	if len(addressText) == 0 {
		return "", errors.New("empty address")
	}

	a := nameAddress{
		uri:          uri,
		headerParams: headerParams,
	}

	state := addressStateDisplayName
	str := addressText
	for state != nil {
		state, str, err = state(&a, str)
		if err != nil {
			return a.displayName, err
		}
	}
	return a.displayName, nil
}

func addressStateDisplayName(a *nameAddress, s string) (addressFSM, string, error) {
	var startQuote, endQuote int = -1, -1
	for i, c := range s {
		if c == '"' {
			if startQuote < 0 {
				startQuote = i
			} else {
				endQuote = i
			}
			continue
		}

		// https://datatracker.ietf.org/doc/html/rfc3261#section-20.10
		// When the header field value contains a display name, the URI
		// including all URI parameters is enclosed in "<" and ">".  If no "<"
		// and ">" are present, all parameters after the URI are header
		// parameters, not URI parameters.
		if c == '<' {
			if startQuote >= 0 && endQuote < 0 {
				continue
			}
			if endQuote > 0 {
				a.displayName = s[startQuote+1 : endQuote]
			} else {
				a.displayName = strings.TrimSpace(s[:i])
			}
			return addressStateUriBracket, s[i+1:], nil
		}

		if c == ';' && startQuote < 0 {
			// uri can be without <> in that case there all after ; are header params
			return addressStateUri, s, nil
		}
	}

	if startQuote >= 0 {
		return nil, s, errors.New("display name without uri")
	}
	return addressStateUri, s, nil
}

func addressStateUriBracket(a *nameAddress, s string) (addressFSM, string, error) {
	if len(s) == 0 {
		return nil, s, errors.New("no URI present")
	}

	for i, c := range s {
		if c == '>' {
			err := ParseUri(s[:i], a.uri)
			return addressStateHeaderParams, s[i+1:], err
		}
	}
	return nil, s, fmt.Errorf("invalid uri, missing end bracket")
}

func addressStateUri(a *nameAddress, s string) (addressFSM, string, error) {
	if len(s) == 0 {
		return nil, s, errors.New("no URI present")
	}

	for i, c := range s {
		if c == ';' {
			err := ParseUri(s[:i], a.uri)
			return addressStateHeaderParams, s[i+1:], err
		}
	}

	// No header params detected
	err := ParseUri(s, a.uri)
	return nil, s, err
}

func addressStateHeaderParams(a *nameAddress, s string) (addressFSM, string, error) {
	s = strings.TrimLeft(s, " \t;")
	if s == "" || a.headerParams == nil {
		return nil, s, nil
	}
	_, err := UnmarshalHeaderParams(s, ';', 0, a.headerParams)
	return nil, s, err
}

// headerParserTo generates ToHeader
func headerParserTo(headerName string, headerText string) (header Header, err error) {
	h := &ToHeader{}
	return h, parseToHeader(headerText, h)
}

func parseToHeader(headerText string, h *ToHeader) error {
	var err error

	h.Params = NewParams()
	h.DisplayName, err = ParseAddressValue(headerText, &h.Address, &h.Params)
	if err != nil {
		return err
	}

	if h.Address.Wildcard {
		// The Wildcard '*' URI is only permitted in Contact headers.
		return fmt.Errorf("wildcard uri not permitted in to: header: %s", headerText)
	}
	return nil
}

// headerParserFrom generates FromHeader
func headerParserFrom(headerName string, headerText string) (header Header, err error) {
	h := &FromHeader{}
	return h, parseFromHeader(headerText, h)
}

func parseFromHeader(headerText string, h *FromHeader) error {
	var err error

	h.Params = NewParams()
	h.DisplayName, err = ParseAddressValue(headerText, &h.Address, &h.Params)
	if err != nil {
		return err
	}

	if h.Address.Wildcard {
		return fmt.Errorf("wildcard uri not permitted in from: header: %s", headerText)
	}
	return nil
}

func headerParserContact(headerName string, headerText string) (header Header, err error) {
	h := ContactHeader{}
	return &h, parseContactHeader(headerText, &h)
}

// parseContactHeader generates ContactHeader
func parseContactHeader(headerText string, h *ContactHeader) error {
	endInd, err := addressListEnd(headerText)

	h.Params = NewParams()
	var e error
	h.DisplayName, e = ParseAddressValue(headerText[:endInd], &h.Address, &h.Params)
	if e != nil {
		return e
	}

	return err
}

func headerParserRoute(headerName string, headerText string) (header Header, err error) {
	h := RouteHeader{}
	return &h, parseRouteAddress(headerText, &h.Address)
}

func headerParserRecordRoute(headerName string, headerText string) (header Header, err error) {
	h := RecordRouteHeader{}
	return &h, parseRouteAddress(headerText, &h.Address)
}

func headerParserReferTo(headerName string, headerText string) (header Header, err error) {
	h := ReferToHeader{Params: NewParams()}
	h.DisplayName, err = ParseAddressValue(headerText, &h.Address, &h.Params)
	return &h, err
}

func headerParserReferredBy(headerName string, headerText string) (header Header, err error) {
	h := ReferredByHeader{Params: NewParams()}
	h.DisplayName, err = ParseAddressValue(headerText, &h.Address, &h.Params)
	return &h, err
}

func parseRouteAddress(headerText string, address *Uri) error {
	endInd, err := addressListEnd(headerText)
	if _, e := ParseAddressValue(headerText[:endInd], address, nil); e != nil {
		return e
	}
	return err
}

// addressListEnd finds end of first address in comma separated list.
// errComaDetected is returned when more addresses follow.
func addressListEnd(headerText string) (int, error) {
	inBrackets := false
	inQuotes := false
	for idx, char := range headerText {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case char == '<':
			inBrackets = true
		case char == '>':
			inBrackets = false
		case char == ',' && !inBrackets:
			return idx, errComaDetected(idx)
		}
	}
	return len(headerText), nil
}
