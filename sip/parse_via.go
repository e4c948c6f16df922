package sip

import (
	"errors"
	"strings"
)

func headerParserVia(headerName string, headerText string) (header Header, err error) {
	h := ViaHeader{}
	return &h, parseViaHeader(headerText, &h)
}

// parseViaHeader parses ViaHeader
// Via may contain a comma-separated list. Only first hop is parsed and
// errComaDetected tells where the next one starts.
func parseViaHeader(headerText string, h *ViaHeader) error {
	h.Params = NewParams()

	state := viaStateProtocol
	str := headerText
	var ind, nextInd int
	var err error
	for state != nil {
		state, nextInd, err = state(h, str[ind:])
		if err != nil {
			if coma, ok := err.(errComaDetected); ok {
				err = errComaDetected(ind + int(coma))
			}
			return err
		}
		ind += nextInd
	}
	return nil
}

type viaFSM func(h *ViaHeader, s string) (viaFSM, int, error)

func viaStateProtocol(h *ViaHeader, s string) (viaFSM, int, error) {
	ind := strings.IndexRune(s, '/')
	if ind < 0 {
		return nil, 0, errors.New("malformed protocol name in Via header")
	}
	h.ProtocolName = strings.TrimSpace(s[:ind])
	return viaStateProtocolVersion, ind + 1, nil
}

func viaStateProtocolVersion(h *ViaHeader, s string) (viaFSM, int, error) {
	ind := strings.IndexRune(s, '/')
	if ind < 0 {
		return nil, 0, errors.New("malformed protocol version in Via header")
	}
	h.ProtocolVersion = strings.TrimSpace(s[:ind])
	return viaStateProtocolTransport, ind + 1, nil
}

func viaStateProtocolTransport(h *ViaHeader, s string) (viaFSM, int, error) {
	ind := strings.IndexAny(s, abnfWs)
	if ind < 0 {
		return nil, 0, errors.New("malformed transport in Via header")
	}
	h.Transport = strings.TrimSpace(s[:ind])
	return viaStateHost, ind + 1, nil
}

func viaStateHost(h *ViaHeader, s string) (viaFSM, int, error) {
	colonInd := -1
	endIndex := len(s)
	coma := -1
loop:
	for i, c := range s {
		switch c {
		case ';':
			endIndex = i
			break loop
		case ',':
			endIndex = i
			coma = i
			break loop
		case ':':
			colonInd = i
		case ']':
			// IPv6 reference, colons before are part of host
			colonInd = -1
		}
	}

	if colonInd > 0 {
		port, err := parsePort(strings.TrimSpace(s[colonInd+1 : endIndex]))
		if err != nil {
			return nil, 0, err
		}
		h.Port = port
		h.Host = strings.TrimSpace(s[:colonInd])
	} else {
		h.Host = strings.TrimSpace(s[:endIndex])
	}

	if h.Host == "" {
		return nil, 0, errors.New("missing host in Via header")
	}

	if coma >= 0 {
		return nil, 0, errComaDetected(coma)
	}

	if endIndex == len(s) {
		return nil, 0, nil
	}

	return viaStateParams, endIndex + 1, nil
}

func viaStateParams(h *ViaHeader, s string) (viaFSM, int, error) {
	n, err := UnmarshalHeaderParams(s, ';', ',', &h.Params)
	if err != nil {
		return nil, 0, err
	}
	if n < len(s) && s[n] == ',' {
		return nil, 0, errComaDetected(n)
	}
	return nil, 0, nil
}
