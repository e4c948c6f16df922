package token

import (
	"fmt"
	"strconv"

	"github.com/pradhp1999/dhruva-sub011/sip"
)

// TextParser is textual SIP collaborator. Decoder hands it values
// whose final text form is a matter of SIP grammar.
type TextParser interface {
	// FormatDateOrLong renders numeric value of date-or-long header.
	FormatDateOrLong(h HeaderType, v []byte) ([]byte, error)
	// ParseURI checks URI text of generic name-address.
	ParseURI(v []byte) error
}

type sipTextParser struct{}

// DefaultTextParser returns TextParser backed by sip package.
func DefaultTextParser() TextParser {
	return sipTextParser{}
}

func (sipTextParser) FormatDateOrLong(h HeaderType, v []byte) ([]byte, error) {
	n, err := strconv.ParseUint(string(v), 10, 32)
	if h != HeaderDate {
		if err != nil {
			return nil, fmt.Errorf("%s value %q is not a number", h, v)
		}
		return v, nil
	}

	if err != nil {
		// already textual date
		if _, derr := sip.ParseDate(string(v)); derr != nil {
			return nil, fmt.Errorf("date value %q: %w", v, derr)
		}
		return v, nil
	}
	return []byte(sip.FormatDate(int64(n))), nil
}

func (sipTextParser) ParseURI(v []byte) error {
	var uri sip.Uri
	return sip.ParseUri(string(v), &uri)
}
