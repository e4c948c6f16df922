package token

import (
	"errors"
	"fmt"
)

var (
	ErrTruncatedInput               = errors.New("truncated input")
	ErrUnknownDictionarySignature   = errors.New("unknown dictionary signature")
	ErrMalformedDictionaryReference = errors.New("malformed dictionary reference")
	ErrInvalidHeaderContext         = errors.New("invalid header context")
	ErrUnsupportedStartLine         = errors.New("unsupported start line")
	ErrLazyParseUnsupported         = errors.New("lazy parse unsupported")
	ErrUnsupportedSdpToken          = errors.New("unsupported sdp token")
	ErrMalformedBody                = errors.New("malformed body")

	ErrRegistryFrozen     = errors.New("dictionary registry is frozen")
	ErrDuplicateSignature = errors.New("duplicate dictionary signature")
)

// Stage names decoder state where error happened
type Stage string

const (
	StagePrefix    Stage = "prefix"
	StageStartLine Stage = "start-line"
	StageHeaders   Stage = "headers"
	StageBody      Stage = "body"
)

// DecodeError is returned by Decoder. Err is one of the sentinel errors above,
// possibly wrapped with more detail.
type DecodeError struct {
	Stage  Stage
	Offset int
	// Header is set when error happened inside a header
	Header HeaderType
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Header != HeaderNone {
		return fmt.Sprintf("token decode %s (%s) at offset %d: %v", e.Stage, e.Header, e.Offset, e.Err)
	}
	return fmt.Sprintf("token decode %s at offset %d: %v", e.Stage, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
