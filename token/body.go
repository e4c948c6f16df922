package token

import "fmt"

const (
	bodyModeRest  = 0x00
	bodyModeToken = 0x01
)

var contentTypeSDP = []byte("application/sdp")

// decodeBody handles everything after headers.
func (s *decodeState) decodeBody() error {
	if s.c.AtEnd() {
		return nil
	}
	b, err := s.c.Peek()
	if err != nil {
		return err
	}

	switch b {
	case ctxEndHeaders:
		return s.c.Advance(1)

	case ctxSdpDeprecated, ctxSdp:
		if err := s.c.Advance(1); err != nil {
			return err
		}
		if err := s.synthesizeContentType(contentTypeSDP); err != nil {
			return err
		}
		body, err := decodeSDP(s.c, s.dict, b)
		if err != nil {
			return err
		}
		s.l.BodyFound(s.contentType, body)
		return nil

	case ctxBody:
		if err := s.c.Advance(1); err != nil {
			return err
		}
		ct, err := s.token()
		if err != nil {
			return err
		}
		ct = append([]byte(nil), ct...)

		mode, err := s.c.ReadByte()
		if err != nil {
			return err
		}

		var body []byte
		switch mode {
		case bodyModeRest:
			body = s.c.Rest()
			for i, c := range body {
				if c >= 0x80 {
					return fmt.Errorf("%w: non ascii byte 0x%02x at body offset %d", ErrMalformedBody, c, i)
				}
			}
		case bodyModeToken:
			body, err = s.token()
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: body mode 0x%02x", ErrMalformedBody, mode)
		}

		if err := s.synthesizeContentType(ct); err != nil {
			return err
		}
		s.l.BodyFound(ct, body)
		return nil
	}

	// Payload of unknown media can not be decoded, message ends with empty body
	skipped := len(s.c.Rest())
	s.log.Warn().Str("marker", fmt.Sprintf("0x%02x", b)).Int("skipped", skipped).Msg("unrecognized media")
	return nil
}

// synthesizeContentType reports Content-Type header when message did not carry one.
func (s *decodeState) synthesizeContentType(ct []byte) error {
	if s.sawContentType {
		return nil
	}
	s.header = HeaderContentType
	if !s.l.HeaderBegin(HeaderContentType) {
		return fmt.Errorf("%w: header %s", ErrLazyParseUnsupported, HeaderContentType)
	}
	s.sawContentType = true
	s.contentType = append(s.contentType[:0], ct...)
	s.headers++
	s.l.HeaderFound(HeaderContentType, []byte(HeaderContentType.String()), s.contentType, true)
	s.header = HeaderNone
	return nil
}
