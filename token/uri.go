package token

import "strconv"

// URI flag byte bits
const (
	uriFlagDisplay      = 0x01
	uriFlagTwoPartUser  = 0x02
	uriFlagTag          = 0x04
	uriFlagParams       = 0x08
	uriFlagSchemeMask   = 0x30
	uriFlagPort         = 0x40
	uriFlagHeaderParams = 0x80
)

type uriScheme byte

const (
	schemeSIP   uriScheme = 0x00
	schemeTel   uriScheme = 0x10
	schemeOther uriScheme = 0x20
	schemeSIPS  uriScheme = 0x30
)

func (s uriScheme) String() string {
	switch s {
	case schemeSIP:
		return "sip"
	case schemeSIPS:
		return "sips"
	case schemeTel:
		return "tel"
	}
	return ""
}

// uriFlags is decoded URI/name-address flag byte.
type uriFlags struct {
	display      bool
	twoPartUser  bool
	tag          bool
	uriParams    bool
	port         bool
	headerParams bool
	scheme       uriScheme
}

func parseURIFlags(b byte) uriFlags {
	return uriFlags{
		display:      b&uriFlagDisplay != 0,
		twoPartUser:  b&uriFlagTwoPartUser != 0,
		tag:          b&uriFlagTag != 0,
		uriParams:    b&uriFlagParams != 0,
		port:         b&uriFlagPort != 0,
		headerParams: b&uriFlagHeaderParams != 0,
		scheme:       uriScheme(b & uriFlagSchemeMask),
	}
}

// fixedNameAddr decodes name-address in fixed format, flag byte already read.
//
//	"display" <uri>;tag=x;param=y
func (s *decodeState) fixedNameAddr(ctx Context, f uriFlags, out []byte) ([]byte, error) {
	if f.display {
		v, err := s.element(ctx, ElementDisplayName)
		if err != nil {
			return out, err
		}
		if len(v) > 0 {
			out = appendQuoted(out, v)
			out = append(out, ' ')
		}
	}

	out = append(out, '<')
	out, err := s.fixedURI(ctx, ElementURI, f, out)
	if err != nil {
		return out, err
	}
	out = append(out, '>')

	if f.tag {
		tag, err := s.token()
		if err != nil {
			return out, err
		}
		s.l.ParameterFound(ctx, ElementHeader, []byte("tag"), tag, true)
		out = appendParam(out, paramSep, []byte("tag"), tag)
	}

	if f.headerParams {
		out, err = s.countedParams(ctx, ElementHeader, out, paramSep)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// fixedURI decodes URI part selected by flags and reports it as element e.
func (s *decodeState) fixedURI(ctx Context, e ElementID, f uriFlags, out []byte) ([]byte, error) {
	if err := s.begin(ctx, e); err != nil {
		return out, err
	}
	start := len(out)

	var err error
	switch f.scheme {
	case schemeSIP, schemeSIPS:
		out, err = s.sipURI(ctx, f, out)
	case schemeTel:
		out = append(out, "tel:"...)
		var number []byte
		number, err = s.element(ctx, ElementUser)
		out = append(out, number...)
	default:
		var scheme, opaque []byte
		scheme, err = s.element(ctx, ElementScheme)
		if err != nil {
			return out, err
		}
		opaque, err = s.token()
		out = append(out, scheme...)
		out = append(out, ':')
		out = append(out, opaque...)
	}
	if err != nil {
		return out, err
	}

	if f.uriParams {
		out, err = s.countedParams(ctx, e, out, paramSep)
		if err != nil {
			return out, err
		}
	}

	s.l.ElementFound(ctx, e, out[start:], true)
	return out, nil
}

func (s *decodeState) sipURI(ctx Context, f uriFlags, out []byte) ([]byte, error) {
	scheme := []byte(f.scheme.String())
	if err := s.begin(ctx, ElementScheme); err != nil {
		return out, err
	}
	s.l.ElementFound(ctx, ElementScheme, scheme, true)
	out = append(out, scheme...)
	out = append(out, ':')

	// Empty user token means URI has no user part
	user, err := s.token()
	if err != nil {
		return out, err
	}
	userStart := len(out)
	out = append(out, user...)
	if f.twoPartUser {
		second, err := s.token()
		if err != nil {
			return out, err
		}
		out = append(out, '.')
		out = append(out, second...)
	}
	if len(out) > userStart {
		if err := s.begin(ctx, ElementUser); err != nil {
			return out, err
		}
		s.l.ElementFound(ctx, ElementUser, out[userStart:], true)
		out = append(out, '@')
	}

	host, err := s.element(ctx, ElementHost)
	if err != nil {
		return out, err
	}
	out = append(out, host...)

	if f.port {
		if err := s.begin(ctx, ElementPort); err != nil {
			return out, err
		}
		port, err := s.c.ReadUint16()
		if err != nil {
			return out, err
		}
		portStart := len(out) + 1
		out = append(out, ':')
		out = strconv.AppendUint(out, uint64(port), 10)
		s.l.ElementFound(ctx, ElementPort, out[portStart:], true)
	}
	return out, nil
}

// genericNameAddr decodes URL header in generic format.
// Returns false validity when URI did not pass textual parser.
func (s *decodeState) genericNameAddr(ctx Context, out []byte) ([]byte, bool, error) {
	b, err := s.c.Peek()
	if err != nil {
		return out, false, err
	}

	if ContextChangeOf(b) != ChangeNameAddr {
		v, err := s.element(ctx, ElementValue)
		if err != nil {
			return out, false, err
		}
		out = append(out, v...)
		out, err = s.inlineParams(ctx, ElementHeader, out, paramSep)
		return out, true, err
	}

	if err := s.c.Advance(1); err != nil {
		return out, false, err
	}

	if b == ctxNameAddr {
		display, err := s.element(ctx, ElementDisplayName)
		if err != nil {
			return out, false, err
		}
		if len(display) > 0 {
			out = appendQuoted(out, display)
			out = append(out, ' ')
		}
	}

	if err := s.begin(ctx, ElementURI); err != nil {
		return out, false, err
	}
	uri, err := s.token()
	if err != nil {
		return out, false, err
	}
	valid := true
	if err := s.text.ParseURI(uri); err != nil {
		s.log.Debug().Err(err).Str("header", ctx.String()).Msg("uri did not parse")
		valid = false
	}
	s.l.ElementFound(ctx, ElementURI, uri, valid)

	out = append(out, '<')
	out = append(out, uri...)
	out = append(out, '>')

	out, err = s.inlineParams(ctx, ElementHeader, out, paramSep)
	return out, valid, err
}
