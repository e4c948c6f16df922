package token

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// headerHolder describes how header is encoded on wire.
type headerHolder struct {
	typ   HeaderType
	fixed bool
	// variant is selector byte of CSeq and Call-ID fixed formats
	variant    byte
	hasVariant bool
}

var viaTransports = [...]string{"UDP", "TCP", "TLS", "SCTP", "WS", "WSS"}

// Via flag bits. Bits 0-2 select transport.
const (
	viaTransportMask = 0x07
	viaFlagPort      = 0x08
	viaFlagBranch    = 0x10
	viaFlagCookie    = 0x20
	viaFlagRport     = 0x40

	branchCookie = "z9hG4bK"
)

// Digest flag bits in field order
const (
	digestRealm     = 0x01
	digestDomain    = 0x02
	digestNonce     = 0x04
	digestUsername  = 0x08
	digestURI       = 0x10
	digestResponse  = 0x20
	digestAlgorithm = 0x40
	digestFixedURI  = 0x80
)

var digestFields = []struct {
	flag  byte
	name  string
	quote bool
}{
	{digestRealm, "realm", true},
	{digestDomain, "domain", true},
	{digestNonce, "nonce", true},
	{digestUsername, "username", true},
	{digestURI, "uri", true},
	{digestResponse, "response", true},
	{digestAlgorithm, "algorithm", false},
}

const (
	callIDVariantHex    = 0x01
	callIDVariantTokens = 0x02
	cseqVariantShort    = 0x01
	cseqVariantLong     = 0x02
)

// decodeHeaders runs until body marker or end of buffer.
func (s *decodeState) decodeHeaders() error {
	for !s.c.AtEnd() {
		s.header = HeaderNone
		b, err := s.c.Peek()
		if err != nil {
			return err
		}

		var holder headerHolder
		switch {
		case b >= ctxShortcutFirst && b <= ctxShortcutLast:
			h, ok := ShortcutToHeader(b)
			if !ok {
				return fmt.Errorf("%w: undefined shortcut 0x%02x", ErrInvalidHeaderContext, b)
			}
			if err := s.c.Advance(1); err != nil {
				return err
			}
			holder = headerHolder{typ: h, fixed: true}
			if h == HeaderCSeq || h == HeaderCallID {
				s.header = h
				v, err := s.c.ReadByte()
				if err != nil {
					return err
				}
				holder.variant, holder.hasVariant = v, true
			}

		case b == ctxKnownHeader:
			if err := s.c.Advance(1); err != nil {
				return err
			}
			idx, err := s.c.ReadByte()
			if err != nil {
				return err
			}
			h, ok := KnownIndexToHeader(idx)
			if !ok {
				return fmt.Errorf("%w: undefined known header index %d", ErrInvalidHeaderContext, idx)
			}
			holder = headerHolder{typ: h}

		case b == ctxUnknownHeader:
			if err := s.c.Advance(1); err != nil {
				return err
			}
			holder = headerHolder{typ: HeaderUnknown}

		case b >= ctxEndHeaders && b <= ctxBody, b >= ctxMediaFirst && b <= ctxMediaLast:
			return nil

		default:
			return fmt.Errorf("%w: 0x%02x", ErrInvalidHeaderContext, b)
		}

		if err := s.decodeHeader(holder); err != nil {
			return err
		}
	}
	return nil
}

func (s *decodeState) decodeHeader(holder headerHolder) error {
	h := holder.typ
	s.header = h

	if IsBlockedHeader(h) {
		// Keep stream in sync but never deliver
		l := s.l
		s.l = NopListener{}
		_, _, err := s.headerValue(holder)
		s.l = l
		if err != nil {
			return err
		}
		s.log.Debug().Str("header", h.String()).Msg("blocked header dropped")
		return nil
	}

	if !s.l.HeaderBegin(h) {
		return fmt.Errorf("%w: header %s", ErrLazyParseUnsupported, h)
	}

	if h == HeaderUnknown {
		return s.unknownHeader()
	}

	value, valid, err := s.headerValue(holder)
	if err != nil {
		return err
	}

	if h == HeaderContentType {
		s.sawContentType = true
		s.contentType = append(s.contentType[:0], value...)
	}
	s.headers++
	s.l.HeaderFound(h, []byte(h.String()), value, valid)
	return nil
}

// headerValue decodes header value and returns its textual form.
func (s *decodeState) headerValue(holder headerHolder) ([]byte, bool, error) {
	h := holder.typ
	ctx := HeaderContext(h)
	out := make([]byte, 0, 64)

	if !holder.fixed {
		if IsFixedFormatURIHeader(h) {
			return s.genericNameAddr(ctx, out)
		}
		return s.valueWithParams(ctx, out)
	}

	switch h.family() {
	case familyURL:
		flags, err := s.c.ReadByte()
		if err != nil {
			return out, false, err
		}
		out, err = s.fixedNameAddr(ctx, parseURIFlags(flags), out)
		return out, true, err
	case familyCSeq:
		v, err := s.cseq(ctx, holder, out)
		return v, true, err
	case familyCallID:
		v, err := s.callID(ctx, holder, out)
		return v, true, err
	case familyVia:
		v, err := s.via(ctx, out)
		return v, true, err
	case familyMediaType:
		v, err := s.mediaType(ctx, out)
		return v, true, err
	case familyDateOrLong:
		return s.dateOrLong(ctx, h, out)
	case familyDigest:
		v, err := s.digest(ctx, out)
		return v, true, err
	case familyString:
		v, err := s.element(ctx, ElementValue)
		return append(out, v...), true, err
	}
	return s.valueWithParams(ctx, out)
}

// valueWithParams is generic format and token list family: value token and inline params.
func (s *decodeState) valueWithParams(ctx Context, out []byte) ([]byte, bool, error) {
	v, err := s.element(ctx, ElementValue)
	if err != nil {
		return out, false, err
	}
	out = append(out, v...)
	out, err = s.inlineParams(ctx, ElementHeader, out, paramSep)
	return out, true, err
}

func (s *decodeState) unknownHeader() error {
	ctx := HeaderContext(HeaderUnknown)
	name, err := s.token()
	if err != nil {
		return err
	}
	if len(name) == 0 {
		return fmt.Errorf("%w: unknown header without name", ErrInvalidHeaderContext)
	}
	// name may alias learned literal, keep own copy while value decodes
	name = append([]byte(nil), name...)

	value, _, err := s.valueWithParams(ctx, nil)
	if err != nil {
		return err
	}
	s.headers++
	s.l.UnknownHeaderFound(name, value, true)
	return nil
}

// cseq: seq METHOD
func (s *decodeState) cseq(ctx Context, holder headerHolder, out []byte) ([]byte, error) {
	if err := s.begin(ctx, ElementSeq); err != nil {
		return out, err
	}
	start := len(out)
	switch holder.variant {
	case cseqVariantShort:
		v, err := s.c.ReadUint16()
		if err != nil {
			return out, err
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	case cseqVariantLong:
		v, err := s.c.ReadUint32()
		if err != nil {
			return out, err
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	default:
		return out, fmt.Errorf("%w: cseq variant 0x%02x", ErrInvalidHeaderContext, holder.variant)
	}
	s.l.ElementFound(ctx, ElementSeq, out[start:], true)

	method, err := s.element(ctx, ElementMethod)
	if err != nil {
		return out, err
	}
	out = append(out, ' ')
	return append(out, method...), nil
}

// callID: id@host
func (s *decodeState) callID(ctx Context, holder headerHolder, out []byte) ([]byte, error) {
	if err := s.begin(ctx, ElementValue); err != nil {
		return out, err
	}
	switch holder.variant {
	case callIDVariantHex:
		raw, err := s.c.ReadBytes(4)
		if err != nil {
			return out, err
		}
		out = hex.AppendEncode(out, raw)
	case callIDVariantTokens:
		id, err := s.token()
		if err != nil {
			return out, err
		}
		out = append(out, id...)
	default:
		return out, fmt.Errorf("%w: call-id variant 0x%02x", ErrInvalidHeaderContext, holder.variant)
	}

	suffix, err := s.token()
	if err != nil {
		return out, err
	}
	out = append(out, '@')
	out = append(out, suffix...)
	s.l.ElementFound(ctx, ElementValue, out, true)
	return out, nil
}

// via: SIP/2.0/UDP host:port;branch=z9hG4bK..;rport
func (s *decodeState) via(ctx Context, out []byte) ([]byte, error) {
	flags, err := s.c.ReadByte()
	if err != nil {
		return out, err
	}

	t := int(flags & viaTransportMask)
	if t >= len(viaTransports) {
		return out, fmt.Errorf("%w: via transport %d", ErrInvalidHeaderContext, t)
	}
	transport := viaTransports[t]
	if err := s.begin(ctx, ElementTransport); err != nil {
		return out, err
	}
	s.l.ElementFound(ctx, ElementTransport, []byte(transport), true)

	out = append(out, sipVersion...)
	out = append(out, '/')
	out = append(out, transport...)
	out = append(out, ' ')

	host, err := s.element(ctx, ElementHost)
	if err != nil {
		return out, err
	}
	out = append(out, host...)

	if flags&viaFlagPort != 0 {
		if err := s.begin(ctx, ElementPort); err != nil {
			return out, err
		}
		port, err := s.c.ReadUint16()
		if err != nil {
			return out, err
		}
		start := len(out) + 1
		out = append(out, ':')
		out = strconv.AppendUint(out, uint64(port), 10)
		s.l.ElementFound(ctx, ElementPort, out[start:], true)
	}

	if flags&viaFlagBranch != 0 {
		if err := s.begin(ctx, ElementBranch); err != nil {
			return out, err
		}
		v, err := s.token()
		if err != nil {
			return out, err
		}
		out = append(out, ";branch="...)
		start := len(out)
		if flags&viaFlagCookie != 0 {
			out = append(out, branchCookie...)
		}
		out = append(out, v...)
		s.l.ElementFound(ctx, ElementBranch, out[start:], true)
		s.l.ParameterFound(ctx, ElementHeader, []byte("branch"), out[start:], true)
	}

	if flags&viaFlagRport != 0 {
		s.l.ParameterFound(ctx, ElementHeader, []byte("rport"), nil, true)
		out = append(out, ";rport"...)
	}

	return s.inlineParams(ctx, ElementHeader, out, paramSep)
}

// mediaType: type/subtype;params
func (s *decodeState) mediaType(ctx Context, out []byte) ([]byte, error) {
	typ, err := s.element(ctx, ElementType)
	if err != nil {
		return out, err
	}
	out = append(out, typ...)

	sub, err := s.element(ctx, ElementSubtype)
	if err != nil {
		return out, err
	}
	out = append(out, '/')
	out = append(out, sub...)

	return s.inlineParams(ctx, ElementHeader, out, paramSep)
}

// dateOrLong renders single numeric token through textual collaborator.
// Value it refuses is kept raw and marked invalid.
func (s *decodeState) dateOrLong(ctx Context, h HeaderType, out []byte) ([]byte, bool, error) {
	if err := s.begin(ctx, ElementValue); err != nil {
		return out, false, err
	}
	raw, err := s.token()
	if err != nil {
		return out, false, err
	}

	v, ferr := s.text.FormatDateOrLong(h, raw)
	if ferr != nil {
		s.log.Debug().Err(ferr).Str("header", h.String()).Msg("value kept raw")
		s.l.ElementFound(ctx, ElementValue, raw, false)
		return append(out, raw...), false, nil
	}
	s.l.ElementFound(ctx, ElementValue, v, true)
	return append(out, v...), true, nil
}

// digest: Digest realm="..", nonce="..", algorithm=MD5
func (s *decodeState) digest(ctx Context, out []byte) ([]byte, error) {
	flags, err := s.c.ReadByte()
	if err != nil {
		return out, err
	}
	if flags&digestFixedURI != 0 {
		flags |= digestURI
	}

	if err := s.begin(ctx, ElementAuthScheme); err != nil {
		return out, err
	}
	s.l.ElementFound(ctx, ElementAuthScheme, []byte("Digest"), true)
	out = append(out, "Digest"...)

	sep := " "
	for _, f := range digestFields {
		if flags&f.flag == 0 {
			continue
		}

		var v []byte
		if f.flag == digestURI && flags&digestFixedURI != 0 {
			uf, err := s.c.ReadByte()
			if err != nil {
				return out, err
			}
			v, err = s.fixedURI(ctx, ElementURI, parseURIFlags(uf), nil)
			if err != nil {
				return out, err
			}
		} else {
			v, err = s.token()
			if err != nil {
				return out, fmt.Errorf("digest %s: %w", f.name, err)
			}
		}
		s.l.ParameterFound(ctx, ElementAuthScheme, []byte(f.name), v, true)

		out = append(out, sep...)
		out = append(out, f.name...)
		out = append(out, '=')
		if f.quote {
			out = appendQuoted(out, v)
		} else {
			out = append(out, v...)
		}
		sep = authParamSep
	}

	params, err := s.inlineParams(ctx, ElementAuthScheme, nil, authParamSep)
	if err != nil {
		return out, err
	}
	if len(params) > 0 {
		if sep == " " {
			// first auth param follows scheme without comma
			params = params[len(authParamSep):]
			out = append(out, ' ')
		}
		out = append(out, params...)
	}
	return out, nil
}
