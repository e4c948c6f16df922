package token

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sipVersion = "SIP/2.0"

// Decoder turns token encoded SIP messages into listener events.
// It is safe for concurrent use. State of single message lives in decode call.
type Decoder struct {
	log      zerolog.Logger
	registry *Registry
	text     TextParser
	metrics  *Metrics
}

// DecoderOption are addition option for NewDecoder. Check WithDecoder...
type DecoderOption func(d *Decoder)

// WithDecoderLogger allows customizing decoder logger
func WithDecoderLogger(logger zerolog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.log = logger
	}
}

// WithRegistry sets dictionaries decoder can select by signature.
// Registry is frozen by NewDecoder.
func WithRegistry(r *Registry) DecoderOption {
	return func(d *Decoder) {
		d.registry = r
	}
}

// WithTextParser replaces textual collaborator used for dates and URI checks
func WithTextParser(p TextParser) DecoderOption {
	return func(d *Decoder) {
		d.text = p
	}
}

// WithMetrics enables decode metrics
func WithMetrics(m *Metrics) DecoderOption {
	return func(d *Decoder) {
		d.metrics = m
	}
}

func NewDecoder(options ...DecoderOption) *Decoder {
	d := &Decoder{
		log:  log.Logger.With().Str("caller", "token.Decoder").Logger(),
		text: DefaultTextParser(),
	}

	for _, o := range options {
		o(d)
	}

	if d.registry == nil {
		d.registry = DefaultRegistry()
	}
	d.registry.Freeze()
	return d
}

var (
	defaultDecoder     *Decoder
	defaultDecoderOnce sync.Once
)

// Decode decodes whole buf with default decoder.
func Decode(buf []byte, l Listener) error {
	defaultDecoderOnce.Do(func() {
		defaultDecoder = NewDecoder()
	})
	return defaultDecoder.Decode(buf, 0, len(buf), l)
}

// Decode decodes message in buf[off:off+n] and pushes events to l.
// On error events already delivered stay delivered and MessageFound is not called.
func (d *Decoder) Decode(buf []byte, off, n int, l Listener) error {
	c, err := NewCursor(buf, off, n)
	if err != nil {
		return &DecodeError{Stage: StagePrefix, Err: err}
	}

	s := decodeState{
		c:    c,
		l:    l,
		text: d.text,
		log:  d.log,
	}

	start := time.Now()
	err = s.decode(d.registry)
	d.metrics.observe(err, time.Since(start), s.headers)
	if err != nil {
		d.log.Debug().Err(err).Int("size", n).Msg("token decode failed")
	}
	return err
}

// decodeState holds state of single message decode.
type decodeState struct {
	c    *Cursor
	dict *SessionDictionary
	l    Listener
	text TextParser
	log  zerolog.Logger

	// header being decoded, for error reporting
	header         HeaderType
	stage          Stage
	sawContentType bool
	contentType    []byte
	headers        int
}

func (s *decodeState) fail(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{
		Stage:  s.stage,
		Offset: s.c.Offset(),
		Header: s.header,
		Err:    err,
	}
}

func (s *decodeState) decode(reg *Registry) error {
	s.stage = StagePrefix
	info, err := s.decodePrefix(reg)
	if err != nil {
		return s.fail(err)
	}

	s.stage = StageStartLine
	rec := &elementRecorder{}
	s.l, rec.l = rec, s.l
	err = s.decodeStartLine(&info)
	s.l = rec.l
	if err != nil {
		return s.fail(err)
	}

	s.l.MessageBegin(info)
	rec.replay()

	s.stage = StageHeaders
	if err := s.decodeHeaders(); err != nil {
		return s.fail(err)
	}
	s.header = HeaderNone

	s.stage = StageBody
	if err := s.decodeBody(); err != nil {
		return s.fail(err)
	}

	s.l.MessageFound(true)
	return nil
}

func (s *decodeState) decodePrefix(reg *Registry) (MessageInfo, error) {
	info := MessageInfo{Signature: DefaultSignature}

	b, err := s.c.Peek()
	if err != nil {
		return info, err
	}

	switch b {
	case ctxPrefixDefault:
		if err := s.c.Advance(1); err != nil {
			return info, err
		}
	case ctxPrefixExplicit:
		if err := s.c.Advance(1); err != nil {
			return info, err
		}
		sig, err := s.c.ReadUint16()
		if err != nil {
			return info, err
		}
		id, err := s.c.ReadUint16()
		if err != nil {
			return info, err
		}
		info.Signature = sig
		info.MessageID = id
		info.ExplicitPrefix = true
	}

	dict, err := reg.Lookup(info.Signature)
	if err != nil {
		return info, err
	}
	info.DictionaryName = dict.Name
	s.dict = NewSessionDictionary(dict)
	return info, nil
}

func (s *decodeState) decodeStartLine(info *MessageInfo) error {
	b, err := s.c.ReadByte()
	if err != nil {
		return err
	}

	ctx := ContextStartLine
	info.Version = sipVersion
	switch b {
	case ctxInvite, ctxRequest:
		info.Request = true
		if b == ctxInvite {
			info.Method = "INVITE"
			if err := s.begin(ctx, ElementMethod); err != nil {
				return err
			}
			s.l.ElementFound(ctx, ElementMethod, []byte(info.Method), true)
		} else {
			method, err := s.element(ctx, ElementMethod)
			if err != nil {
				return err
			}
			if len(method) == 0 {
				return fmt.Errorf("%w: empty method", ErrUnsupportedStartLine)
			}
			info.Method = string(method)
		}

		flags, err := s.c.ReadByte()
		if err != nil {
			return err
		}
		// Request URI carries no name-address parts
		f := parseURIFlags(flags)
		f.display, f.tag, f.headerParams = false, false, false
		uri, err := s.fixedURI(ctx, ElementRequestURI, f, nil)
		if err != nil {
			return err
		}
		info.RequestURI = string(uri)

	case ctxResponse:
		if err := s.begin(ctx, ElementStatusCode); err != nil {
			return err
		}
		code, err := s.c.ReadUint16()
		if err != nil {
			return err
		}
		info.StatusCode = code
		s.l.ElementFound(ctx, ElementStatusCode, strconv.AppendUint(nil, uint64(code), 10), true)

		reason, err := s.element(ctx, ElementReason)
		if err != nil {
			return err
		}
		info.Reason = string(reason)

	default:
		return fmt.Errorf("%w: 0x%02x", ErrUnsupportedStartLine, b)
	}

	if err := s.begin(ctx, ElementVersion); err != nil {
		return err
	}
	s.l.ElementFound(ctx, ElementVersion, []byte(info.Version), true)
	return nil
}

// token reads single data token
func (s *decodeState) token() ([]byte, error) {
	return s.dict.Get(s.c)
}

func (s *decodeState) begin(ctx Context, e ElementID) error {
	if !s.l.ElementBegin(ctx, e) {
		return fmt.Errorf("%w: element %s of %s", ErrLazyParseUnsupported, e, ctx)
	}
	return nil
}

// element decodes one token element and reports it.
func (s *decodeState) element(ctx Context, e ElementID) ([]byte, error) {
	if err := s.begin(ctx, e); err != nil {
		return nil, err
	}
	v, err := s.token()
	if err != nil {
		return nil, err
	}
	s.l.ElementFound(ctx, e, v, true)
	return v, nil
}

type recordedEvent struct {
	param bool
	ctx   Context
	e     ElementID
	name  []byte
	value []byte
	valid bool
}

// elementRecorder holds start line events until message is known to be decodable.
// ElementBegin goes straight to sink, so declined element fails decoding
// before MessageBegin.
type elementRecorder struct {
	NopListener
	l      Listener
	events []recordedEvent
}

func (r *elementRecorder) ElementBegin(ctx Context, e ElementID) bool {
	return r.l.ElementBegin(ctx, e)
}

func (r *elementRecorder) ElementFound(ctx Context, e ElementID, value []byte, valid bool) {
	r.events = append(r.events, recordedEvent{ctx: ctx, e: e, value: append([]byte(nil), value...), valid: valid})
}

func (r *elementRecorder) ParameterFound(ctx Context, e ElementID, name []byte, value []byte, valid bool) {
	r.events = append(r.events, recordedEvent{
		param: true,
		ctx:   ctx,
		e:     e,
		name:  append([]byte(nil), name...),
		value: append([]byte(nil), value...),
		valid: valid,
	})
}

func (r *elementRecorder) replay() {
	for _, ev := range r.events {
		if ev.param {
			r.l.ParameterFound(ev.ctx, ev.e, ev.name, ev.value, ev.valid)
			continue
		}
		r.l.ElementFound(ev.ctx, ev.e, ev.value, ev.valid)
	}
}
