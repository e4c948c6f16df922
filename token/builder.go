package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pion/sdp/v3"
	"github.com/pradhp1999/dhruva-sub011/sip"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrMessageIncomplete = errors.New("message not completely decoded")

// MessageBuilder is Listener that builds sip.Message from decoder events.
// Header values are parsed by sip header parsers.
type MessageBuilder struct {
	NopListener

	log     zerolog.Logger
	parsers sip.HeadersParser

	msg  sip.Message
	err  error
	done bool
	hdrs []sip.Header

	sd    *sdp.SessionDescription
	sdErr error
}

// BuilderOption are addition option for NewMessageBuilder
type BuilderOption func(b *MessageBuilder)

// WithBuilderLogger allows customizing builder logger
func WithBuilderLogger(logger zerolog.Logger) BuilderOption {
	return func(b *MessageBuilder) {
		b.log = logger
	}
}

// WithBuilderHeadersParsers sets parsers used for header values.
func WithBuilderHeadersParsers(m sip.HeadersParser) BuilderOption {
	return func(b *MessageBuilder) {
		b.parsers = m
	}
}

func NewMessageBuilder(options ...BuilderOption) *MessageBuilder {
	b := &MessageBuilder{
		log:     log.Logger.With().Str("caller", "token.MessageBuilder").Logger(),
		parsers: sip.DefaultHeadersParser(),
	}
	for _, o := range options {
		o(b)
	}
	return b
}

func (b *MessageBuilder) MessageBegin(info MessageInfo) {
	b.Reset()
	if !info.Request {
		res := sip.NewResponse(sip.StatusCode(info.StatusCode), info.Reason)
		res.SipVersion = info.Version
		b.msg = res
		return
	}

	var uri sip.Uri
	if err := sip.ParseUri(info.RequestURI, &uri); err != nil {
		b.err = fmt.Errorf("request uri %q: %w", info.RequestURI, err)
		return
	}
	req := sip.NewRequest(sip.RequestMethod(info.Method), &uri)
	req.SipVersion = info.Version
	b.msg = req
}

func (b *MessageBuilder) HeaderFound(h HeaderType, name []byte, value []byte, valid bool) {
	b.addHeader(string(name), string(value), valid)
}

func (b *MessageBuilder) UnknownHeaderFound(name []byte, value []byte, valid bool) {
	b.addHeader(string(name), string(value), valid)
}

func (b *MessageBuilder) addHeader(name, value string, valid bool) {
	if b.msg == nil {
		return
	}

	var err error
	b.hdrs, err = b.parsers.ParseHeader(b.hdrs[:0], name, value)
	if err != nil || !valid {
		// Keep header as is, receiver decides what to do with it
		b.log.Debug().Err(err).Str("name", name).Str("value", value).Bool("valid", valid).Msg("header kept unparsed")
		b.hdrs = append(b.hdrs[:0], sip.NewHeader(name, value))
	}
	for _, h := range b.hdrs {
		b.msg.AppendHeader(h)
	}
}

func (b *MessageBuilder) BodyFound(contentType []byte, body []byte) {
	if b.msg == nil {
		return
	}
	b.msg.SetBody(append([]byte(nil), body...))

	if !isSDP(contentType) {
		return
	}
	b.sd, b.sdErr = ParseSDP(body)
	if b.sdErr != nil {
		b.log.Warn().Err(b.sdErr).Int("len", len(body)).Msg("sdp body not parsable")
	}
}

func isSDP(contentType []byte) bool {
	ct := sip.ASCIIToLower(strings.TrimSpace(string(contentType)))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "application/sdp"
}

func (b *MessageBuilder) MessageFound(valid bool) {
	b.done = true
	if b.log.GetLevel() <= zerolog.DebugLevel {
		b.log.Debug().Bool("valid", valid).Msg(sip.MessageShortString(b.msg))
	}
}

// SessionDescription returns session of application/sdp body.
// Both results are nil when message carried no such body.
func (b *MessageBuilder) SessionDescription() (*sdp.SessionDescription, error) {
	return b.sd, b.sdErr
}

// Message returns built message. It fails when decoding did not reach end of message.
func (b *MessageBuilder) Message() (sip.Message, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.done || b.msg == nil {
		return nil, ErrMessageIncomplete
	}
	return b.msg, nil
}

// Reset prepares builder for next message.
func (b *MessageBuilder) Reset() {
	b.msg = nil
	b.err = nil
	b.done = false
	b.hdrs = b.hdrs[:0]
	b.sd = nil
	b.sdErr = nil
}

// DecodeMessage decodes buf with default decoder into sip.Message.
func DecodeMessage(buf []byte) (sip.Message, error) {
	b := NewMessageBuilder()
	if err := Decode(buf, b); err != nil {
		return nil, err
	}
	return b.Message()
}

// DecodeMessage decodes buf[off:off+n] into sip.Message.
func (d *Decoder) DecodeMessage(buf []byte, off, n int) (sip.Message, error) {
	b := NewMessageBuilder(WithBuilderLogger(d.log))
	if err := d.Decode(buf, off, n, b); err != nil {
		return nil, err
	}
	return b.Message()
}
