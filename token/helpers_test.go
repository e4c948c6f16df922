package token

import "testing"

// Wire building helpers

func lit(s string) []byte {
	if len(s) > 0xFF {
		return append(EncodeUint16([]byte{tokBytesLong}, uint16(len(s))), s...)
	}
	return append([]byte{tokBytes, byte(len(s))}, s...)
}

func prim(t testing.TB, s string) []byte {
	t.Helper()
	for i, e := range defaultPrimary {
		if e != s {
			continue
		}
		if i < 0x80 {
			return []byte{byte(i)}
		}
		return EncodeUint16([]byte{tokPrimaryLong}, uint16(i))
	}
	t.Fatalf("%q not in primary table", s)
	return nil
}

func sec(t testing.TB, s string) []byte {
	t.Helper()
	for i, e := range defaultSecondary {
		if e == s {
			return []byte{tokSecondary, byte(i)}
		}
	}
	t.Fatalf("%q not in secondary table", s)
	return nil
}

func u16(v uint16) []byte { return EncodeUint16(nil, v) }

func u32(v uint32) []byte { return EncodeUint32(nil, v) }

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func shortcut(h HeaderType) []byte {
	b, ok := HeaderToShortcut(h)
	if !ok {
		panic("no shortcut for " + h.String())
	}
	return []byte{b}
}

func known(h HeaderType) []byte {
	idx, ok := HeaderToKnownIndex(h)
	if !ok {
		panic("no index for " + h.String())
	}
	return []byte{ctxKnownHeader, idx}
}

type event struct {
	Kind  string
	Name  string
	Value string
	Valid bool
}

// recorder keeps message and header events, elements are kept apart
type recorder struct {
	NopListener
	info     MessageInfo
	events   []event
	elements []event

	rejectHeader  HeaderType
	rejectElement ElementID
}

func (r *recorder) MessageBegin(info MessageInfo) {
	r.info = info
	name := info.Method + " " + info.RequestURI
	if !info.Request {
		name = info.Reason
	}
	r.events = append(r.events, event{Kind: "begin", Name: name, Valid: true})
}

func (r *recorder) HeaderBegin(h HeaderType) bool {
	return r.rejectHeader == HeaderNone || h != r.rejectHeader
}

func (r *recorder) HeaderFound(h HeaderType, name []byte, value []byte, valid bool) {
	r.events = append(r.events, event{Kind: "header", Name: string(name), Value: string(value), Valid: valid})
}

func (r *recorder) UnknownHeaderFound(name []byte, value []byte, valid bool) {
	r.events = append(r.events, event{Kind: "unknown", Name: string(name), Value: string(value), Valid: valid})
}

func (r *recorder) BodyFound(contentType []byte, body []byte) {
	r.events = append(r.events, event{Kind: "body", Name: string(contentType), Value: string(body), Valid: true})
}

func (r *recorder) MessageFound(valid bool) {
	r.events = append(r.events, event{Kind: "end", Valid: valid})
}

func (r *recorder) ElementBegin(ctx Context, e ElementID) bool {
	return r.rejectElement == 0 || e != r.rejectElement
}

func (r *recorder) ElementFound(ctx Context, e ElementID, value []byte, valid bool) {
	r.elements = append(r.elements, event{Kind: ctx.String(), Name: e.String(), Value: string(value), Valid: valid})
}

func (r *recorder) ParameterFound(ctx Context, e ElementID, name []byte, value []byte, valid bool) {
	r.elements = append(r.elements, event{Kind: ctx.String(), Name: e.String() + ";" + string(name), Value: string(value), Valid: valid})
}

func (r *recorder) headers() []event {
	var out []event
	for _, e := range r.events {
		if e.Kind == "header" || e.Kind == "unknown" {
			out = append(out, e)
		}
	}
	return out
}
