package token

import "fmt"

// Context tells what part of message an element belongs to.
// Header contexts have value of HeaderType.
type Context int

const (
	ContextStartLine Context = 0x100 + iota
	ContextBody
)

// HeaderContext returns context for elements of header h.
func HeaderContext(h HeaderType) Context {
	return Context(h)
}

// Header returns header type of context or HeaderNone when context is not header.
func (c Context) Header() HeaderType {
	if c >= 0 && c < Context(headerTypeCount) {
		return HeaderType(c)
	}
	return HeaderNone
}

func (c Context) String() string {
	switch c {
	case ContextStartLine:
		return "start-line"
	case ContextBody:
		return "body"
	}
	return c.Header().String()
}

// ElementID names element reported inside context.
type ElementID uint8

const (
	ElementMethod ElementID = iota + 1
	ElementRequestURI
	ElementVersion
	ElementStatusCode
	ElementReason

	ElementDisplayName
	ElementURI
	ElementScheme
	ElementUser
	ElementHost
	ElementPort

	ElementValue
	ElementSeq
	ElementTransport
	ElementBranch
	ElementType
	ElementSubtype
	ElementAuthScheme

	// ElementHeader owns header level parameters
	ElementHeader
)

var elementNames = map[ElementID]string{
	ElementMethod:      "method",
	ElementRequestURI:  "request-uri",
	ElementVersion:     "version",
	ElementStatusCode:  "status-code",
	ElementReason:      "reason",
	ElementDisplayName: "display-name",
	ElementURI:         "uri",
	ElementScheme:      "scheme",
	ElementUser:        "user",
	ElementHost:        "host",
	ElementPort:        "port",
	ElementValue:       "value",
	ElementSeq:         "seq",
	ElementTransport:   "transport",
	ElementBranch:      "branch",
	ElementType:        "type",
	ElementSubtype:     "subtype",
	ElementAuthScheme:  "auth-scheme",
	ElementHeader:      "header",
}

func (e ElementID) String() string {
	if s, ok := elementNames[e]; ok {
		return s
	}
	return fmt.Sprintf("element(%d)", uint8(e))
}

// MessageInfo describes message at its start.
type MessageInfo struct {
	Signature      uint16
	DictionaryName string
	// MessageID is only set with explicit prefix
	MessageID      uint16
	ExplicitPrefix bool

	Request    bool
	Method     string
	RequestURI string
	Version    string
	StatusCode uint16
	Reason     string
}

// MessageListener receives message level events.
type MessageListener interface {
	MessageBegin(info MessageInfo)
	BodyFound(contentType []byte, body []byte)
	// MessageFound is called once whole message is decoded.
	MessageFound(valid bool)
}

// HeaderListener receives header events. Returning false from HeaderBegin
// asks decoder to skip header, which this decoder can not do.
type HeaderListener interface {
	HeaderBegin(h HeaderType) bool
	HeaderFound(h HeaderType, name []byte, value []byte, valid bool)
	UnknownHeaderFound(name []byte, value []byte, valid bool)
}

// ElementListener receives elements and parameters inside start line and headers.
type ElementListener interface {
	ElementBegin(ctx Context, e ElementID) bool
	ElementFound(ctx Context, e ElementID, value []byte, valid bool)
	ParameterFound(ctx Context, e ElementID, name []byte, value []byte, valid bool)
}

// Listener is sink for decoder events.
// Byte slices passed to listener are only valid during call.
type Listener interface {
	MessageListener
	HeaderListener
	ElementListener
}

// NopListener ignores every event. Embed it to implement only needed callbacks.
type NopListener struct{}

func (NopListener) MessageBegin(MessageInfo) {}
func (NopListener) BodyFound([]byte, []byte) {}
func (NopListener) MessageFound(bool) {}
func (NopListener) HeaderBegin(HeaderType) bool { return true }
func (NopListener) HeaderFound(HeaderType, []byte, []byte, bool) {}
func (NopListener) UnknownHeaderFound([]byte, []byte, bool) {}
func (NopListener) ElementBegin(Context, ElementID) bool { return true }
func (NopListener) ElementFound(Context, ElementID, []byte, bool) {}
func (NopListener) ParameterFound(Context, ElementID, []byte, []byte, bool) {}
