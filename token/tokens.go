package token

// TokenKind tells whether byte starts data or changes decoding context.
type TokenKind uint8

const (
	KindUndefined TokenKind = iota
	KindData
	KindContext
)

func (k TokenKind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindContext:
		return "context"
	}
	return "undefined"
}

// ContextChange is structural transition signaled by context byte.
type ContextChange uint8

const (
	ChangeNone ContextChange = iota
	ChangeParameter
	ChangeNameAddr
	ChangeNewField
)

func (c ContextChange) String() string {
	switch c {
	case ChangeParameter:
		return "parameter"
	case ChangeNameAddr:
		return "name-addr"
	case ChangeNewField:
		return "new-field"
	}
	return "none"
}

// DataShape is payload shape that follows data byte.
type DataShape uint8

const (
	ShapeNone DataShape = iota
	ShapeInt16
	ShapeInt32
	ShapeByte
	ShapeByteArray
	ShapeDictionaryRef
)

func (s DataShape) String() string {
	switch s {
	case ShapeInt16:
		return "int16"
	case ShapeInt32:
		return "int32"
	case ShapeByte:
		return "byte"
	case ShapeByteArray:
		return "byte-array"
	case ShapeDictionaryRef:
		return "dictionary-ref"
	}
	return "none"
}

// Wire bytes
const (
	// 0x00-0x7F primary dictionary entry
	tokBackRefInline     byte = 0x80 // 0x80-0x8F back reference to learned 0-15
	tokBackRefInlineLast byte = 0x8F
	tokBackRef           byte = 0x90
	tokPrimaryLong       byte = 0x91
	tokSecondary         byte = 0x92
	tokByte              byte = 0x93
	tokInt16             byte = 0x94
	tokInt32             byte = 0x95
	tokBytes             byte = 0x96
	tokBytesLong         byte = 0x97

	ctxParamList byte = 0xA0
	ctxParam     byte = 0xA1
	ctxNameAddr  byte = 0xA2
	ctxAddrSpec  byte = 0xA3

	ctxKnownHeader   byte = 0xB0
	ctxUnknownHeader byte = 0xB1
	ctxEndHeaders    byte = 0xB2
	ctxSdpDeprecated byte = 0xB3
	ctxSdp           byte = 0xB4
	ctxBody          byte = 0xB5
	ctxInvite        byte = 0xB6
	ctxRequest       byte = 0xB7
	ctxResponse      byte = 0xB8

	// 0xB9-0xBF body of media type this decoder does not know
	ctxMediaFirst byte = 0xB9
	ctxMediaLast  byte = 0xBF

	ctxShortcutFirst byte = 0xC0
	ctxShortcutLast  byte = 0xDF

	ctxPrefixDefault  byte = 0xF0
	ctxPrefixExplicit byte = 0xF1
)

var (
	kindTable   [256]TokenKind
	changeTable [256]ContextChange
	shapeTable  [256]DataShape
)

func init() {
	set := func(from, to byte, k TokenKind, c ContextChange, s DataShape) {
		for b := int(from); b <= int(to); b++ {
			kindTable[b] = k
			changeTable[b] = c
			shapeTable[b] = s
		}
	}

	set(0x00, 0x7F, KindData, ChangeNone, ShapeDictionaryRef)
	set(tokBackRefInline, tokSecondary, KindData, ChangeNone, ShapeDictionaryRef)
	set(tokByte, tokByte, KindData, ChangeNone, ShapeByte)
	set(tokInt16, tokInt16, KindData, ChangeNone, ShapeInt16)
	set(tokInt32, tokInt32, KindData, ChangeNone, ShapeInt32)
	set(tokBytes, tokBytesLong, KindData, ChangeNone, ShapeByteArray)

	set(ctxParamList, ctxParam, KindContext, ChangeParameter, ShapeNone)
	set(ctxNameAddr, ctxAddrSpec, KindContext, ChangeNameAddr, ShapeNone)
	set(ctxKnownHeader, ctxResponse, KindContext, ChangeNewField, ShapeNone)
	set(ctxMediaFirst, ctxMediaLast, KindContext, ChangeNewField, ShapeNone)
	set(ctxShortcutFirst, ctxShortcutLast, KindContext, ChangeNewField, ShapeNone)
	set(ctxPrefixDefault, ctxPrefixExplicit, KindContext, ChangeNewField, ShapeNone)
}

// KindOf classifies byte b.
func KindOf(b byte) TokenKind { return kindTable[b] }

// ContextChangeOf returns transition for context byte, ChangeNone for others.
func ContextChangeOf(b byte) ContextChange { return changeTable[b] }

// DataShapeOf returns payload shape for data byte, ShapeNone for others.
func DataShapeOf(b byte) DataShape { return shapeTable[b] }
