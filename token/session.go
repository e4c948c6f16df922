package token

import (
	"fmt"
	"strconv"
)

// SessionDictionary resolves data tokens of single message.
// It sits on top of static dictionary and remembers every literal, byte
// arrays and numbers alike, so later tokens can reference them by position.
type SessionDictionary struct {
	base    *StaticDictionary
	learned [][]byte
}

func NewSessionDictionary(base *StaticDictionary) *SessionDictionary {
	return &SessionDictionary{
		base:    base,
		learned: make([][]byte, 0, 16),
	}
}

// Dictionary returns static dictionary in use.
func (s *SessionDictionary) Dictionary() *StaticDictionary {
	return s.base
}

// Learned returns number of literals collected so far.
func (s *SessionDictionary) Learned() int {
	return len(s.learned)
}

// Get consumes one data token and returns its value.
// Returned slice may alias cursor buffer and must not be modified.
func (s *SessionDictionary) Get(c *Cursor) ([]byte, error) {
	at := c.Offset()
	b, err := c.Peek()
	if err != nil {
		return nil, err
	}

	shape := DataShapeOf(b)
	if shape == ShapeNone {
		return nil, fmt.Errorf("%w: 0x%02x at offset %d is not a data token", ErrMalformedDictionaryReference, b, at)
	}
	if err := c.Advance(1); err != nil {
		return nil, err
	}

	switch shape {
	case ShapeByte:
		v, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		return s.learn(strconv.AppendUint(nil, uint64(v), 10)), nil

	case ShapeInt16:
		v, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		return s.learn(strconv.AppendUint(nil, uint64(v), 10)), nil

	case ShapeInt32:
		v, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		return s.learn(strconv.AppendUint(nil, uint64(v), 10)), nil

	case ShapeByteArray:
		var n int
		if b == tokBytes {
			l, err := c.ReadByte()
			if err != nil {
				return nil, err
			}
			n = int(l)
		} else {
			l, err := c.ReadUint16()
			if err != nil {
				return nil, err
			}
			n = int(l)
		}
		v, err := c.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		return s.learn(v), nil
	}

	return s.reference(c, b, at)
}

// learn appends resolved literal so later back references can point to it.
func (s *SessionDictionary) learn(v []byte) []byte {
	s.learned = append(s.learned, v)
	return v
}

func (s *SessionDictionary) reference(c *Cursor, b byte, at int) ([]byte, error) {
	switch {
	case b < tokBackRefInline:
		return s.primary(int(b), at)

	case b <= tokBackRefInlineLast:
		return s.backRef(int(b-tokBackRefInline), at)

	case b == tokBackRef:
		idx, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		return s.backRef(int(idx), at)

	case b == tokPrimaryLong:
		idx, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		return s.primary(int(idx), at)

	case b == tokSecondary:
		idx, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		e, ok := s.base.SecondaryEntry(int(idx))
		if !ok {
			return nil, fmt.Errorf("%w: no secondary entry %d at offset %d", ErrMalformedDictionaryReference, idx, at)
		}
		return []byte(e), nil
	}
	return nil, fmt.Errorf("%w: 0x%02x at offset %d", ErrMalformedDictionaryReference, b, at)
}

func (s *SessionDictionary) primary(idx int, at int) ([]byte, error) {
	e, ok := s.base.PrimaryEntry(idx)
	if !ok {
		return nil, fmt.Errorf("%w: no primary entry %d at offset %d", ErrMalformedDictionaryReference, idx, at)
	}
	return []byte(e), nil
}

func (s *SessionDictionary) backRef(idx int, at int) ([]byte, error) {
	if idx >= len(s.learned) {
		return nil, fmt.Errorf("%w: back reference %d with %d learned at offset %d", ErrMalformedDictionaryReference, idx, len(s.learned), at)
	}
	return s.learned[idx], nil
}
