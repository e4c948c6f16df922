package token

import "encoding/binary"

// DecodeUint16 consumes 2 bytes, big endian.
func DecodeUint16(c *Cursor) (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// DecodeUint32 consumes 4 bytes, big endian. Values above 0x7FFFFFFF stay unsigned.
func DecodeUint32(c *Cursor) (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// EncodeUint16 appends v to dst, big endian.
func EncodeUint16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

// EncodeUint32 appends v to dst, big endian.
func EncodeUint32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}
