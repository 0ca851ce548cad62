package encoding

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// EncodeBytes encodes b as a bytes array.
func EncodeBytes(b []byte) Encoded {
	return append(header(IDBytes, len(b)), b...)
}

// DecodeBytes decodes a bytes array. The result does not alias b.
func DecodeBytes(b []byte) ([]byte, error) {
	e, err := ParseAs(b, IDBytes)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, e.Content()...), nil
}

// EncodeString encodes s as a bytes array holding its UTF-8 form.
func EncodeString(s string) Encoded {
	return EncodeBytes([]byte(s))
}

// DecodeString decodes a bytes array and checks that it is valid UTF-8.
func DecodeString(b []byte) (string, error) {
	raw, err := DecodeBytes(b)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

// EncodeInt64 encodes v as eight big-endian bytes.
func EncodeInt64(v int64) Encoded {
	return binary.BigEndian.AppendUint64(header(IDInteger, 8), uint64(v))
}

// DecodeInt64 decodes an integer written by EncodeInt64.
func DecodeInt64(b []byte) (int64, error) {
	e, err := ParseAs(b, IDInteger)
	if err != nil {
		return 0, err
	}
	c := e.Content()
	if len(c) != 8 {
		return 0, fmt.Errorf("%w: integer content is %d bytes", ErrInvalidLength, len(c))
	}
	return int64(binary.BigEndian.Uint64(c)), nil
}

// EncodeBool encodes v as a single 0x00 or 0x01 byte.
func EncodeBool(v bool) Encoded {
	var c byte
	if v {
		c = 0x01
	}
	return append(header(IDBoolean, 1), c)
}

// DecodeBool decodes a boolean written by EncodeBool.
func DecodeBool(b []byte) (bool, error) {
	e, err := ParseAs(b, IDBoolean)
	if err != nil {
		return false, err
	}
	c := e.Content()
	if len(c) != 1 {
		return false, fmt.Errorf("%w: boolean content is %d bytes", ErrInvalidLength, len(c))
	}
	switch c[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("%w: boolean byte 0x%02x", ErrMalformed, c[0])
	}
}

// EncodeList packs already-encoded items into a list.
func EncodeList(items ...Encoded) Encoded {
	return Pack(IDList, items...)
}

// DecodeList splits a list into its encoded items.
func DecodeList(b []byte) ([]Encoded, error) {
	if _, err := ParseAs(b, IDList); err != nil {
		return nil, err
	}
	return Unpack(b)
}
