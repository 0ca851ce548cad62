package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ID is the one-byte type identifier that prefixes every encoded value.
type ID byte

const (
	IDBytes        ID = 0x00
	IDInteger      ID = 0x01
	IDBoolean      ID = 0x02
	IDList         ID = 0x03
	IDDictionary   ID = 0x04
	IDBigUint      ID = 0x80
	IDSymmetricKey ID = 0x90
	IDPublicKey    ID = 0x91
	IDPrivateKey   ID = 0x92
)

// HeaderLen is the size of the id and length prefix of a non-dictionary value.
const HeaderLen = 5

// Encoded is a single TLV-encoded value.
type Encoded []byte

// ID returns the type id of e. It returns 0 for an empty value.
func (e Encoded) ID() ID {
	if len(e) == 0 {
		return 0
	}
	return ID(e[0])
}

// Bytes returns e as a plain byte slice.
func (e Encoded) Bytes() []byte { return []byte(e) }

// Content returns the payload of e without its header. e must have been
// validated by Parse.
func (e Encoded) Content() []byte {
	if e.ID() == IDDictionary {
		return e[1:]
	}
	return e[HeaderLen:]
}

// Parse validates that b holds exactly one encoded value and returns it.
func Parse(b []byte) (Encoded, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidLength)
	}
	if ID(b[0]) == IDDictionary {
		return Encoded(b), nil
	}
	if len(b) < HeaderLen {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a header", ErrInvalidLength, len(b))
	}
	l := binary.BigEndian.Uint32(b[1:HeaderLen])
	if uint64(l)+HeaderLen != uint64(len(b)) {
		return nil, fmt.Errorf("%w: declared %d content bytes, have %d", ErrInvalidLength, l, len(b)-HeaderLen)
	}
	return Encoded(b), nil
}

// ParseAs parses b and checks its type id.
func ParseAs(b []byte, id ID) (Encoded, error) {
	e, err := Parse(b)
	if err != nil {
		return nil, err
	}
	if e.ID() != id {
		return nil, fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrIncorrectByteID, byte(e.ID()), byte(id))
	}
	return e, nil
}

// Pack writes parts, which must already be encoded, under a single header.
// Dictionaries get no length field.
func Pack(id ID, parts ...Encoded) Encoded {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, HeaderLen+n)
	out = append(out, byte(id))
	if id != IDDictionary {
		out = binary.BigEndian.AppendUint32(out, uint32(n))
	}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Unpack splits the content of a packed value back into its parts.
func Unpack(b []byte) ([]Encoded, error) {
	e, err := Parse(b)
	if err != nil {
		return nil, err
	}
	rest := e.Content()
	var parts []Encoded
	for len(rest) > 0 {
		var part Encoded
		part, rest, err = ExtractFirst(rest)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// ExtractFirst splits the first encoded value off b and returns it together
// with the remaining bytes. A dictionary extends to the end of b.
func ExtractFirst(b []byte) (Encoded, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", ErrInvalidLength)
	}
	if ID(b[0]) == IDDictionary {
		return Encoded(b), nil, nil
	}
	if len(b) < HeaderLen {
		return nil, nil, fmt.Errorf("%w: %d bytes is shorter than a header", ErrInvalidLength, len(b))
	}
	l := uint64(binary.BigEndian.Uint32(b[1:HeaderLen]))
	if l > uint64(len(b)-HeaderLen) {
		return nil, nil, fmt.Errorf("%w: declared %d content bytes, have %d", ErrInvalidLength, l, len(b)-HeaderLen)
	}
	end := HeaderLen + int(l)
	return Encoded(b[:end:end]), b[end:], nil
}

func header(id ID, n int) []byte {
	if uint64(n) > math.MaxUint32 {
		panic("encoding: value too large")
	}
	out := make([]byte, HeaderLen, HeaderLen+n)
	out[0] = byte(id)
	binary.BigEndian.PutUint32(out[1:], uint32(n))
	return out
}
