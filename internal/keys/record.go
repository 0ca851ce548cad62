package keys

import (
	"fmt"

	"keystone/internal/encoding"
)

// Record is the common representation behind every key.
type Record struct {
	ClassID    byte
	ImplID     byte
	Fields     encoding.Dictionary
	EncodingID encoding.ID
}

// Encode writes r as a packed value under its encoding id.
func (r Record) Encode() (encoding.Encoded, error) {
	fields, err := r.Fields.Encode()
	if err != nil {
		return nil, err
	}
	return encoding.Pack(r.EncodingID,
		encoding.EncodeBytes([]byte{r.ClassID, r.ImplID}),
		fields,
	), nil
}

// mustEncode encodes a record built by this package. Its fields are flat.
func mustEncode(r Record) encoding.Encoded {
	e, err := r.Encode()
	if err != nil {
		panic(err)
	}
	return e
}

// DecodeRecord parses a record written by Record.Encode.
func DecodeRecord(b []byte) (Record, error) {
	e, err := encoding.Parse(b)
	if err != nil {
		return Record{}, err
	}
	parts, err := encoding.Unpack(e)
	if err != nil {
		return Record{}, err
	}
	if len(parts) != 2 {
		return Record{}, fmt.Errorf("%w: key record has %d parts", encoding.ErrMalformed, len(parts))
	}
	ids, err := encoding.DecodeBytes(parts[0])
	if err != nil {
		return Record{}, err
	}
	if len(ids) != 2 {
		return Record{}, fmt.Errorf("%w: key record header is %d bytes", encoding.ErrMalformed, len(ids))
	}
	fields, err := encoding.DecodeDictionary(parts[1])
	if err != nil {
		return Record{}, err
	}
	return Record{
		ClassID:    ids[0],
		ImplID:     ids[1],
		Fields:     fields,
		EncodingID: e.ID(),
	}, nil
}

func (r Record) field(name string) (encoding.Encoded, error) {
	v, ok := r.Fields.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	return v, nil
}

func (r Record) expect(enc encoding.ID, class byte) error {
	if r.EncodingID != enc {
		return fmt.Errorf("%w: got 0x%02x, want 0x%02x", encoding.ErrIncorrectByteID, byte(r.EncodingID), byte(enc))
	}
	if r.ClassID != class {
		return fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrWrongClass, r.ClassID, class)
	}
	return nil
}
