package encoding

import (
	"fmt"
	"math/big"
)

// EncodeBigUint encodes a non-negative integer as its minimal big-endian
// bytes. Zero is written as a single 0x00 byte.
func EncodeBigUint(n *big.Int) (Encoded, error) {
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative integer", ErrMalformed)
	}
	c := n.Bytes()
	if len(c) == 0 {
		c = []byte{0x00}
	}
	return append(header(IDBigUint, len(c)), c...), nil
}

// DecodeBigUint decodes a big unsigned integer.
func DecodeBigUint(b []byte) (*big.Int, error) {
	e, err := ParseAs(b, IDBigUint)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(e.Content()), nil
}

// EncodeBigInt encodes n under the big unsigned integer id. Only the
// magnitude is written, so negative values are refused rather than silently
// losing their sign.
func EncodeBigInt(n *big.Int) (Encoded, error) {
	return EncodeBigUint(n)
}

// DecodeBigInt decodes a value written by EncodeBigInt. The result is never
// negative.
func DecodeBigInt(b []byte) (*big.Int, error) {
	return DecodeBigUint(b)
}
