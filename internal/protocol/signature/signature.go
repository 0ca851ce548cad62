package signature

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"

	"keystone/internal/crypto"
	"keystone/internal/keys"
	"keystone/internal/prng"
)

const (
	// HashSize is the length of the challenge half of a signature.
	HashSize = 32

	// Size is the length of a signature.
	Size = 2 * HashSize
)

var (
	// ErrDifferentCurve is returned when the private and public key live on
	// different curves.
	ErrDifferentCurve = errors.New("signature: keys on different curves")

	// ErrInvalidSignatureLength is returned for signatures that are not Size
	// bytes.
	ErrInvalidSignatureLength = errors.New("signature: invalid signature length")
)

// Sign signs m with sk. pk must be the public half of sk; it is bound into the
// hash so the signature cannot be moved to another key.
func Sign(sk keys.PrivateKey, m []byte, pk keys.PublicKey, g prng.Generator) ([]byte, error) {
	if err := sk.Require(keys.UsageSignature); err != nil {
		return nil, err
	}
	if err := pk.Require(keys.UsageSignature); err != nil {
		return nil, err
	}
	if sk.Curve() != pk.Curve() {
		return nil, fmt.Errorf("%w: %s and %s", ErrDifferentCurve, sk.Curve().ID(), pk.Curve().ID())
	}
	c := sk.Curve()

	r, point, err := c.GenerateScalarAndPoint(g)
	if err != nil {
		return nil, err
	}
	h := challenge(point.Y(), pk.Y(), m)

	e := new(big.Int).SetBytes(h)
	y := sk.Scalar()
	y.Mul(y, e)
	y.Sub(r, y)
	y.Mod(y, c.Q())

	sig := make([]byte, 0, Size)
	sig = append(sig, h...)
	return append(sig, pad(y)...), nil
}

// Verify reports whether sig is a valid signature of m under pk.
func Verify(pk keys.PublicKey, m, sig []byte) (bool, error) {
	if err := pk.Require(keys.UsageSignature); err != nil {
		return false, err
	}
	if len(sig) != Size {
		return false, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidSignatureLength, len(sig), Size)
	}
	c := pk.Curve()

	h := sig[:HashSize]
	e := new(big.Int).SetBytes(h)
	y := new(big.Int).SetBytes(sig[HashSize:])

	r1, r2, err := c.MulAdd(y, c.G(), e, pk.Point())
	if err != nil {
		return false, err
	}

	ok1 := subtle.ConstantTimeCompare(h, challenge(r1.Y(), pk.Y(), m))
	ok2 := subtle.ConstantTimeCompare(h, challenge(r2.Y(), pk.Y(), m))
	return ok1|ok2 == 1, nil
}

func challenge(ry, ay *big.Int, m []byte) []byte {
	return crypto.SHA256(pad(ry), pad(ay), m)
}

func pad(n *big.Int) []byte {
	return n.FillBytes(make([]byte, HashSize))
}
