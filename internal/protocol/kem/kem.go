package kem

import (
	"errors"
	"fmt"
	"math/big"

	"keystone/internal/crypto"
	"keystone/internal/keys"
	"keystone/internal/prng"
)

// CiphertextSize is the length of an encapsulation.
const CiphertextSize = 32

var (
	// ErrLowOrderPoint is returned when a point lies in the small subgroup.
	ErrLowOrderPoint = errors.New("kem: low order point")

	// ErrInvalidCiphertext is returned for encapsulations of the wrong size.
	ErrInvalidCiphertext = errors.New("kem: invalid ciphertext")
)

// Encrypt encapsulates a fresh key of type K to pk. It returns the ciphertext
// to send and the derived key.
func Encrypt[K keys.Symmetric](pk keys.PublicKey, g prng.Generator) ([]byte, K, error) {
	var zero K
	if err := pk.Require(keys.UsageKEM); err != nil {
		return nil, zero, err
	}
	c := pk.Curve()

	low, err := c.IsLowOrder(pk.Y())
	if err != nil {
		return nil, zero, err
	}
	if low {
		return nil, zero, ErrLowOrderPoint
	}

	var r *big.Int
	for r == nil || r.Sign() == 0 {
		if r, err = g.BigInt(c.Q()); err != nil {
			return nil, zero, err
		}
	}

	b, err := c.ScalarMult(r, c.G().Y())
	if err != nil {
		return nil, zero, err
	}
	d, err := c.ScalarMult(r, pk.Y())
	if err != nil {
		return nil, zero, err
	}

	ct := pad(b)
	key, err := crypto.DeriveKey[K](append(append([]byte{}, ct...), pad(d)...))
	if err != nil {
		return nil, zero, err
	}
	return ct, key, nil
}

// Decrypt recovers the key encapsulated in ct with sk.
func Decrypt[K keys.Symmetric](ct []byte, sk keys.PrivateKey) (K, error) {
	var zero K
	if err := sk.Require(keys.UsageKEM); err != nil {
		return zero, err
	}
	if len(ct) != CiphertextSize {
		return zero, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidCiphertext, len(ct), CiphertextSize)
	}
	c := sk.Curve()

	cleared, err := c.ScalarMult(c.Cofactor(), new(big.Int).SetBytes(ct))
	if err != nil {
		return zero, err
	}
	if cleared.Cmp(big.NewInt(1)) == 0 {
		return zero, ErrLowOrderPoint
	}

	q := c.Q()
	a := new(big.Int).ModInverse(c.Cofactor(), q)
	a.Mul(a, sk.Scalar())
	a.Mod(a, q)

	d, err := c.ScalarMult(a, cleared)
	if err != nil {
		return zero, err
	}
	return crypto.DeriveKey[K](append(append([]byte{}, ct...), pad(d)...))
}

func pad(n *big.Int) []byte {
	return n.FillBytes(make([]byte, CiphertextSize))
}
