package prng

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math/big"

	"keystone/internal/util/memzero"
)

// MinSeedLength is the smallest seed New accepts.
const MinSeedLength = 32

// Generator is the source of randomness consumed by curve, key and protocol
// code.
type Generator interface {
	// Bytes returns n pseudo-random bytes.
	Bytes(n int) []byte
	// BigInt returns a uniform integer in [0, bound).
	BigInt(bound *big.Int) (*big.Int, error)
	// Update mixes extra input into the state.
	Update(extra []byte)
}

// HMACDRBG is an HMAC-SHA-256 deterministic random bit generator.
type HMACDRBG struct {
	k [sha256.Size]byte
	v [sha256.Size]byte
}

// New returns a generator seeded with seed.
func New(seed []byte) (*HMACDRBG, error) {
	if len(seed) < MinSeedLength {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrSeedTooShort, len(seed), MinSeedLength)
	}
	g := &HMACDRBG{}
	for i := range g.v {
		g.v[i] = 0x01
	}
	g.Update(seed)
	return g, nil
}

// Update mixes extra into the state. The second pass only runs when extra is
// non-empty.
func (g *HMACDRBG) Update(extra []byte) {
	g.mix(0x00, extra)
	if len(extra) > 0 {
		g.mix(0x01, extra)
	}
}

func (g *HMACDRBG) mix(sep byte, extra []byte) {
	m := hmac.New(sha256.New, g.k[:])
	m.Write(g.v[:])
	m.Write([]byte{sep})
	m.Write(extra)
	m.Sum(g.k[:0])

	g.v = g.mac(g.v[:])
}

func (g *HMACDRBG) mac(data []byte) (out [sha256.Size]byte) {
	m := hmac.New(sha256.New, g.k[:])
	m.Write(data)
	m.Sum(out[:0])
	return out
}

// Bytes returns n bytes and then advances the state.
func (g *HMACDRBG) Bytes(n int) []byte {
	out := make([]byte, 0, n+sha256.Size)
	for len(out) < n {
		g.v = g.mac(g.v[:])
		out = append(out, g.v[:]...)
	}
	g.Update(nil)
	return out[:n:n]
}

// BigInt draws a uniform integer in [0, bound) by rejection sampling over the
// bit length of bound-1.
func (g *HMACDRBG) BigInt(bound *big.Int) (*big.Int, error) {
	if bound.Sign() <= 0 {
		return nil, ErrInvalidBound
	}
	max := new(big.Int).Sub(bound, big.NewInt(1))
	l := max.BitLen()
	if l == 0 {
		return new(big.Int), nil
	}
	size := (l + 7) / 8
	mask := byte(0xff >> uint(8*size-l))

	candidate := new(big.Int)
	for {
		raw := g.Bytes(size)
		raw[0] &= mask
		candidate.SetBytes(raw)
		memzero.Zero(raw)
		if candidate.Cmp(bound) < 0 {
			return candidate, nil
		}
	}
}

// Wipe clears the generator state. The generator must not be used afterwards.
func (g *HMACDRBG) Wipe() {
	memzero.Zero(g.k[:])
	memzero.Zero(g.v[:])
}

// Wipe clears g if it holds secret state, and is a no-op otherwise.
func Wipe(g Generator) {
	if w, ok := g.(interface{ Wipe() }); ok {
		w.Wipe()
	}
}

var _ Generator = (*HMACDRBG)(nil)
