// Package commitment implements a SHA-256 hash commitment.
//
// Commit hides a value behind H(tag || value || r) with 32 random bytes r; the
// token value || r is later revealed and checked with Open.
package commitment

import (
	"crypto/subtle"
	"errors"

	"keystone/internal/crypto"
	"keystone/internal/prng"
)

// RandomSize is the number of random bytes appended to a committed value.
const RandomSize = 32

// ErrDifferentCommitment is returned when a token does not open a commitment.
var ErrDifferentCommitment = errors.New("commitment: token does not match commitment")

// Commit commits to value under tag. It returns the commitment to publish and
// the token to reveal later.
func Commit(tag, value []byte, g prng.Generator) (commitment, token []byte) {
	token = make([]byte, 0, len(value)+RandomSize)
	token = append(token, value...)
	token = append(token, g.Bytes(RandomSize)...)
	return crypto.SHA256(tag, token), token
}

// Open checks token against commitment and returns the committed value.
func Open(commitment, tag, token []byte) ([]byte, error) {
	if len(token) < RandomSize {
		return nil, ErrDifferentCommitment
	}
	if subtle.ConstantTimeCompare(commitment, crypto.SHA256(tag, token)) != 1 {
		return nil, ErrDifferentCommitment
	}
	return append([]byte{}, token[:len(token)-RandomSize]...), nil
}
