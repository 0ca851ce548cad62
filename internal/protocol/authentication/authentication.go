package authentication

import (
	"errors"
	"fmt"

	"keystone/internal/keys"
	"keystone/internal/prng"
	"keystone/internal/protocol/signature"
)

const (
	// Prefix is prepended to every signed challenge.
	Prefix = "authentChallenge"

	// SuffixSize is the length of the responder's random suffix.
	SuffixSize = 16

	// ResponseSize is the length of a response.
	ResponseSize = SuffixSize + signature.Size
)

var (
	// ErrDifferentCurve is returned when the key halves live on different
	// curves.
	ErrDifferentCurve = errors.New("authentication: keys on different curves")

	// ErrInvalidResponse is returned for responses of the wrong length.
	ErrInvalidResponse = errors.New("authentication: invalid response")
)

// Respond answers challenge with the authentication key pair (pk, sk).
func Respond(challenge []byte, pk keys.PublicKey, sk keys.PrivateKey, g prng.Generator) ([]byte, error) {
	if err := pk.Require(keys.UsageAuthentication); err != nil {
		return nil, err
	}
	if err := sk.Require(keys.UsageAuthentication); err != nil {
		return nil, err
	}
	if pk.Curve() != sk.Curve() {
		return nil, fmt.Errorf("%w: %s and %s", ErrDifferentCurve, pk.Curve().ID(), sk.Curve().ID())
	}

	suffix := g.Bytes(SuffixSize)
	sig, err := signature.Sign(sk.As(keys.UsageSignature), message(challenge, suffix), pk.As(keys.UsageSignature), g)
	if err != nil {
		return nil, err
	}
	return append(suffix, sig...), nil
}

// Check reports whether response proves possession of the private half of pk
// for challenge.
func Check(response, challenge []byte, pk keys.PublicKey) (bool, error) {
	if err := pk.Require(keys.UsageAuthentication); err != nil {
		return false, err
	}
	if len(response) != ResponseSize {
		return false, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidResponse, len(response), ResponseSize)
	}
	suffix, sig := response[:SuffixSize], response[SuffixSize:]
	return signature.Verify(pk.As(keys.UsageSignature), message(challenge, suffix), sig)
}

func message(challenge, suffix []byte) []byte {
	m := make([]byte, 0, len(Prefix)+len(challenge)+len(suffix))
	m = append(m, Prefix...)
	m = append(m, challenge...)
	return append(m, suffix...)
}
