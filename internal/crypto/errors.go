package crypto

import "errors"

var (
	// ErrMACVerificationFailed is returned when an authentication tag does not
	// match.
	ErrMACVerificationFailed = errors.New("crypto: MAC verification failed")

	// ErrMalformedIV is returned when a CTR ciphertext is too short to hold its IV.
	ErrMalformedIV = errors.New("crypto: malformed IV")

	// ErrCiphertextTooShort is returned when an authenticated ciphertext cannot
	// hold an IV and a tag.
	ErrCiphertextTooShort = errors.New("crypto: ciphertext too short")
)
