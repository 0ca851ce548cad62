package keys

import "errors"

var (
	// ErrMissingField is returned when a key dictionary lacks a required entry.
	ErrMissingField = errors.New("keys: missing dictionary field")

	// ErrKeyLength is returned for raw key material of the wrong size.
	ErrKeyLength = errors.New("keys: invalid key length")

	// ErrWrongClass is returned when a record holds a different kind of key
	// than the one being decoded.
	ErrWrongClass = errors.New("keys: unexpected algorithm class")

	// ErrUnknownUsage is returned for an unrecognised usage class id.
	ErrUnknownUsage = errors.New("keys: unknown key usage")

	// ErrUsageMismatch is returned when a key is used for a purpose its tag
	// does not allow.
	ErrUsageMismatch = errors.New("keys: key usage mismatch")

	// ErrGeneration is returned when a key pair cannot be generated.
	ErrGeneration = errors.New("keys: key generation failed")
)
