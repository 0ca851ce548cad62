package prng

import "errors"

var (
	// ErrSeedTooShort is returned when a seed is shorter than MinSeedLength.
	ErrSeedTooShort = errors.New("prng: seed too short")

	// ErrInvalidBound is returned when BigInt is asked for a value below a
	// non-positive bound.
	ErrInvalidBound = errors.New("prng: bound must be positive")

	// ErrInvalidMnemonic is returned when a recovery phrase fails the BIP-39
	// checksum.
	ErrInvalidMnemonic = errors.New("prng: invalid mnemonic")
)
