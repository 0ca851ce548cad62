package store

import "errors"

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed file has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted identity")

	// ErrIdentityNotFound is returned for fingerprints the store does not hold.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrScryptParams is returned when key derivation parameters are out of
	// bounds, whether configured or read from a sealed file.
	ErrScryptParams = errors.New("scrypt parameters out of range")
)
