package crypto

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// fingerprintBytes is how much of the digest is shown.
const fingerprintBytes = 10

// Fingerprint returns a short base58 fingerprint of b.
//
// It hashes with BLAKE2b-256 and keeps the first 10 bytes, which is enough to
// tell identities apart on screen.
func Fingerprint(b []byte) string {
	sum := blake2b.Sum256(b)
	return base58.Encode(sum[:fingerprintBytes])
}
