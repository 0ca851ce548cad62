package crypto

import (
	"keystone/internal/keys"
	"keystone/internal/prng"
	"keystone/internal/util/memzero"
)

// DeriveKey seeds a fresh HMAC-DRBG with seed and draws exactly the material a
// key of type K needs. The seed must be at least prng.MinSeedLength bytes.
func DeriveKey[K keys.Symmetric](seed []byte) (K, error) {
	var zero K
	g, err := prng.New(seed)
	if err != nil {
		return zero, err
	}
	defer g.Wipe()

	raw := g.Bytes(keys.SizeOf[K]())
	defer memzero.Zero(raw)
	return keys.FromBytes[K](raw)
}
