package crypto

import (
	"keystone/internal/keys"
	"keystone/internal/prng"
)

// Seal encrypts m with a fresh IV drawn from g and appends a MAC over the IV
// and ciphertext.
func Seal(k keys.AuthEncKey, m []byte, g prng.Generator) ([]byte, error) {
	c, err := EncryptCTR(k.Enc, g.Bytes(IVSize), m)
	if err != nil {
		return nil, err
	}
	return append(c, ComputeMAC(k.MAC, c)...), nil
}

// Open verifies the trailing MAC and only then decrypts.
func Open(k keys.AuthEncKey, c []byte) ([]byte, error) {
	if len(c) < IVSize+MACSize {
		return nil, ErrCiphertextTooShort
	}
	body, tag := c[:len(c)-MACSize], c[len(c)-MACSize:]
	if !VerifyMAC(k.MAC, body, tag) {
		return nil, ErrMACVerificationFailed
	}
	return DecryptCTR(k.Enc, body)
}
