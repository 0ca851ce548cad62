package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// envelopeVersion is the newest sealed-file format this package writes.
const envelopeVersion = 1

const saltSize = 16

// ScryptParams are the scrypt cost parameters used to derive sealing keys.
type ScryptParams struct {
	N, R, P int
}

// DefaultScryptParams are the interactive-login parameters recommended for
// scrypt.
func DefaultScryptParams() ScryptParams { return ScryptParams{N: 1 << 15, R: 8, P: 1} }

// Upper bounds on the cost parameters accepted from a sealed file. scrypt
// needs about 128·N·r bytes, so maxScryptMemory caps N and r together.
const (
	maxScryptN      = 1 << 20
	maxScryptR      = 32
	maxScryptP      = 16
	maxScryptMemory = 1 << 30
)

// validate rejects parameters scrypt refuses or that would cost more than the
// bounds above.
func (p ScryptParams) validate() error {
	switch {
	case p.N <= 1 || p.N&(p.N-1) != 0 || p.N > maxScryptN:
		return fmt.Errorf("%w: N=%d", ErrScryptParams, p.N)
	case p.R < 1 || p.R > maxScryptR:
		return fmt.Errorf("%w: r=%d", ErrScryptParams, p.R)
	case p.P < 1 || p.P > maxScryptP:
		return fmt.Errorf("%w: p=%d", ErrScryptParams, p.P)
	case 128*int64(p.N)*int64(p.R) > maxScryptMemory:
		return fmt.Errorf("%w: N=%d r=%d needs more than %d bytes", ErrScryptParams, p.N, p.R, maxScryptMemory)
	}
	return nil
}

// envelope is the on-disk JSON structure holding the ciphertext and KDF
// parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw. label is bound as
// associated data together with the salt, so a sealed file only opens under
// the name it was written for.
func seal(passphrase string, raw, label []byte, params ScryptParams) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	aead, err := envelopeAEAD(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	// Zero nonce: every file gets a fresh salt and therefore a fresh key.
	nonce := make([]byte, chacha20poly1305.NonceSize)
	ct := aead.Seal(nil, nonce, raw, associatedData(salt, label))

	return json.Marshal(envelope{
		V:      envelopeVersion,
		Salt:   salt,
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Cipher: ct,
	})
}

// open reverses seal.
func open(passphrase string, b, label []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	if env.V > envelopeVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", env.V)
	}
	if len(env.Salt) != saltSize {
		return nil, ErrWrongPassphrase
	}

	aead, err := envelopeAEAD(passphrase, env.Salt, ScryptParams{N: env.N, R: env.R, P: env.P})
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	pt, err := aead.Open(nil, nonce, env.Cipher, associatedData(env.Salt, label))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func envelopeAEAD(passphrase string, salt []byte, params ScryptParams) (cipher.AEAD, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}

func associatedData(salt, label []byte) []byte {
	ad := make([]byte, 0, len(salt)+len(label))
	ad = append(ad, salt...)
	return append(ad, label...)
}
