package prng

import (
	"crypto/rand"
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"keystone/internal/util/memzero"
)

// mnemonicEntropyBits gives a 24-word recovery phrase.
const mnemonicEntropyBits = 256

// NewFromEntropy seeds a generator with MinSeedLength bytes from the system
// random source.
func NewFromEntropy() (*HMACDRBG, error) {
	seed := make([]byte, MinSeedLength)
	defer memzero.Zero(seed)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("read system entropy: %w", err)
	}
	return New(seed)
}

// NewMnemonic returns a fresh BIP-39 recovery phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("mnemonic entropy: %w", err)
	}
	defer memzero.Zero(entropy)
	return bip39.NewMnemonic(entropy)
}

// NewFromMnemonic seeds a generator with the BIP-39 seed of mnemonic. The same
// phrase and passphrase always produce the same stream.
func NewFromMnemonic(mnemonic, passphrase string) (*HMACDRBG, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	defer memzero.Zero(seed)
	return New(seed)
}
