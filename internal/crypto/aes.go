package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"keystone/internal/keys"
)

// IVSize is the length of the CTR IV. The remaining eight bytes of the counter
// block start at zero.
const IVSize = 8

// EncryptCTR encrypts m under k and returns iv || ciphertext.
func EncryptCTR(k keys.AESKey, iv, m []byte) ([]byte, error) {
	if len(iv) != IVSize {
		return nil, ErrMalformedIV
	}
	var block [aes.BlockSize]byte
	copy(block[:], iv)

	out := make([]byte, IVSize+len(m))
	copy(out, iv)
	if err := ctr(k, block[:], out[IVSize:], m); err != nil {
		return nil, err
	}
	return out, nil
}

// DecryptCTR reverses EncryptCTR.
func DecryptCTR(k keys.AESKey, c []byte) ([]byte, error) {
	if len(c) < IVSize {
		return nil, ErrMalformedIV
	}
	var block [aes.BlockSize]byte
	copy(block[:], c[:IVSize])

	out := make([]byte, len(c)-IVSize)
	if err := ctr(k, block[:], out, c[IVSize:]); err != nil {
		return nil, err
	}
	return out, nil
}

func ctr(k keys.AESKey, counter, dst, src []byte) error {
	b, err := aes.NewCipher(k.Bytes())
	if err != nil {
		return err
	}
	cipher.NewCTR(b, counter).XORKeyStream(dst, src)
	return nil
}
