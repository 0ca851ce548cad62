package crypto

import (
	"crypto/hmac"
	"crypto/sha256"

	"keystone/internal/keys"
)

// MACSize is the length of an HMAC-SHA-256 tag.
const MACSize = sha256.Size

// ComputeMAC returns HMAC-SHA-256 of m under k.
func ComputeMAC(k keys.HMACKey, m []byte) []byte {
	h := hmac.New(sha256.New, k.Bytes())
	h.Write(m)
	return h.Sum(nil)
}

// VerifyMAC reports whether tag is the MAC of m under k. The comparison runs
// in constant time.
func VerifyMAC(k keys.HMACKey, m, tag []byte) bool {
	return hmac.Equal(ComputeMAC(k, m), tag)
}
