// Package message seals messages to identities and opens messages sealed to
// your own.
//
// A sealed message is the KEM ciphertext followed by the authenticated
// encryption of the plaintext under the encapsulated key:
//
//	kem(32) || iv(8) || ctr(plaintext) || hmac(32)
package message
