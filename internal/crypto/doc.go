// Package crypto holds the symmetric primitives of the engine and the small
// helpers built on them.
//
// Contents
//
//   - SHA-256 and SHA-512 digests (SHA256, SHA512)
//   - HMAC-SHA-256 computation and constant-time verification (ComputeMAC,
//     VerifyMAC)
//   - AES-256-CTR with an 8-byte IV and a zero 8-byte counter (EncryptCTR,
//     DecryptCTR)
//   - Encrypt-then-MAC authenticated encryption (Seal, Open)
//   - Key derivation from a seed through a fresh HMAC-DRBG (DeriveKey)
//   - Short display fingerprints and base64 helpers (Fingerprint, B64)
//
// # Notes
//
// Ciphertexts from Seal are laid out as IV(8) || AES-CTR(m) || HMAC(32), where
// the tag covers the IV and the ciphertext. Open checks the tag before
// decrypting anything.
package crypto
