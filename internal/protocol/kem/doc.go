// Package kem implements the ECDH-style key encapsulation used to agree on a
// symmetric key with the holder of a KEM public key.
//
// # Overview
//
// The sender draws a scalar r and publishes B = r·G as the 32-byte
// ciphertext. Both sides reach the y-coordinate D of r·a·G and derive the
// symmetric key with crypto.DeriveKey over ciphertext || D:
//
//  1. Encrypt rejects low-order public keys, draws r, computes B and D = r·A.
//  2. Decrypt multiplies B by the cofactor ν, rejects the identity, and
//     computes D = (a·ν⁻¹ mod q)·(ν·B).
//
// Only y-coordinates are used, so the sign ambiguity of y-only keys does not
// matter here.
//
// # Errors
//
// ErrLowOrderPoint is returned for public keys or ciphertexts in the small
// subgroup; ErrInvalidCiphertext for inputs that are not 32 bytes.
package kem
