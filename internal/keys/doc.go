// Package keys defines the key hierarchy of the engine and its wire form.
//
// Every key is a typed view over a Record: an algorithm class id, an
// implementation id, a dictionary of encoded fields and an encoding id.
// Records are written with encoding.Pack as
//
//	[encoding id][length][bytes array(class, implementation)][dictionary]
//
// # Symmetric keys
//
// AESKey (AES-256-CTR), HMACKey (HMAC-SHA-256) and AuthEncKey, the composite
// used for encrypt-then-MAC. The Symmetric constraint lets protocol code be
// generic over the three.
//
// # Curve keys
//
// PublicKey and PrivateKey carry a Usage tag (signature, KEM or
// authentication), a curve and the point or scalar. As re-tags a key for a
// different usage without touching the key material. Public keys also have a
// 33-byte compact form, [curve id][32-byte big-endian y], used inside
// identities.
package keys
