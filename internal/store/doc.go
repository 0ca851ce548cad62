// Package store provides file-based persistence for owned identities.
//
// IdentityFileStore implements domain.IdentityStore. Each identity's secrets
// are sealed under the passphrase in their own file; the non-secret records
// and the active selection live in a plaintext JSON index so identities can be
// listed without unlocking them. All methods are concurrency-safe via internal
// locking.
//
// Layout under the store directory:
//
//	index.json          records and active fingerprint
//	<fingerprint>.enc   sealed secrets (scrypt + ChaCha20-Poly1305)
package store
