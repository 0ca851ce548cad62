// Package identity implements cryptographic identities.
//
// An Identity is what peers exchange: the server URL the owner is reachable
// on plus compact authentication and KEM public keys, written as
//
//	url || 0x00 || compact(auth) || compact(kem)
//
// An Owned identity also holds both private keys and a secret MAC key. It is
// never put on the wire; Encode and DecodeOwned exist for local storage only.
package identity
