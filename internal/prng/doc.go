// Package prng implements the HMAC-DRBG (SHA-256) generator that feeds every
// randomized step of the engine: scalar draws, IVs, KDF output and
// commitment nonces.
//
// A generator is a small state machine. New mixes a seed of at least
// MinSeedLength bytes into the (K, V) state; every Bytes call ratchets the
// state forward afterwards so earlier outputs cannot be recovered from a later
// state. The same seed always yields the same stream, which is what the KDF
// relies on.
//
// Concurrency: an HMACDRBG must not be used by more than one goroutine at a
// time. Independent instances share nothing and can run in parallel.
package prng
