// Package identity manages creation, sealing and use of owned identities.
//
// It enforces the passphrase policy, derives every new identity from a BIP-39
// recovery phrase so it can be restored later, persists it via the
// domain.IdentityStore, and signs or answers authentication challenges with
// the unlocked keys. Unlock attempts are throttled.
package identity
