package interfaces

import domaintypes "keystone/internal/domain/types"

// IdentityStore persists owned identities. Records are readable without the
// passphrase; the encoded secrets are not.
type IdentityStore interface {
	SaveOwnedIdentity(passphrase string, rec domaintypes.OwnedIdentityRecord, secrets []byte) error
	LoadOwnedIdentity(passphrase string, fp domaintypes.Fingerprint) ([]byte, error)
	GetOwnedIdentity(fp domaintypes.Fingerprint) (domaintypes.OwnedIdentityRecord, bool, error)
	ListOwnedIdentities() ([]domaintypes.OwnedIdentityRecord, error)
	SetActiveIdentity(fp domaintypes.Fingerprint) error
	ActiveIdentity() (domaintypes.Fingerprint, bool, error)
}
