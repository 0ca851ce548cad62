package interfaces

import (
	"context"

	domaintypes "keystone/internal/domain/types"
	"keystone/internal/identity"
)

// IdentityService creates, restores and uses your owned identities. An empty
// fingerprint selects the active identity.
type IdentityService interface {
	GenerateIdentity(
		passphrase string,
		serverURL string,
		details domaintypes.IdentityDetails,
	) (domaintypes.OwnedIdentityRecord, string /*mnemonic*/, error)
	RestoreIdentity(
		passphrase string,
		serverURL string,
		mnemonic string,
		details domaintypes.IdentityDetails,
	) (domaintypes.OwnedIdentityRecord, error)
	ListIdentities() ([]domaintypes.OwnedIdentityRecord, error)
	LoadIdentity(passphrase string, fp domaintypes.Fingerprint) (*identity.Owned, error)
	ExportIdentity(fp domaintypes.Fingerprint) ([]byte, error)
	Sign(passphrase string, fp domaintypes.Fingerprint, message []byte) ([]byte, error)
	Verify(peer []byte, message, sig []byte) (bool, error)
	Respond(passphrase string, fp domaintypes.Fingerprint, challenge []byte) ([]byte, error)
	Check(peer []byte, challenge, response []byte) (bool, error)
}

// MessageService seals messages to identities and opens messages sealed to
// yours.
type MessageService interface {
	Seal(recipient []byte, plaintext []byte) ([]byte, error)
	Open(passphrase string, fp domaintypes.Fingerprint, sealed []byte) ([]byte, error)
}

// BatchService generates identities in parallel.
type BatchService interface {
	Generate(ctx context.Context, serverURL string, count int) ([]domaintypes.GeneratedIdentity, error)
}
