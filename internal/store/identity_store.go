package store

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"keystone/internal/domain"
)

// index is the plaintext side of the store.
type index struct {
	Active     domain.Fingerprint           `json:"active,omitempty"`
	Identities []domain.OwnedIdentityRecord `json:"identities"`
}

func (ix *index) find(fp domain.Fingerprint) int {
	return slices.IndexFunc(ix.Identities, func(r domain.OwnedIdentityRecord) bool {
		return r.Fingerprint == fp
	})
}

func (ix *index) markActive() {
	for i := range ix.Identities {
		ix.Identities[i].Active = ix.Identities[i].Fingerprint == ix.Active
	}
}

// IdentityFileStore persists owned identities under a directory.
type IdentityFileStore struct {
	dir    string
	params ScryptParams
	mu     sync.Mutex
}

// Option configures an IdentityFileStore.
type Option func(*IdentityFileStore)

// WithScryptParams overrides the key derivation cost for newly sealed files.
func WithScryptParams(p ScryptParams) Option {
	return func(s *IdentityFileStore) { s.params = p }
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string, opts ...Option) *IdentityFileStore {
	s := &IdentityFileStore{dir: dir, params: DefaultScryptParams()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveOwnedIdentity seals secrets under passphrase and records rec in the
// index, replacing any earlier record with the same fingerprint. The first
// identity saved becomes the active one.
func (s *IdentityFileStore) SaveOwnedIdentity(passphrase string, rec domain.OwnedIdentityRecord, secrets []byte) error {
	if err := checkFingerprint(rec.Fingerprint); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := seal(passphrase, secrets, []byte(rec.Fingerprint), s.params)
	if err != nil {
		return err
	}
	if err := saveSealed(s.dir, rec.Fingerprint, blob); err != nil {
		return err
	}

	ix, err := loadIndex(s.dir)
	if err != nil {
		return err
	}
	if i := ix.find(rec.Fingerprint); i >= 0 {
		ix.Identities[i] = rec
	} else {
		ix.Identities = append(ix.Identities, rec)
	}
	if ix.Active == "" {
		ix.Active = rec.Fingerprint
	}
	ix.markActive()
	return saveIndex(s.dir, ix)
}

// LoadOwnedIdentity opens the sealed secrets of fp.
func (s *IdentityFileStore) LoadOwnedIdentity(passphrase string, fp domain.Fingerprint) ([]byte, error) {
	if err := checkFingerprint(fp); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := loadSealed(s.dir, fp)
	if err != nil {
		return nil, err
	}
	return open(passphrase, b, []byte(fp))
}

// GetOwnedIdentity returns the record for fp.
func (s *IdentityFileStore) GetOwnedIdentity(fp domain.Fingerprint) (domain.OwnedIdentityRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := loadIndex(s.dir)
	if err != nil {
		return domain.OwnedIdentityRecord{}, false, err
	}
	i := ix.find(fp)
	if i < 0 {
		return domain.OwnedIdentityRecord{}, false, nil
	}
	return ix.Identities[i], true, nil
}

// ListOwnedIdentities returns every record, oldest first.
func (s *IdentityFileStore) ListOwnedIdentities() ([]domain.OwnedIdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := loadIndex(s.dir)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(ix.Identities)
	slices.SortStableFunc(out, func(a, b domain.OwnedIdentityRecord) int {
		switch {
		case a.CreatedUTC < b.CreatedUTC:
			return -1
		case a.CreatedUTC > b.CreatedUTC:
			return 1
		}
		return 0
	})
	return out, nil
}

// SetActiveIdentity selects fp as the identity used when none is named.
func (s *IdentityFileStore) SetActiveIdentity(fp domain.Fingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := loadIndex(s.dir)
	if err != nil {
		return err
	}
	if ix.find(fp) < 0 {
		return fmt.Errorf("%w: %s", ErrIdentityNotFound, fp)
	}
	ix.Active = fp
	ix.markActive()
	return saveIndex(s.dir, ix)
}

// ActiveIdentity returns the active fingerprint, if any.
func (s *IdentityFileStore) ActiveIdentity() (domain.Fingerprint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := loadIndex(s.dir)
	if err != nil {
		return "", false, err
	}
	return ix.Active, ix.Active != "", nil
}

// checkFingerprint keeps fingerprints usable as file names.
func checkFingerprint(fp domain.Fingerprint) error {
	if fp == "" || strings.ContainsAny(string(fp), `/\.`) {
		return fmt.Errorf("%w: invalid fingerprint %q", ErrIdentityNotFound, fp)
	}
	return nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
