package identity

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"golang.org/x/time/rate"

	"keystone/internal/domain"
	"keystone/internal/identity"
	"keystone/internal/keys"
	"keystone/internal/metrics"
	"keystone/internal/prng"
	"keystone/internal/protocol/authentication"
	"keystone/internal/protocol/signature"
	"keystone/internal/store"
	"keystone/internal/util/memzero"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrNoIdentity is returned when no identity is named and none is active,
	// or the named one does not exist.
	ErrNoIdentity = errors.New("no such identity; run init first")

	// ErrTooManyAttempts is returned when unlock attempts exceed the limit.
	ErrTooManyAttempts = errors.New("too many unlock attempts; try again later")
)

// Service manages owned identities using a backing store.
//
// Each identity contains:
//   - An authentication key pair on MDC, also used for signatures.
//   - A KEM key pair on Curve25519 for receiving sealed messages.
//   - A secret MAC key.
type Service struct {
	store   domain.IdentityStore
	log     *slog.Logger
	metrics *metrics.Metrics
	limiter *rate.Limiter
	now     func() time.Time
	entropy func() (prng.Generator, error)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithUnlockLimit throttles unlock attempts to r per second with the given
// burst.
func WithUnlockLimit(r rate.Limit, burst int) Option {
	return func(s *Service) { s.limiter = rate.NewLimiter(r, burst) }
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithEntropy overrides the source of per-operation generators.
func WithEntropy(f func() (prng.Generator, error)) Option {
	return func(s *Service) { s.entropy = f }
}

// New returns an identity service backed by the given store.
func New(st domain.IdentityStore, opts ...Option) *Service {
	s := &Service{
		store:   st,
		log:     slog.New(slog.DiscardHandler),
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		now:     time.Now,
		entropy: func() (prng.Generator, error) { return prng.NewFromEntropy() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateIdentity creates a new identity for serverURL, seals it with the
// passphrase and returns its record with the recovery mnemonic.
func (s *Service) GenerateIdentity(
	passphrase string,
	serverURL string,
	details domain.IdentityDetails,
) (domain.OwnedIdentityRecord, string, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.OwnedIdentityRecord{}, "", ErrWeakPassphrase
	}
	mnemonic, err := prng.NewMnemonic()
	if err != nil {
		return domain.OwnedIdentityRecord{}, "", err
	}
	rec, err := s.create(passphrase, serverURL, mnemonic, details)
	if err != nil {
		return domain.OwnedIdentityRecord{}, "", err
	}
	return rec, mnemonic, nil
}

// RestoreIdentity re-derives the identity behind mnemonic and seals it with
// the passphrase.
func (s *Service) RestoreIdentity(
	passphrase string,
	serverURL string,
	mnemonic string,
	details domain.IdentityDetails,
) (domain.OwnedIdentityRecord, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.OwnedIdentityRecord{}, ErrWeakPassphrase
	}
	return s.create(passphrase, serverURL, mnemonic, details)
}

func (s *Service) create(
	passphrase string,
	serverURL string,
	mnemonic string,
	details domain.IdentityDetails,
) (domain.OwnedIdentityRecord, error) {
	g, err := prng.NewFromMnemonic(mnemonic, "")
	if err != nil {
		return domain.OwnedIdentityRecord{}, err
	}
	defer g.Wipe()

	owned, err := identity.Generate(serverURL, g)
	if err != nil {
		return domain.OwnedIdentityRecord{}, err
	}
	defer owned.Wipe()

	pub := owned.Public()
	rec := domain.OwnedIdentityRecord{
		Fingerprint:  domain.Fingerprint(pub.Fingerprint()),
		ServerURL:    serverURL,
		Identity:     pub.Bytes(),
		DisplayName:  details.FormatDisplayName(),
		Details:      details,
		APIKeyStatus: domain.APIKeyStatusUnknown,
		CreatedUTC:   s.now().UTC().Unix(),
	}
	secrets, err := owned.Encode()
	if err != nil {
		return domain.OwnedIdentityRecord{}, err
	}
	defer memzero.Zero(secrets)
	if err := s.store.SaveOwnedIdentity(passphrase, rec, secrets); err != nil {
		return domain.OwnedIdentityRecord{}, err
	}
	if saved, ok, err := s.store.GetOwnedIdentity(rec.Fingerprint); err == nil && ok {
		rec = saved
	}

	s.metrics.IdentityGenerated()
	s.log.Info("identity created",
		slog.String("fingerprint", rec.Fingerprint.String()),
		slog.String("server", serverURL),
	)
	return rec, nil
}

// ListIdentities returns the records of all owned identities.
func (s *Service) ListIdentities() ([]domain.OwnedIdentityRecord, error) {
	return s.store.ListOwnedIdentities()
}

// LoadIdentity unlocks and returns the identity fp. The caller owns the result
// and should Wipe it when done.
func (s *Service) LoadIdentity(passphrase string, fp domain.Fingerprint) (*identity.Owned, error) {
	fp, err := s.resolve(fp)
	if err != nil {
		return nil, err
	}
	if !s.limiter.Allow() {
		s.log.Warn("unlock throttled", slog.String("fingerprint", fp.String()))
		return nil, ErrTooManyAttempts
	}

	raw, err := s.store.LoadOwnedIdentity(passphrase, fp)
	if errors.Is(err, store.ErrWrongPassphrase) {
		s.metrics.UnlockFailed()
		s.log.Warn("unlock failed", slog.String("fingerprint", fp.String()))
	}
	if err != nil {
		return nil, err
	}
	return identity.DecodeOwned(raw)
}

// ExportIdentity returns the shareable byte form of fp.
func (s *Service) ExportIdentity(fp domain.Fingerprint) ([]byte, error) {
	fp, err := s.resolve(fp)
	if err != nil {
		return nil, err
	}
	rec, ok, err := s.store.GetOwnedIdentity(fp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoIdentity, fp)
	}
	return rec.Identity, nil
}

// Sign signs message with the authentication key of fp.
func (s *Service) Sign(passphrase string, fp domain.Fingerprint, message []byte) (sig []byte, err error) {
	defer func() { s.metrics.Operation("sign", err) }()

	owned, err := s.LoadIdentity(passphrase, fp)
	if err != nil {
		return nil, err
	}
	defer owned.Wipe()

	g, err := s.entropy()
	if err != nil {
		return nil, err
	}
	defer prng.Wipe(g)
	kp := owned.Auth.As(keys.UsageSignature)
	return signature.Sign(kp.Private, message, kp.Public, g)
}

// Verify checks sig over message against the identity peer.
func (s *Service) Verify(peer []byte, message, sig []byte) (ok bool, err error) {
	defer func() { s.metrics.Operation("verify", err) }()

	id, err := identity.Parse(peer)
	if err != nil {
		return false, err
	}
	return signature.Verify(id.AuthKey.As(keys.UsageSignature), message, sig)
}

// Respond answers an authentication challenge with the identity fp.
func (s *Service) Respond(passphrase string, fp domain.Fingerprint, challenge []byte) (resp []byte, err error) {
	defer func() { s.metrics.Operation("respond", err) }()

	owned, err := s.LoadIdentity(passphrase, fp)
	if err != nil {
		return nil, err
	}
	defer owned.Wipe()

	g, err := s.entropy()
	if err != nil {
		return nil, err
	}
	defer prng.Wipe(g)
	return authentication.Respond(challenge, owned.Auth.Public, owned.Auth.Private, g)
}

// Check verifies an authentication response from the identity peer.
func (s *Service) Check(peer []byte, challenge, response []byte) (ok bool, err error) {
	defer func() { s.metrics.Operation("check", err) }()

	id, err := identity.Parse(peer)
	if err != nil {
		return false, err
	}
	return authentication.Check(response, challenge, id.AuthKey)
}

// resolve maps an empty fingerprint to the active identity.
func (s *Service) resolve(fp domain.Fingerprint) (domain.Fingerprint, error) {
	if fp != "" {
		return fp, nil
	}
	active, ok, err := s.store.ActiveIdentity()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoIdentity
	}
	return active, nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
