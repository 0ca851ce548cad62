package message

import (
	"errors"
	"fmt"
	"log/slog"

	"keystone/internal/crypto"
	"keystone/internal/domain"
	"keystone/internal/identity"
	"keystone/internal/keys"
	"keystone/internal/metrics"
	"keystone/internal/prng"
	"keystone/internal/protocol/kem"
)

var (
	// ErrSealedTooShort indicates the input cannot be a sealed message.
	ErrSealedTooShort = errors.New("sealed message too short")
)

// Service seals and opens messages.
type Service struct {
	identities domain.IdentityService
	log        *slog.Logger
	metrics    *metrics.Metrics
	entropy    func() (prng.Generator, error)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithEntropy overrides the source of per-message generators.
func WithEntropy(f func() (prng.Generator, error)) Option {
	return func(s *Service) { s.entropy = f }
}

// New constructs a message Service that unlocks identities through ids.
func New(ids domain.IdentityService, opts ...Option) *Service {
	s := &Service{
		identities: ids,
		log:        slog.New(slog.DiscardHandler),
		entropy:    func() (prng.Generator, error) { return prng.NewFromEntropy() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seal encrypts plaintext to the identity recipient. Only the holder of the
// recipient's KEM private key can open it.
func (s *Service) Seal(recipient []byte, plaintext []byte) (out []byte, err error) {
	defer func() { s.metrics.Operation("seal", err) }()

	to, err := identity.Parse(recipient)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	g, err := s.entropy()
	if err != nil {
		return nil, err
	}
	defer prng.Wipe(g)

	ct, key, err := kem.Encrypt[keys.AuthEncKey](to.KEMKey, g)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	body, err := crypto.Seal(key, plaintext, g)
	if err != nil {
		return nil, err
	}
	s.log.Debug("message sealed", slog.String("recipient", to.Fingerprint()), slog.Int("bytes", len(plaintext)))
	return append(ct, body...), nil
}

// Open decrypts a message sealed to the identity fp.
func (s *Service) Open(passphrase string, fp domain.Fingerprint, sealed []byte) (pt []byte, err error) {
	defer func() { s.metrics.Operation("open", err) }()

	if len(sealed) < kem.CiphertextSize {
		return nil, ErrSealedTooShort
	}
	owned, err := s.identities.LoadIdentity(passphrase, fp)
	if err != nil {
		return nil, err
	}
	defer owned.Wipe()

	key, err := kem.Decrypt[keys.AuthEncKey](sealed[:kem.CiphertextSize], owned.KEM.Private)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	pt, err = crypto.Open(key, sealed[kem.CiphertextSize:])
	if err != nil {
		s.log.Warn("message rejected", slog.String("fingerprint", owned.Fingerprint()), slog.Any("err", err))
		return nil, err
	}
	return pt, nil
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
