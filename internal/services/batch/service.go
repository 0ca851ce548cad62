package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"keystone/internal/domain"
	"keystone/internal/identity"
	"keystone/internal/metrics"
	"keystone/internal/prng"
)

// ErrInvalidCount is returned for a non-positive batch size.
var ErrInvalidCount = errors.New("batch count must be positive")

// Service runs batch generation.
type Service struct {
	workers int
	log     *slog.Logger
	metrics *metrics.Metrics
	entropy func() (prng.Generator, error)
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers sets the pool size. Values below one mean runtime.NumCPU().
func WithWorkers(n int) Option { return func(s *Service) { s.workers = n } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithEntropy overrides how each worker's generator is created.
func WithEntropy(f func() (prng.Generator, error)) Option {
	return func(s *Service) { s.entropy = f }
}

// New returns a batch Service.
func New(opts ...Option) *Service {
	s := &Service{
		log:     slog.New(slog.DiscardHandler),
		entropy: func() (prng.Generator, error) { return prng.NewFromEntropy() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	return s
}

// Generate creates count identities for serverURL. Results are ordered by
// index. On error or cancellation no partial results are returned.
func (s *Service) Generate(ctx context.Context, serverURL string, count int) ([]domain.GeneratedIdentity, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	workers := min(s.workers, count)
	s.log.Info("batch started", slog.Int("count", count), slog.Int("workers", workers))

	out := make([]domain.GeneratedIdentity, count)
	jobs := make(chan int)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(jobs)
		for i := range count {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := range workers {
		eg.Go(func() error {
			g, err := s.entropy()
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			defer prng.Wipe(g)
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := s.generateOne(g, serverURL, i)
				if err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
				out[i] = res
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		s.log.Warn("batch aborted", slog.Any("err", err))
		return nil, err
	}
	s.log.Info("batch finished", slog.Int("count", count))
	return out, nil
}

func (s *Service) generateOne(g prng.Generator, serverURL string, i int) (domain.GeneratedIdentity, error) {
	done := s.metrics.BatchStart()
	defer done()

	owned, err := identity.Generate(serverURL, g)
	if err != nil {
		return domain.GeneratedIdentity{}, err
	}
	defer owned.Wipe()

	pub := owned.Public()
	return domain.GeneratedIdentity{
		Index:       i,
		Fingerprint: domain.Fingerprint(pub.Fingerprint()),
		Identity:    pub.Bytes(),
	}, nil
}

// Compile-time assertion that Service implements domain.BatchService.
var _ domain.BatchService = (*Service)(nil)
