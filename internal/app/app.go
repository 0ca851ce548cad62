package app

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"keystone/internal/domain"
	"keystone/internal/metrics"
	batchsvc "keystone/internal/services/batch"
	identitysvc "keystone/internal/services/identity"
	messagesvc "keystone/internal/services/message"
	"keystone/internal/store"
)

// App bundles the store, services and observability for the CLI.
type App struct {
	Config   Config
	Log      *slog.Logger
	Registry *prometheus.Registry

	Store    domain.IdentityStore
	IDs      domain.IdentityService
	Messages domain.MessageService
	Batch    domain.BatchService
}

// New constructs the dependency graph from cfg. log may be nil.
func New(cfg Config, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// File-based store
	identityStore := store.NewIdentityFileStore(cfg.Home)

	// High-level services
	ids := identitysvc.New(identityStore,
		identitysvc.WithLogger(log.With("component", "identity")),
		identitysvc.WithMetrics(m),
		identitysvc.WithUnlockLimit(rate.Limit(cfg.UnlockRate), cfg.UnlockBurst),
	)
	msgs := messagesvc.New(ids,
		messagesvc.WithLogger(log.With("component", "message")),
		messagesvc.WithMetrics(m),
	)
	batch := batchsvc.New(
		batchsvc.WithWorkers(cfg.Workers),
		batchsvc.WithLogger(log.With("component", "batch")),
		batchsvc.WithMetrics(m),
	)

	return &App{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Store:    identityStore,
		IDs:      ids,
		Messages: msgs,
		Batch:    batch,
	}, nil
}
