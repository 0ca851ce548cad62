package batch_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"keystone/internal/identity"
	"keystone/internal/metrics"
	"keystone/internal/prng"
	"keystone/internal/services/batch"
)

// seededEntropy hands every worker a distinct deterministic generator.
func seededEntropy() func() (prng.Generator, error) {
	var n atomic.Uint32
	return func() (prng.Generator, error) {
		seed := make([]byte, prng.MinSeedLength)
		seed[0] = byte(n.Add(1))
		return prng.New(seed)
	}
}

func TestGenerate(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := batch.New(
		batch.WithWorkers(4),
		batch.WithEntropy(seededEntropy()),
		batch.WithMetrics(metrics.New(reg)),
	)

	got, err := svc.Generate(context.Background(), "https://keys.example.org", 10)
	require.NoError(t, err)
	require.Len(t, got, 10)

	seen := map[string]bool{}
	for i, g := range got {
		require.Equal(t, i, g.Index)
		require.False(t, seen[g.Fingerprint.String()], "duplicate identity")
		seen[g.Fingerprint.String()] = true

		id, err := identity.Parse(g.Identity)
		require.NoError(t, err)
		require.Equal(t, g.Fingerprint.String(), id.Fingerprint())
	}

	n, err := testutil.GatherAndCount(reg, "keystone_batch_generate_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestGenerate_MoreWorkersThanItems(t *testing.T) {
	svc := batch.New(batch.WithWorkers(16), batch.WithEntropy(seededEntropy()))
	got, err := svc.Generate(context.Background(), "https://keys.example.org", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestGenerate_InvalidCount(t *testing.T) {
	svc := batch.New()
	_, err := svc.Generate(context.Background(), "https://keys.example.org", 0)
	require.ErrorIs(t, err, batch.ErrInvalidCount)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := batch.New(batch.WithWorkers(2), batch.WithEntropy(seededEntropy()))
	_, err := svc.Generate(ctx, "https://keys.example.org", 100)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_BadServerURL(t *testing.T) {
	svc := batch.New(batch.WithWorkers(2), batch.WithEntropy(seededEntropy()))
	_, err := svc.Generate(context.Background(), "not a url", 3)
	require.ErrorIs(t, err, identity.ErrInvalidServerURL)
}
