package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"keystone/internal/app"
	"keystone/internal/domain"
)

func TestNew_WiresServices(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, a.IDs)
	require.NotNil(t, a.Messages)
	require.NotNil(t, a.Batch)
	require.NotNil(t, a.Registry)

	list, err := a.IDs.ListIdentities()
	require.NoError(t, err)
	require.Empty(t, list)

	_, _, err = a.IDs.GenerateIdentity("weak", cfg.ServerURL, domain.IdentityDetails{})
	require.Error(t, err)

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := app.New(app.Config{}, nil)
	require.Error(t, err)
}
