package config

import (
	"testing"
	"time"

	"auction-client/internal/pricing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, 10, cfg.Bidding.PageSize)
	require.Equal(t, pricing.TieBreakEarliest, cfg.TieBreakRule())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_BASE_URL", "http://auctions.internal:9090")
	t.Setenv("TIE_BREAK", "latest")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "http://auctions.internal:9090", cfg.API.BaseURL)
	require.Equal(t, pricing.TieBreakLatest, cfg.TieBreakRule())
}

func TestLoad_RejectsUnknownTieBreak(t *testing.T) {
	t.Setenv("TIE_BREAK", "highest-user-id")

	_, err := Load()
	require.Error(t, err)
}
