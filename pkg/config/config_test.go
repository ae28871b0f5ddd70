package config_test

import (
	"testing"
	"time"

	"github.com/avelsk/bankledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)

	assert.Equal(t, 5, cfg.Transfer.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Transfer.InitialDelay)
	assert.Equal(t, 2, cfg.Transfer.Multiplier)
	assert.Equal(t, 30*time.Second, cfg.Transfer.TxTimeout)
	assert.Equal(t, 5*time.Second, cfg.Transfer.LockWait)

	assert.Equal(t, 30*time.Second, cfg.Accrual.Interval)
	assert.Equal(t, "1.10", cfg.Accrual.GrowthFactor)
	assert.Equal(t, "2.07", cfg.Accrual.CapMultiplier)

	assert.Empty(t, cfg.Redis.Addr, "memory cache by default")
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("TRANSFER_MAX_ATTEMPTS", "3")
	t.Setenv("TRANSFER_INITIAL_DELAY", "50ms")
	t.Setenv("ACCRUAL_INTERVAL", "1m")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Transfer.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Transfer.InitialDelay)
	assert.Equal(t, time.Minute, cfg.Accrual.Interval)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_BadValueFails(t *testing.T) {
	t.Setenv("TRANSFER_TX_TIMEOUT", "not-a-duration")

	_, err := config.Load("testdata/nonexistent.env")
	require.Error(t, err)
}
