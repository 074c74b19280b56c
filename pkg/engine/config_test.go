package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/engine"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := engine.LoadConfig()
		require.NoError(t, err)
		assert.False(t, cfg.Convert)
		assert.Equal(t, engine.DefaultTimeout, cfg.Timeout)
		assert.Equal(t, engine.DefaultMaxConcurrency, cfg.MaxConcurrency)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("VALIDATOR_CONVERT", "true")
		t.Setenv("VALIDATOR_TIMEOUT", "250ms")
		t.Setenv("VALIDATOR_MAX_CONCURRENCY", "3")

		cfg, err := engine.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Convert)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
		assert.Equal(t, 3, cfg.MaxConcurrency)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Setenv("VALIDATOR_TIMEOUT", "soon")
		_, err := engine.LoadConfig()
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrInvalidConfig)
	})

	t.Run("non-positive values fall back to defaults", func(t *testing.T) {
		t.Setenv("VALIDATOR_TIMEOUT", "0s")
		t.Setenv("VALIDATOR_MAX_CONCURRENCY", "-1")

		cfg, err := engine.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultTimeout, cfg.Timeout)
		assert.Equal(t, engine.DefaultMaxConcurrency, cfg.MaxConcurrency)
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("VALIDATOR_CONVERT", "true")

	eng, err := engine.NewFromEnv()
	require.NoError(t, err)
	require.NotNil(t, eng)
}
