package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/config"
)

type cacheConfig struct {
	TTL  time.Duration `env:"TEST_CACHE_TTL" envDefault:"5m"`
	Size int           `env:"TEST_CACHE_SIZE" envDefault:"1000"`
}

type requiredConfig struct {
	URL string `env:"TEST_REQUIRED_URL,required"`
}

func TestLoad(t *testing.T) {
	t.Run("parses env with defaults", func(t *testing.T) {
		t.Setenv("TEST_CACHE_TTL", "30s")

		var cfg cacheConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 30*time.Second, cfg.TTL)
		assert.Equal(t, 1000, cfg.Size)
	})

	t.Run("caches per type", func(t *testing.T) {
		// First load above pinned the values; a changed environment does
		// not alter subsequent loads of the same type.
		t.Setenv("TEST_CACHE_TTL", "1h")

		var cfg cacheConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 30*time.Second, cfg.TTL)
	})

	t.Run("missing required variable errors", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer errors", func(t *testing.T) {
		var cfg *cacheConfig
		require.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}
