package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelstream/boardkit/core/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses env vars with defaults", func(t *testing.T) {
		type limiterEnv struct {
			BoardIP   string  `env:"TEST_BOARD_IP" envDefault:"10.0.0.1"`
			FPS       int     `env:"TEST_FPS" envDefault:"30"`
			FPSFactor float64 `env:"TEST_FPS_FACTOR" envDefault:"1.0"`
		}

		var cfg limiterEnv
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "10.0.0.1", cfg.BoardIP)
		assert.Equal(t, 30, cfg.FPS)
		assert.Equal(t, 1.0, cfg.FPSFactor)
	})

	t.Run("explicit env overrides default", func(t *testing.T) {
		type archEnv struct {
			Arch string `env:"TEST_HW_ARCH" envDefault:"hailo8"`
		}

		t.Setenv("TEST_HW_ARCH", "paprika_b0")

		var cfg archEnv
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "paprika_b0", cfg.Arch)
	})

	t.Run("caches per type", func(t *testing.T) {
		type cachedEnv struct {
			Port int `env:"TEST_CACHED_PORT" envDefault:"32401"`
		}

		var first cachedEnv
		require.NoError(t, config.Load(&first))

		// Changing the environment after the first load must not change the
		// cached value.
		t.Setenv("TEST_CACHED_PORT", "9999")

		var second cachedEnv
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		type requiredEnv struct {
			Token string `env:"TEST_MISSING_REQUIRED,required"`
		}

		var cfg requiredEnv
		assert.Error(t, config.Load(&cfg))
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type badEnv struct {
			Value int `env:"TEST_MUST_LOAD_BAD,required"`
		}

		assert.Panics(t, func() {
			var cfg badEnv
			config.MustLoad(&cfg)
		})
	})
}
