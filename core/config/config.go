package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache stores loaded configurations keyed by their concrete type.
	cache sync.Map

	// loadDotEnv loads .env files once per process. Missing files are not an
	// error; explicit environment variables always win over .env contents.
	loadDotEnv = sync.OnceFunc(func() {
		_ = godotenv.Load()
	})
)

// Load parses environment variables into cfg. Each configuration type is
// loaded once per application lifetime; subsequent calls for the same type
// return the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil target")
	}

	loadDotEnv()

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	actual, _ := cache.LoadOrStore(key, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Useful during startup where a
// missing required variable should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
