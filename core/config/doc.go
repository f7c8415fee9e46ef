// Package config provides type-safe environment variable loading with
// per-type caching using Go generics.
//
// The package loads .env files once on first use and parses environment
// variables into struct fields with the caarlos0/env library.
//
// Basic usage:
//
//	import "github.com/accelstream/boardkit/core/config"
//
//	type LimiterConfig struct {
//		BoardIP   string  `env:"BOARDKIT_BOARD_IP,required"`
//		FPS       int     `env:"BOARDKIT_FPS" envDefault:"30"`
//		FPSFactor float64 `env:"BOARDKIT_FPS_FACTOR" envDefault:"1.0"`
//	}
//
//	func main() {
//		var cfg LimiterConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//		// or config.MustLoad(&cfg) to panic at startup
//	}
//
// Each configuration type is loaded only once per application lifetime;
// loading the same type again returns the cached value. Different types are
// cached independently.
package config
