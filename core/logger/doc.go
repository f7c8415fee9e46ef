// Package logger provides structured logging utilities built on the standard
// slog package: a small factory with functional options and a set of
// pre-built attribute helpers for the attributes this toolkit logs.
//
// Basic usage:
//
//	import "github.com/accelstream/boardkit/core/logger"
//
//	log := logger.New(
//		logger.WithApp("udp-rate-limiter"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("limit applied",
//		logger.Component("trafficctl"),
//		logger.Port(32401),
//		logger.RateKbps(425_000),
//	)
//
// Attribute helpers follow the empty-Attr pattern: helpers taking nilable
// values return an empty attribute for nil, so call sites never need nil
// checks.
package logger
