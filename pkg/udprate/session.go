package udprate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/accelstream/boardkit/core/logger"
	"github.com/accelstream/boardkit/pkg/netgroup"
	"github.com/accelstream/boardkit/pkg/trafficctl"
)

// Session owns the rate limits applied to a board for the duration of a
// streaming run. Every limit a Begin call applies is removed either by End
// or, when Begin itself fails partway, by Begin's own rollback. No handle
// outlives the session.
type Session struct {
	id          uuid.UUID
	remoteAddr  string
	rates       PortRateMap
	controllers []*trafficctl.Controller
	log         *slog.Logger
}

type sessionOptions struct {
	log     *slog.Logger
	ctlOpts []trafficctl.Option
}

// SessionOption configures Begin.
type SessionOption func(*sessionOptions)

// WithLogger sets the session logger.
func WithLogger(log *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithControllerOptions passes options to every traffic controller the
// session creates (runner substitution, interface pinning).
func WithControllerOptions(opts ...trafficctl.Option) SessionOption {
	return func(o *sessionOptions) {
		o.ctlOpts = append(o.ctlOpts, opts...)
	}
}

// Begin computes the per-port rates for the configured network and applies
// them all, reset-before-set on each port so a previous session's leftovers
// cannot stack. If anything fails after the first limit is applied, every
// limit already set by this call is rolled back before the error returns.
func Begin(ctx context.Context, network *netgroup.ConfiguredNetwork, frameRate, fpsFactor float64, opts ...SessionOption) (*Session, error) {
	if err := network.Validate(); err != nil {
		return nil, err
	}

	o := sessionOptions{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	maxKbps := MaxSupportedKbps(network.Target.Arch)
	rates, err := CalcRates(network.Descriptor, network.Group, frameRate, fpsFactor, maxKbps)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:         uuid.New(),
		remoteAddr: network.Target.RemoteAddr,
		rates:      rates,
		log:        o.log,
	}

	// Deterministic application order keeps logs and failures reproducible.
	ports := make([]int, 0, len(rates))
	for port := range rates {
		ports = append(ports, port)
	}
	sort.Ints(ports)

	for _, port := range ports {
		ctl, err := trafficctl.New(s.remoteAddr, port, rates[port], o.ctlOpts...)
		if err != nil {
			s.rollback(ctx)
			return nil, err
		}
		s.controllers = append(s.controllers, ctl)

		if err := ctl.ResetLimit(ctx); err != nil {
			s.rollback(ctx)
			return nil, err
		}
		if err := ctl.SetLimit(ctx); err != nil {
			s.rollback(ctx)
			return nil, err
		}
	}

	s.log.Info("rate-limiting session started",
		logger.Component("udprate"),
		logger.ID("session_id", s.id.String()),
		logger.Board(s.remoteAddr),
		logger.Count("ports", len(ports)),
		logger.RateKbps(rates.TotalKbps()),
	)
	return s, nil
}

// ID returns the session's correlation identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Rates returns a copy of the applied port-to-rate mapping.
func (s *Session) Rates() PortRateMap {
	rates := make(PortRateMap, len(s.rates))
	for port, rate := range s.rates {
		rates[port] = rate
	}
	return rates
}

// Controllers exposes the session's handles, primarily so callers can verify
// terminal states during teardown.
func (s *Session) Controllers() []*trafficctl.Controller {
	return append([]*trafficctl.Controller(nil), s.controllers...)
}

// End removes every limit the session applied. Teardown is unconditional:
// each handle is reset regardless of earlier reset failures, and the joined
// reset errors are returned without disturbing whatever error the caller is
// already propagating.
func (s *Session) End(ctx context.Context) error {
	var errs []error
	for _, ctl := range s.controllers {
		if err := ctl.ResetLimit(ctx); err != nil {
			errs = append(errs, err)
			s.log.Warn("failed to remove rate limit",
				logger.Component("udprate"),
				logger.ID("session_id", s.id.String()),
				logger.Port(ctl.Port()),
				logger.Error(err),
			)
		}
	}

	s.log.Info("rate-limiting session ended",
		logger.Component("udprate"),
		logger.ID("session_id", s.id.String()),
		logger.Board(s.remoteAddr),
	)
	return errors.Join(errs...)
}

// rollback is Begin's failure path: best-effort reset of everything applied
// so far, keeping the original error the visible one.
func (s *Session) rollback(ctx context.Context) {
	for _, ctl := range s.controllers {
		if err := ctl.ResetLimit(ctx); err != nil {
			s.log.Warn("rollback reset failed",
				logger.Component("udprate"),
				logger.ID("session_id", s.id.String()),
				logger.Port(ctl.Port()),
				logger.Error(err),
			)
		}
	}
}
