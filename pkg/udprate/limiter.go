package udprate

import (
	"context"

	"github.com/accelstream/boardkit/pkg/trafficctl"
)

// Limiter caps a single UDP port outside the scoped session flow. It is a
// thin pass-through to one traffic controller: no orchestration, no rollback
// beyond what the controller itself provides.
type Limiter struct {
	ctl *trafficctl.Controller
}

// NewLimiter creates a limiter for (remoteAddr, port) at rateKbps. A zero
// rate is allowed for reset-only use.
func NewLimiter(remoteAddr string, port int, rateKbps float64, opts ...trafficctl.Option) (*Limiter, error) {
	ctl, err := trafficctl.New(remoteAddr, port, rateKbps, opts...)
	if err != nil {
		return nil, err
	}
	return &Limiter{ctl: ctl}, nil
}

// Set applies the rate limit.
func (l *Limiter) Set(ctx context.Context) error {
	return l.ctl.SetLimit(ctx)
}

// Reset removes the rate limit. Succeeds as a no-op when none is active.
func (l *Limiter) Reset(ctx context.Context) error {
	return l.ctl.ResetLimit(ctx)
}

// State returns the underlying controller state.
func (l *Limiter) State() trafficctl.State {
	return l.ctl.State()
}
