package trafficctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"

	"github.com/accelstream/boardkit/core/logger"
)

// State tracks which side of the limit a controller last applied.
type State int

const (
	// StateUnbound means neither SetLimit nor ResetLimit ran yet.
	StateUnbound State = iota
	// StateSet means the limit is currently applied.
	StateSet
	// StateUnset means the limit was removed (or never existed).
	StateUnset
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateSet:
		return "set"
	case StateUnset:
		return "unset"
	default:
		return "unbound"
	}
}

// Controller shapes outbound traffic for one (remote address, port) pair.
// It is not safe for concurrent use; operations on the same port must be
// sequenced by the caller.
type Controller struct {
	remoteAddr string
	port       int
	rateKbps   float64
	iface      string

	runner Runner
	log    *slog.Logger
	state  State
}

// Option configures a Controller.
type Option func(*Controller)

// WithRunner substitutes the command runner. Used by tests and by callers
// that wrap tc invocations (sudo, namespaces).
func WithRunner(r Runner) Option {
	return func(c *Controller) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithInterface pins the egress interface instead of resolving it from the
// remote address.
func WithInterface(name string) Option {
	return func(c *Controller) {
		c.iface = name
	}
}

// WithLogger sets the logger for applied and removed limits.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Controller bound to (remoteAddr, port, rateKbps). The rate
// may be zero for reset-only controllers; SetLimit requires a positive rate.
func New(remoteAddr string, port int, rateKbps float64, opts ...Option) (*Controller, error) {
	if net.ParseIP(remoteAddr) == nil {
		return nil, fmt.Errorf("%w: invalid remote address %q", ErrBadParam, remoteAddr)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrBadParam, port)
	}
	if rateKbps < 0 {
		return nil, fmt.Errorf("%w: negative rate %f", ErrBadParam, rateKbps)
	}

	c := &Controller{
		remoteAddr: remoteAddr,
		port:       port,
		rateKbps:   rateKbps,
		runner:     NewExecRunner(),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.iface == "" {
		iface, err := InterfaceName(remoteAddr)
		if err != nil {
			return nil, err
		}
		c.iface = iface
	}
	return c, nil
}

// State returns the controller's last applied state.
func (c *Controller) State() State {
	return c.state
}

// Port returns the UDP port the controller is bound to.
func (c *Controller) Port() int {
	return c.port
}

// RateKbps returns the configured rate in kbit/s.
func (c *Controller) RateKbps() float64 {
	return c.rateKbps
}

// SetLimit caps outbound traffic to the remote port at the configured rate.
// Calling it while the limit is already applied is a no-op.
func (c *Controller) SetLimit(ctx context.Context) error {
	if c.state == StateSet {
		return nil
	}
	if c.rateKbps <= 0 {
		return fmt.Errorf("%w: rate must be positive, got %f", ErrBadParam, c.rateKbps)
	}

	// The root qdisc is shared by every port shaped on this interface. A
	// nonzero exit here means it already exists; only invocation failures
	// abort.
	err := c.runner.Run(ctx, "qdisc", "add", "dev", c.iface, "root", "handle", "1:", "htb")
	if err != nil && !errors.Is(err, ErrBadParam) {
		return err
	}

	rate := strconv.FormatFloat(c.rateKbps, 'f', -1, 64) + "kbit"
	if err := c.runner.Run(ctx, "class", "add", "dev", c.iface,
		"parent", "1:", "classid", c.classID(),
		"htb", "rate", rate, "ceil", rate); err != nil {
		return err
	}

	if err := c.runner.Run(ctx, "filter", "add", "dev", c.iface,
		"protocol", "ip", "parent", "1:", "prio", strconv.Itoa(c.port),
		"u32",
		"match", "ip", "dst", c.remoteAddr+"/32",
		"match", "ip", "dport", strconv.Itoa(c.port), "0xffff",
		"flowid", c.classID()); err != nil {
		return err
	}

	c.state = StateSet
	c.log.Info("rate limit applied",
		logger.Component("trafficctl"),
		logger.Board(c.remoteAddr),
		logger.Port(c.port),
		logger.RateKbps(c.rateKbps),
	)
	return nil
}

// ResetLimit removes the cap for the remote port. It succeeds as a no-op when
// no limit is active: delete commands exiting nonzero only mean there was
// nothing to delete. The shared root qdisc stays in place for other ports.
func (c *Controller) ResetLimit(ctx context.Context) error {
	if c.state == StateUnset {
		return nil
	}

	err := c.runner.Run(ctx, "filter", "del", "dev", c.iface,
		"parent", "1:", "prio", strconv.Itoa(c.port))
	if err != nil && !errors.Is(err, ErrBadParam) {
		return err
	}

	err = c.runner.Run(ctx, "class", "del", "dev", c.iface, "classid", c.classID())
	if err != nil && !errors.Is(err, ErrBadParam) {
		return err
	}

	c.state = StateUnset
	c.log.Info("rate limit removed",
		logger.Component("trafficctl"),
		logger.Board(c.remoteAddr),
		logger.Port(c.port),
	)
	return nil
}

// classID derives the per-port htb class from the port number, unique within
// the interface's root qdisc.
func (c *Controller) classID() string {
	return fmt.Sprintf("1:%x", c.port)
}
