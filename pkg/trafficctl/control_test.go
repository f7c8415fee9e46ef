package trafficctl_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelstream/boardkit/pkg/trafficctl"
)

// fakeRunner records issued tc commands and fails those matching failOn.
type fakeRunner struct {
	commands []string
	failOn   map[string]error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) error {
	cmd := strings.Join(args, " ")
	f.commands = append(f.commands, cmd)
	for prefix, err := range f.failOn {
		if strings.HasPrefix(cmd, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeRunner) count(prefix string) int {
	n := 0
	for _, cmd := range f.commands {
		if strings.HasPrefix(cmd, prefix) {
			n++
		}
	}
	return n
}

func newController(t *testing.T, runner trafficctl.Runner, rateKbps float64) *trafficctl.Controller {
	t.Helper()

	ctl, err := trafficctl.New("10.0.0.100", 32401, rateKbps,
		trafficctl.WithRunner(runner),
		trafficctl.WithInterface("eth0"),
	)
	require.NoError(t, err)
	return ctl
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid address", func(t *testing.T) {
		t.Parallel()

		_, err := trafficctl.New("not-an-ip", 32401, 1000,
			trafficctl.WithInterface("eth0"))
		assert.ErrorIs(t, err, trafficctl.ErrBadParam)
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		t.Parallel()

		_, err := trafficctl.New("10.0.0.100", 0, 1000,
			trafficctl.WithInterface("eth0"))
		assert.ErrorIs(t, err, trafficctl.ErrBadParam)

		_, err = trafficctl.New("10.0.0.100", 70000, 1000,
			trafficctl.WithInterface("eth0"))
		assert.ErrorIs(t, err, trafficctl.ErrBadParam)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		t.Parallel()

		_, err := trafficctl.New("10.0.0.100", 32401, -1,
			trafficctl.WithInterface("eth0"))
		assert.ErrorIs(t, err, trafficctl.ErrBadParam)
	})

	t.Run("starts unbound", func(t *testing.T) {
		t.Parallel()

		ctl := newController(t, &fakeRunner{}, 1000)
		assert.Equal(t, trafficctl.StateUnbound, ctl.State())
	})
}

func TestController_SetLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("applies qdisc, class and filter", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		ctl := newController(t, runner, 425000)

		require.NoError(t, ctl.SetLimit(ctx))
		assert.Equal(t, trafficctl.StateSet, ctl.State())

		require.Len(t, runner.commands, 3)
		assert.Contains(t, runner.commands[0], "qdisc add dev eth0")
		assert.Contains(t, runner.commands[1], "rate 425000kbit")
		assert.Contains(t, runner.commands[2], "dport 32401")
		assert.Contains(t, runner.commands[2], "dst 10.0.0.100/32")
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		ctl := newController(t, runner, 1000)

		require.NoError(t, ctl.SetLimit(ctx))
		issued := len(runner.commands)

		require.NoError(t, ctl.SetLimit(ctx))
		assert.Len(t, runner.commands, issued)
		assert.Equal(t, trafficctl.StateSet, ctl.State())
	})

	t.Run("tolerates existing root qdisc", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{failOn: map[string]error{
			"qdisc add": fmt.Errorf("%w: exit status 2", trafficctl.ErrBadParam),
		}}
		ctl := newController(t, runner, 1000)

		require.NoError(t, ctl.SetLimit(ctx))
		assert.Equal(t, trafficctl.StateSet, ctl.State())
	})

	t.Run("rejected class parameters surface as ErrBadParam", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{failOn: map[string]error{
			"class add": fmt.Errorf("%w: exit status 1", trafficctl.ErrBadParam),
		}}
		ctl := newController(t, runner, 1000)

		err := ctl.SetLimit(ctx)
		assert.ErrorIs(t, err, trafficctl.ErrBadParam)
		assert.NotEqual(t, trafficctl.StateSet, ctl.State())
	})

	t.Run("invocation failure surfaces as ErrCallFailed", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{failOn: map[string]error{
			"qdisc add": fmt.Errorf("%w: executable not found", trafficctl.ErrCallFailed),
		}}
		ctl := newController(t, runner, 1000)

		err := ctl.SetLimit(ctx)
		assert.ErrorIs(t, err, trafficctl.ErrCallFailed)
	})

	t.Run("zero rate cannot be applied", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		ctl := newController(t, runner, 0)

		err := ctl.SetLimit(ctx)
		assert.ErrorIs(t, err, trafficctl.ErrBadParam)
		assert.Empty(t, runner.commands)
	})
}

func TestController_ResetLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes filter and class, keeps root qdisc", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		ctl := newController(t, runner, 1000)
		require.NoError(t, ctl.SetLimit(ctx))

		require.NoError(t, ctl.ResetLimit(ctx))
		assert.Equal(t, trafficctl.StateUnset, ctl.State())
		assert.Equal(t, 1, runner.count("filter del"))
		assert.Equal(t, 1, runner.count("class del"))
		assert.Zero(t, runner.count("qdisc del"))
	})

	t.Run("no-op when nothing is set", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{failOn: map[string]error{
			"filter del": fmt.Errorf("%w: exit status 2", trafficctl.ErrBadParam),
			"class del":  fmt.Errorf("%w: exit status 2", trafficctl.ErrBadParam),
		}}
		ctl := newController(t, runner, 1000)

		require.NoError(t, ctl.ResetLimit(ctx))
		assert.Equal(t, trafficctl.StateUnset, ctl.State())
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		ctl := newController(t, runner, 1000)
		require.NoError(t, ctl.SetLimit(ctx))

		require.NoError(t, ctl.ResetLimit(ctx))
		issued := len(runner.commands)

		require.NoError(t, ctl.ResetLimit(ctx))
		assert.Len(t, runner.commands, issued)
		assert.Equal(t, trafficctl.StateUnset, ctl.State())
	})

	t.Run("invocation failure surfaces as ErrCallFailed", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{failOn: map[string]error{
			"filter del": fmt.Errorf("%w: permission denied", trafficctl.ErrCallFailed),
		}}
		ctl := newController(t, runner, 1000)
		require.NoError(t, ctl.SetLimit(ctx))

		err := ctl.ResetLimit(ctx)
		assert.ErrorIs(t, err, trafficctl.ErrCallFailed)
	})

	t.Run("set after reset reapplies the limit", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		ctl := newController(t, runner, 1000)

		require.NoError(t, ctl.ResetLimit(ctx))
		require.NoError(t, ctl.SetLimit(ctx))
		assert.Equal(t, trafficctl.StateSet, ctl.State())
	})
}
