package trafficctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"strings"
)

// Runner executes one traffic-control command. Implementations distinguish
// parameter rejection (the command ran and exited nonzero) from invocation
// failure (the command could not run at all).
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

// execRunner shells out to the tc binary.
type execRunner struct{}

// NewExecRunner returns the production Runner backed by the tc binary.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, args ...string) error {
	out, err := exec.CommandContext(ctx, "tc", args...).CombinedOutput()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: tc %s: %s", ErrBadParam,
			strings.Join(args, " "), bytes.TrimSpace(out))
	}
	return fmt.Errorf("%w: tc %s: %v", ErrCallFailed, strings.Join(args, " "), err)
}

// InterfaceName resolves the local interface whose subnet contains the remote
// address, the egress device tc rules must attach to.
func InterfaceName(remoteAddr string) (string, error) {
	remote := net.ParseIP(remoteAddr)
	if remote == nil {
		return "", fmt.Errorf("%w: invalid remote address %q", ErrBadParam, remoteAddr)
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("%w: list interfaces: %v", ErrCallFailed, err)
	}

	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if ok && ipNet.Contains(remote) {
				return iface.Name, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no interface routes %s", ErrCallFailed, remoteAddr)
}
