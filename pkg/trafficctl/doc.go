// Package trafficctl caps outbound UDP rates through the host's traffic
// control facility. A Controller is bound to one (remote address, port, rate)
// triple and exposes idempotent SetLimit/ResetLimit operations that shape the
// egress queue for that destination.
//
// Enforcement goes through a Runner, the seam between the controller's state
// machine and the tc binary. The default runner shells out to tc; tests
// substitute an in-memory fake.
//
// Basic usage:
//
//	ctl, err := trafficctl.New("10.0.0.100", 32401, 425_000)
//	if err != nil {
//		return err
//	}
//
//	if err := ctl.ResetLimit(ctx); err != nil { // clean baseline
//		return err
//	}
//	if err := ctl.SetLimit(ctx); err != nil {
//		return err
//	}
//	defer ctl.ResetLimit(ctx)
//
// ResetLimit succeeds even when no limit is active, so teardown paths can
// call it unconditionally. Controllers hold no shared in-process state;
// callers sequence operations on the same port themselves.
package trafficctl
