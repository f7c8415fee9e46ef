// Package udprate bounds the outbound UDP rate from a host to a streaming
// inference board so the host never exceeds the board's ingest capacity.
//
// Rates are computed once, statically: the board architecture resolves to a
// capacity budget (MaxSupportedKbps), the model descriptor divides that
// budget across the network group's input streams, and CalcRates maps the
// result to one kbit/s rate per UDP dataflow port. A Session applies all
// port limits on Begin and guarantees their removal on End, success or
// failure; a failed Begin rolls back every limit it already applied.
//
// Basic usage:
//
//	session, err := udprate.Begin(ctx, network, 30, 1.0)
//	if err != nil {
//		return err
//	}
//	defer session.End(ctx)
//
//	// stream frames to the board
//
// For manual single-port use outside a session:
//
//	limiter, err := udprate.NewLimiter("10.0.0.100", 32401, 425_000)
//	if err != nil {
//		return err
//	}
//	if err := limiter.Set(ctx); err != nil {
//		return err
//	}
//	defer limiter.Reset(ctx)
package udprate
