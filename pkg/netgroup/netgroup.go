package netgroup

import "fmt"

// InputDataflowBasePort is the first UDP port the board listens on for input
// stream data. Input stream N receives data on InputDataflowBasePort + N.
const InputDataflowBasePort = 32401

// Direction tells whether a stream carries data to or from the device.
type Direction int

const (
	// HostToDevice marks an input stream (host sends frames to the board).
	HostToDevice Direction = iota
	// DeviceToHost marks an output stream (board sends results back).
	DeviceToHost
)

// StreamInfo describes a single stream of a network group.
type StreamInfo struct {
	// Name identifies the stream within its network group.
	Name string
	// Index is the stream's ordinal position, used to derive its UDP port.
	Index int
	// FrameSize is the stream's data volume per frame in bytes.
	FrameSize uint32
	// Direction tells whether the stream is an input or an output.
	Direction Direction
}

// Port returns the UDP dataflow port bound to the stream.
func (s StreamInfo) Port() int {
	return InputDataflowBasePort + s.Index
}

// Target holds the network metadata of the board a network is configured on.
type Target struct {
	// RemoteAddr is the board's IP address.
	RemoteAddr string
	// Arch is the board's hardware architecture identifier, e.g. "hailo8".
	Arch string
}

// ConfiguredNetwork binds a network group of a model descriptor to a board
// target. It is the unit a rate-limiting session operates on.
type ConfiguredNetwork struct {
	Target     Target
	Descriptor Descriptor
	// Group names the network group within the descriptor. May be empty when
	// the descriptor holds a single group.
	Group string
}

// Validate reports whether the network is usable by a session. It fails
// immediately on incomplete values instead of letting a half-configured
// network reach the enforcement layer.
func (n *ConfiguredNetwork) Validate() error {
	switch {
	case n == nil:
		return fmt.Errorf("%w: nil network", ErrNotConfigured)
	case n.Target.RemoteAddr == "":
		return fmt.Errorf("%w: missing remote address", ErrNotConfigured)
	case n.Descriptor == nil:
		return fmt.Errorf("%w: missing descriptor", ErrNotConfigured)
	}
	return nil
}
