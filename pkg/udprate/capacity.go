package udprate

// Maximum aggregate rates a board architecture can reliably ingest, kbit/s.
const (
	// DefaultMaxKbps is the capacity assumed for any architecture without a
	// dedicated entry, including "hailo8".
	DefaultMaxKbps = 850_000

	// PaprikaB0MaxKbps is the capacity of the paprika_b0 bring-up board.
	PaprikaB0MaxKbps = 160_000
)

// MaxSupportedKbps maps a hardware architecture identifier to its maximum
// supported aggregate rate in kbit/s. Unrecognized or empty architectures map
// to DefaultMaxKbps; unknown input is not an error.
func MaxSupportedKbps(arch string) float64 {
	switch arch {
	case "paprika_b0":
		return PaprikaB0MaxKbps
	default:
		return DefaultMaxKbps
	}
}
