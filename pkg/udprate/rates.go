package udprate

import (
	"fmt"

	"github.com/accelstream/boardkit/pkg/netgroup"
)

// BytesPerKbit converts between kbit/s and bytes/sec.
const BytesPerKbit = 125.0

// PortRateMap maps a UDP dataflow port to its rate budget in kbit/s.
type PortRateMap map[int]float64

// TotalKbps returns the sum of all port rates.
func (m PortRateMap) TotalKbps() float64 {
	var total float64
	for _, rate := range m {
		total += rate
	}
	return total
}

// CalcRates computes the per-port rate budget for a network group. The
// aggregate budget is maxKbps x fpsFactor; the descriptor divides it across
// input streams proportionally to their data volume, and each stream maps to
// the port derived from its index. The sum of returned rates never exceeds
// the aggregate budget.
//
// A mismatch between the group's input streams and the computed rates fails
// with ErrRateMismatch before anything else can consume the mapping.
func CalcRates(desc netgroup.Descriptor, group string, frameRate, fpsFactor, maxKbps float64) (PortRateMap, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate %f", ErrInvalidInput, frameRate)
	}
	if fpsFactor <= 0 {
		return nil, fmt.Errorf("%w: fps factor %f", ErrInvalidInput, fpsFactor)
	}
	if maxKbps <= 0 {
		return nil, fmt.Errorf("%w: capacity %f kbit/s", ErrInvalidInput, maxKbps)
	}

	inputs, err := desc.InputStreams(group)
	if err != nil {
		return nil, err
	}

	budgetBytes := maxKbps * fpsFactor * BytesPerKbit
	rates, err := desc.StreamRates(frameRate, budgetBytes, group)
	if err != nil {
		return nil, err
	}

	if len(inputs) != len(rates) {
		return nil, fmt.Errorf("%w: %d input streams, %d computed rates",
			ErrRateMismatch, len(inputs), len(rates))
	}

	result := make(PortRateMap, len(inputs))
	for _, stream := range inputs {
		rateBytes, ok := rates[stream.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no rate for stream %q", ErrRateMismatch, stream.Name)
		}

		port := stream.Port()
		if _, taken := result[port]; taken {
			return nil, fmt.Errorf("%w: duplicate port %d", ErrInvalidInput, port)
		}
		result[port] = rateBytes / BytesPerKbit
	}

	// The descriptor is opaque; never let an over-budget mapping reach the
	// enforcement layer.
	budgetKbps := maxKbps * fpsFactor
	if total := result.TotalKbps(); total > budgetKbps*(1+1e-9) {
		return nil, fmt.Errorf("%w: computed %f kbit/s exceeds budget %f kbit/s",
			ErrInvalidInput, total, budgetKbps)
	}
	return result, nil
}
