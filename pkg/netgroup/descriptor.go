package netgroup

import "fmt"

// Descriptor exposes the stream metadata of a compiled model. Implementations
// wrap whatever artifact the model ships in; rate allocation only needs the
// two views below.
type Descriptor interface {
	// InputStreams lists the input streams of a network group in index order.
	InputStreams(group string) ([]StreamInfo, error)

	// StreamRates divides a capacity budget (bytes/sec) across the group's
	// input streams at the given frame rate. The returned map holds one
	// bytes/sec rate per input stream name.
	StreamRates(frameRate, budgetBytesPerSec float64, group string) (map[string]float64, error)
}

// Static is a Descriptor backed by in-memory stream tables, one per network
// group.
type Static struct {
	groups map[string][]StreamInfo
}

// NewStatic creates a Static descriptor from per-group stream tables.
func NewStatic(groups map[string][]StreamInfo) *Static {
	copied := make(map[string][]StreamInfo, len(groups))
	for name, streams := range groups {
		copied[name] = append([]StreamInfo(nil), streams...)
	}
	return &Static{groups: copied}
}

// InputStreams implements Descriptor.
func (d *Static) InputStreams(group string) ([]StreamInfo, error) {
	streams, err := d.lookup(group)
	if err != nil {
		return nil, err
	}

	var inputs []StreamInfo
	for _, s := range streams {
		if s.Direction == HostToDevice {
			inputs = append(inputs, s)
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoStreams, group)
	}
	return inputs, nil
}

// StreamRates implements Descriptor. Each input stream desires
// FrameSize x frameRate bytes/sec; the total link volume counts output
// streams as well. When the desired total exceeds the budget, every input
// rate is scaled down by budget/total, keeping the division proportional to
// per-stream byte volume.
func (d *Static) StreamRates(frameRate, budgetBytesPerSec float64, group string) (map[string]float64, error) {
	streams, err := d.lookup(group)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, s := range streams {
		total += float64(s.FrameSize) * frameRate
	}

	scale := 1.0
	if total > budgetBytesPerSec && total > 0 {
		scale = budgetBytesPerSec / total
	}

	rates := make(map[string]float64)
	for _, s := range streams {
		if s.Direction != HostToDevice {
			continue
		}
		rates[s.Name] = float64(s.FrameSize) * frameRate * scale
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoStreams, group)
	}
	return rates, nil
}

func (d *Static) lookup(group string) ([]StreamInfo, error) {
	if group == "" && len(d.groups) == 1 {
		for _, streams := range d.groups {
			return streams, nil
		}
	}
	streams, ok := d.groups[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
	return streams, nil
}
