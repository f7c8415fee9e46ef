// Package netgroup describes the configured network of a streaming inference
// model: its input and output streams, their per-frame data volumes, and the
// board target the network is configured against.
//
// A Descriptor exposes the stream metadata a rate allocator needs: the list
// of input streams of a network group and the volume-to-rate mapping that
// divides a capacity budget across those streams. Static is the in-memory
// Descriptor built from per-stream frame sizes.
//
// Basic usage:
//
//	desc := netgroup.NewStatic(map[string][]netgroup.StreamInfo{
//		"resnet50": {
//			{Name: "input0", Index: 0, FrameSize: 150528, Direction: netgroup.HostToDevice},
//			{Name: "output0", Index: 0, FrameSize: 4000, Direction: netgroup.DeviceToHost},
//		},
//	})
//
//	network := &netgroup.ConfiguredNetwork{
//		Target:     netgroup.Target{RemoteAddr: "10.0.0.100", Arch: "hailo8"},
//		Descriptor: desc,
//		Group:      "resnet50",
//	}
//
// Each input stream is bound to the UDP dataflow port
// InputDataflowBasePort + StreamInfo.Index.
package netgroup
