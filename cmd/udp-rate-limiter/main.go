// Command udp-rate-limiter caps the outbound UDP rate from this host to a
// streaming inference board, so the board never receives more traffic than
// it can ingest.
//
// Usage:
//
//	udp-rate-limiter set --board-ip 10.0.0.100 --port 32401 --rate-kbps 425000
//	udp-rate-limiter reset --board-ip 10.0.0.100 --port 32401
//	udp-rate-limiter autoset --board-ip 10.0.0.100 --arch hailo8 --fps 30 \
//	    --frame-sizes 150528,150528
//
// Flags fall back to BOARDKIT_* environment variables (see flag defaults).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/accelstream/boardkit/core/config"
	"github.com/accelstream/boardkit/core/logger"
	"github.com/accelstream/boardkit/pkg/netgroup"
	"github.com/accelstream/boardkit/pkg/trafficctl"
	"github.com/accelstream/boardkit/pkg/udprate"
)

type envConfig struct {
	BoardIP   string  `env:"BOARDKIT_BOARD_IP"`
	Interface string  `env:"BOARDKIT_INTERFACE"`
	Arch      string  `env:"BOARDKIT_HW_ARCH" envDefault:"hailo8"`
	FPS       float64 `env:"BOARDKIT_FPS" envDefault:"30"`
	FPSFactor float64 `env:"BOARDKIT_FPS_FACTOR" envDefault:"1.0"`
	Verbose   bool    `env:"BOARDKIT_VERBOSE"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "udp-rate-limiter:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected a subcommand: set, reset or autoset")
	}

	var cfg envConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logger.New(logger.WithApp("udp-rate-limiter"), logger.WithLevel(level))

	ctx := context.Background()

	switch args[0] {
	case "set":
		return runSet(ctx, cfg, log, args[1:])
	case "reset":
		return runReset(ctx, cfg, log, args[1:])
	case "autoset":
		return runAutoset(ctx, cfg, log, args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func controllerOptions(log *slog.Logger, iface string) []trafficctl.Option {
	opts := []trafficctl.Option{trafficctl.WithLogger(log)}
	if iface != "" {
		opts = append(opts, trafficctl.WithInterface(iface))
	}
	return opts
}

func runSet(ctx context.Context, cfg envConfig, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	boardIP := fs.String("board-ip", cfg.BoardIP, "board IP address")
	port := fs.Int("port", 0, "UDP dataflow port")
	rate := fs.Float64("rate-kbps", 0, "rate limit in kbit/s")
	iface := fs.String("interface", cfg.Interface, "egress interface (resolved from board IP when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	limiter, err := udprate.NewLimiter(*boardIP, *port, *rate, controllerOptions(log, *iface)...)
	if err != nil {
		return err
	}
	return limiter.Set(ctx)
}

func runReset(ctx context.Context, cfg envConfig, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	boardIP := fs.String("board-ip", cfg.BoardIP, "board IP address")
	port := fs.Int("port", 0, "UDP dataflow port")
	iface := fs.String("interface", cfg.Interface, "egress interface (resolved from board IP when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	limiter, err := udprate.NewLimiter(*boardIP, *port, 0, controllerOptions(log, *iface)...)
	if err != nil {
		return err
	}
	return limiter.Reset(ctx)
}

func runAutoset(ctx context.Context, cfg envConfig, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("autoset", flag.ContinueOnError)
	boardIP := fs.String("board-ip", cfg.BoardIP, "board IP address")
	arch := fs.String("arch", cfg.Arch, "board hardware architecture")
	fps := fs.Float64("fps", cfg.FPS, "target frame rate")
	factor := fs.Float64("fps-factor", cfg.FPSFactor, "safety factor applied to the capacity budget")
	frameSizes := fs.String("frame-sizes", "", "comma-separated input frame sizes in bytes, in stream-index order")
	iface := fs.String("interface", cfg.Interface, "egress interface (resolved from board IP when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	desc, err := descriptorFromFrameSizes(*frameSizes)
	if err != nil {
		return err
	}

	maxKbps := udprate.MaxSupportedKbps(*arch)
	rates, err := udprate.CalcRates(desc, "", *fps, *factor, maxKbps)
	if err != nil {
		return err
	}

	ports := make([]int, 0, len(rates))
	for port := range rates {
		ports = append(ports, port)
	}
	sort.Ints(ports)

	for _, port := range ports {
		limiter, err := udprate.NewLimiter(*boardIP, port, rates[port], controllerOptions(log, *iface)...)
		if err != nil {
			return err
		}
		// Clean baseline first; a previous run may have left limits behind.
		if err := limiter.Reset(ctx); err != nil {
			return err
		}
		if err := limiter.Set(ctx); err != nil {
			return err
		}
		fmt.Printf("%d\t%.2f kbit/s\n", port, rates[port])
	}

	log.Info("rates applied",
		logger.Board(*boardIP),
		logger.Count("ports", len(ports)),
		logger.RateKbps(rates.TotalKbps()),
	)
	return nil
}

// descriptorFromFrameSizes builds a single-group descriptor where stream N
// has the Nth frame size and streams to port base+N.
func descriptorFromFrameSizes(list string) (netgroup.Descriptor, error) {
	if strings.TrimSpace(list) == "" {
		return nil, fmt.Errorf("missing --frame-sizes")
	}

	var streams []netgroup.StreamInfo
	for i, field := range strings.Split(list, ",") {
		size, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid frame size %q: %w", field, err)
		}
		streams = append(streams, netgroup.StreamInfo{
			Name:      fmt.Sprintf("input%d", i),
			Index:     i,
			FrameSize: uint32(size),
			Direction: netgroup.HostToDevice,
		})
	}

	return netgroup.NewStatic(map[string][]netgroup.StreamInfo{"default": streams}), nil
}
