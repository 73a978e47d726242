package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/internal/workload"
)

// flagKeys maps run flags onto config keys.
var flagKeys = map[string]string{
	"capacity":     "capacity",
	"mode":         "mode",
	"producers":    "producers",
	"consumers":    "consumers",
	"items":        "items",
	"seed":         "seed",
	"pin":          "pin",
	"metrics-addr": "metrics.addr",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ringbench",
		Short:         "Exercise hioload-ring buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a producer/consumer workload and verify FIFO delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := control.NewLoader()
			if err := loader.BindFlags(cmd.Flags(), flagKeys); err != nil {
				return err
			}
			cfg, err := loader.Load(configPath)
			if err != nil {
				return err
			}
			return runBench(cmd.Context(), *cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.Int("capacity", 1024, "ring capacity")
	flags.String("mode", control.ModeSingle, "ring mode: single, locked or spsc")
	flags.Int("producers", 1, "producer goroutines (locked/spsc)")
	flags.Int("consumers", 1, "consumer goroutines (locked/spsc)")
	flags.Int("items", 1_000_000, "items to push through the ring")
	flags.Uint64("seed", 1, "PRNG seed for the single mode")
	flags.Bool("pin", false, "pin producer/consumer goroutines to CPUs (locked/spsc)")
	flags.String("metrics-addr", "", "serve prometheus metrics on this address")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("log-format", "console", "console or json")
	return cmd
}

func runBench(ctx context.Context, cfg control.Config, out io.Writer) error {
	log, err := control.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	probes := control.NewDebugProbes()
	log.Debug("platform", zap.Any("probes", probes.DumpState()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	rings := control.NewRingRegistry()
	reg.MustRegister(rings)
	metrics := workload.NewMetrics(reg)

	if cfg.Metrics.Addr != "" {
		srv, err := serveMetrics(cfg.Metrics.Addr, reg, log)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runner, err := workload.NewRunner(cfg, log, workload.WithMetrics(metrics), workload.WithRingRegistry(rings))
	if err != nil {
		return err
	}
	res, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, workload.ErrOrderViolation) {
			return fmt.Errorf("verification failed: %w", err)
		}
		return err
	}
	printSummary(out, res)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	return srv, nil
}

func printSummary(out io.Writer, res *workload.Result) {
	rate := 0.0
	if secs := res.Duration.Seconds(); secs > 0 {
		rate = float64(res.Dequeued) / secs
	}
	fmt.Fprintf(out, "mode:        %s (capacity %s)\n", res.Mode, humanize.Comma(int64(res.Capacity)))
	fmt.Fprintf(out, "delivered:   %s items in %s\n", humanize.Comma(int64(res.Dequeued)), res.Duration.Round(time.Microsecond))
	fmt.Fprintf(out, "throughput:  %s items/s\n", humanize.CommafWithDigits(rate, 0))
	fmt.Fprintf(out, "full:        %s rejected enqueues\n", humanize.Comma(int64(res.Rejected)))
	fmt.Fprintf(out, "empty:       %s empty dequeues\n", humanize.Comma(int64(res.EmptyPolls)))
}
