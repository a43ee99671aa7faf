package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/phanxgames/krait"
	"github.com/phanxgames/krait/config"
	"github.com/phanxgames/krait/internal/logging"
	"github.com/phanxgames/krait/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// flagKeys maps run flags to config keys.
var flagKeys = map[string]string{
	"fps":          "loop.target_rate",
	"frames":       "loop.max_frames",
	"script":       "input.script",
	"windowed":     "loop.windowed",
	"metrics-addr": "metrics.addr",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo scene",
		Long: `Runs the bundled demo scene until interrupted or until --frames iterations
have completed. Changed flags override KRAIT_* environment variables, which
override the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runScene(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.Float64("fps", 60, "target frames per second (0 = uncapped)")
	f.Uint64("frames", 0, "stop after this many frames (0 = run until interrupted)")
	f.String("script", "", "YAML input script to replay")
	f.Bool("windowed", false, "run inside a window with keyboard input")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("log-format", "text", "log format (text, json)")
	return cmd
}

// loadConfig merges defaults, the config file, the environment and changed
// flags, in increasing order of precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	v := config.Viper(path)
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Enabled = true
	}
	return cfg, nil
}

// runScene builds the demo tree and runs it until it finishes, fails, or is
// interrupted. An interrupt is not an error.
func runScene(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tree := krait.NewTree()
	tree.SetLogger(logger)
	tree.SetDebugMode(strings.EqualFold(cfg.Logging.Level, "debug"))
	addDemoScene(tree, stdout)

	if cfg.Input.Script != "" {
		data, err := os.ReadFile(cfg.Input.Script)
		if err != nil {
			return fmt.Errorf("read input script: %w", err)
		}
		in, err := krait.LoadInputScript(data)
		if err != nil {
			return err
		}
		tree.SetInput(in)
	}

	if cfg.Metrics.Enabled {
		_, shutdown, err := serveMetrics(tree, cfg.Metrics.Addr, logger)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	if cfg.Loop.Windowed {
		err = krait.RunWindowed(ctx, tree, krait.WindowConfig{
			Title:      cfg.Loop.Title,
			Width:      cfg.Loop.Width,
			Height:     cfg.Loop.Height,
			TargetRate: cfg.Loop.TargetRate,
			MaxFrames:  cfg.Loop.MaxFrames,
			ShowFPS:    true,
		})
	} else {
		err = tree.Run(ctx, krait.RunConfig{
			TargetRate: cfg.Loop.TargetRate,
			MaxFrames:  cfg.Loop.MaxFrames,
		})
	}
	if errors.Is(err, krait.ErrCancelled) {
		return nil
	}
	return err
}

// serveMetrics attaches a collector to tree and serves /metrics on addr. It
// returns the bound address and a function that stops the server.
func serveMetrics(tree *krait.Tree, addr string, logger *slog.Logger) (string, func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tree.AddObserver(metrics.New(reg))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	bound := ln.Addr().String()
	logger.Info("serving metrics", "addr", bound)

	return bound, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
