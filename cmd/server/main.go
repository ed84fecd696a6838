// Command server runs the gatherings MCP server on stdio. Structured
// logs go to stderr so the protocol stream on stdout stays clean; a
// Prometheus endpoint is served separately when a metrics address is
// configured.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/gatherings/internal/metrics"
	"github.com/mmynk/gatherings/internal/service"
	"github.com/mmynk/gatherings/internal/storage/sqlite"
	"github.com/mmynk/gatherings/internal/tools"
	"github.com/mmynk/gatherings/pkg/logging"
)

const serverVersion = "0.1.0"

// Config holds server configuration, from environment with flag
// overrides.
type Config struct {
	DBPath      string `env:"GATHERINGS_DB_PATH"      envDefault:"./data/gatherings.db"`
	NamePolicy  string `env:"GATHERINGS_NAME_POLICY"  envDefault:"unique"`
	MetricsAddr string `env:"GATHERINGS_METRICS_ADDR" envDefault:""`
}

func parseConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database file")
	fs.StringVar(&cfg.NamePolicy, "name-policy", cfg.NamePolicy, "participant name policy: unique or allow")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address for the Prometheus endpoint; empty disables it")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	svc := service.New(store, service.NamePolicy(cfg.NamePolicy))

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		var registry *prometheus.Registry
		m, registry = metrics.New()
		go serveMetrics(cfg.MetricsAddr, metrics.Handler(registry))
		slog.Info("Metrics endpoint enabled", "address", cfg.MetricsAddr)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gatherings",
		Version: serverVersion,
	}, nil)
	tools.Register(server, svc, m)

	slog.Info("MCP server starting", "transport", "stdio", "name_policy", cfg.NamePolicy)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func serveMetrics(addr string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", "error", err)
	}
}
