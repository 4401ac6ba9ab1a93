// Command agent runs the BLE discovery agent: periodic and on-demand scans,
// sighting history, and an HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/bleradar/pkg/agent"
	"github.com/carverauto/bleradar/pkg/api"
	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/config"
	"github.com/carverauto/bleradar/pkg/lifecycle"
	"github.com/carverauto/bleradar/pkg/metrics"
	"github.com/carverauto/bleradar/pkg/sightings"
)

func main() {
	log.Printf("Starting bleradar agent...")

	configPath := flag.String("config", "/etc/bleradar/agent.yaml", "Path to agent config file")
	flag.Parse()

	var cfg config.AgentConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := run(context.Background(), &cfg); err != nil {
		log.Fatalf("Agent stopped: %v", err)
	}

	log.Printf("Shutdown complete")
}

func run(ctx context.Context, cfg *config.AgentConfig) error {
	engine, err := agent.NewEngine(cfg.Engine, cfg.SimulationFile)
	if err != nil {
		return err
	}

	store, err := newStore(cfg.DBPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	discoverer := ble.NewDiscoverer(engine, ble.WithMetrics(metrics.NewDiscovery(reg)))
	svc := agent.NewDiscoveryService(cfg, discoverer, store)

	server := api.NewServer(svc,
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		api.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
	)

	return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ListenAddr:      cfg.ListenAddr,
		GRPCAddr:        cfg.GRPCAddr,
		ServiceName:     cfg.ServiceName,
		Service:         svc,
		Handler:         server,
		ShutdownTimeout: time.Duration(cfg.ShutdownWait),
	})
}

func newStore(dbPath string) (sightings.Store, error) {
	if dbPath == "" {
		log.Printf("No db_path configured, keeping sightings in memory")

		return sightings.NewInMemoryStore(), nil
	}

	return sightings.NewSQLiteStore(dbPath)
}
