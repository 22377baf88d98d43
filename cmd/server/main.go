package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gasnet/internal/broker"
	"gasnet/internal/config"
	"gasnet/internal/handler"
	"gasnet/internal/hub"
	"gasnet/internal/loader"
	"gasnet/internal/repository/sqlite"
	"gasnet/internal/service"
	"gasnet/internal/solver"
	"gasnet/internal/watcher"
)

func main() {
	// Command line flags override the config file
	configPath := flag.String("config", "", "Config file path (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting gasnet server...")

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if *configPath != "" {
		cfg, path, err = config.LoadFromPath(*configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if path != "" {
		log.Printf("Config loaded: %s", path)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	log.Printf("Config:\n%s", cfg.Summary())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize SQLite repository
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// Initialize event bus and SSE hub
	eventBus := service.NewEventBus()
	sseHub := hub.New()
	go sseHub.Run(ctx)
	sseHub.Attach(ctx, eventBus)

	// Optional NATS publication
	if cfg.NATSEnabled() {
		pub, err := broker.Connect(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			log.Printf("NATS unavailable, events stay local: %v", err)
		} else {
			defer pub.Close()
			pub.Attach(ctx, eventBus)
			log.Printf("Publishing events to %s.*", cfg.Events.SubjectPrefix)
		}
	}

	// Initialize solver client and services
	solverClient := solver.New(solver.Options{
		URL:           cfg.Solver.URL,
		Timeout:       cfg.Solver.Timeout.Duration(),
		RatePerSecond: cfg.Solver.RatePerSecond,
		Burst:         cfg.Solver.Burst,
		Breaker: solver.BreakerOpts{
			FailThreshold: cfg.Solver.FailThreshold,
			Timeout:       cfg.Solver.OpenTimeout.Duration(),
		},
	})
	networkSvc := service.NewNetworkService(repo, eventBus)
	simulationSvc := service.NewSimulationService(solverClient, networkSvc, eventBus, cfg.Solver.DefaultFluid)

	// Seed networks from files
	if cfg.SeedEnabled() {
		seeder := loader.NewSeeder(networkSvc)
		n, err := seeder.SeedDir(ctx, cfg.Seed.Dir)
		if err != nil {
			log.Printf("Seeding from %s failed: %v", cfg.Seed.Dir, err)
		} else {
			log.Printf("Seeded %d networks from %s", n, cfg.Seed.Dir)
		}

		if cfg.Seed.Watch {
			w := watcher.New(cfg.Seed.Dir, func(path string) {
				if _, err := seeder.Reload(ctx, path); err != nil {
					log.Printf("Reloading %s failed: %v", path, err)
				}
			}).WithFilter(loader.IsNetworkFile)
			go func() {
				if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
					log.Printf("Seed watcher stopped: %v", err)
				}
			}()
		}
	}

	router := handler.NewRouter(handler.Deps{
		Networks:   networkSvc,
		Simulation: simulationSvc,
		Solver:     solverClient,
		Hub:        sseHub,
		CORSOrigin: cfg.Server.CORSOrigin,
	})

	// WriteTimeout stays 0 so SSE streams are not cut; solver calls are
	// bounded by the solver timeout
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the hub first so open event streams return
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
