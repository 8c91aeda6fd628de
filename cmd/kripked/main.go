// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command kripked starts the Kripke workbench API server.
//
// The server holds named Kripke models and exposes operations for
// editing frames and valuations, applying closures, checking bounded
// reachability, and evaluating modal formulas.
//
// Usage:
//
//	go run ./cmd/kripked
//	go run ./cmd/kripked -port 9090
//	go run ./cmd/kripked -store-dir ~/.kripke/models
//	go run ./cmd/kripked -model demo.json -watch
//
// Example requests:
//
//	# Health check
//	curl http://localhost:8080/v1/kripke/health
//
//	# Create a model and add a world
//	curl -X POST http://localhost:8080/v1/kripke/models \
//	  -H "Content-Type: application/json" -d '{"name": "demo"}'
//	curl -X POST http://localhost:8080/v1/kripke/models/demo/worlds \
//	  -H "Content-Type: application/json" -d '{"id": "w1"}'
//
//	# Evaluate a formula
//	curl -X POST http://localhost:8080/v1/kripke/models/demo/eval \
//	  -H "Content-Type: application/json" \
//	  -d '{"formula": "[](rain -> wet)", "world": "w1"}'
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AleutianAI/kripke/pkg/logging"
	"github.com/AleutianAI/kripke/services/kripke"
	"github.com/AleutianAI/kripke/services/kripke/model"
	"github.com/AleutianAI/kripke/services/kripke/storage"
	"github.com/AleutianAI/kripke/services/kripke/telemetry"
)

// watchedModelName is the model name a watched file is served under.
const watchedModelName = "default"

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	debug := flag.Bool("debug", false, "Enable debug mode")
	storeDir := flag.String("store-dir", "", "Directory for persistent model storage (empty = in-memory only)")
	modelFile := flag.String("model", "", "Model file to serve as 'default'")
	watch := flag.Bool("watch", false, "Reload -model when the file changes")
	logDir := flag.String("log-dir", "", "Directory for JSON log files")
	flag.Parse()

	logger := logging.New(logging.Config{
		Level:   logging.LevelInfo,
		LogDir:  *logDir,
		Service: "kripked",
		JSON:    true,
	})
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Telemetry: Prometheus metrics by default, OTLP traces via OTEL_* env.
	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.DefaultConfig())
	if err != nil {
		slog.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := kripke.NewService(logger.Slog())

	var store *storage.Store
	if *storeDir != "" {
		store, err = storage.Open(storage.DefaultConfig(*storeDir))
		if err != nil {
			slog.Error("Failed to open model store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
		if err := svc.WithStore(ctx, store); err != nil {
			slog.Error("Failed to load persisted models", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var watcher *storage.Watcher
	if *modelFile != "" {
		if err := serveModelFile(ctx, svc, *modelFile); err != nil {
			slog.Error("Failed to load model file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if *watch {
			watcher, err = watchModelFile(ctx, svc, *modelFile)
			if err != nil {
				slog.Error("Failed to watch model file", slog.String("error", err.Error()))
				os.Exit(1)
			}
			defer watcher.Stop()
		}
	}

	handlers := kripke.NewHandlers(svc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("kripked"))
	if *debug {
		router.Use(gin.Logger())
	}

	v1 := router.Group("/v1")
	kripke.RegisterRoutes(v1, handlers)

	if metricsHandler := telemetry.MetricsHandler(); metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	printBanner(*port, *storeDir != "")

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("Shutting down Kripke workbench server")
		if watcher != nil {
			watcher.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Warn("Store close failed", slog.String("error", err.Error()))
			}
		}
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%d", *port)
	slog.Info("Starting Kripke workbench server", slog.String("address", addr))
	if err := router.Run(addr); err != nil {
		slog.Error("Failed to start server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// serveModelFile loads path into the service under the default name,
// replacing any previous content.
func serveModelFile(ctx context.Context, svc *kripke.Service, path string) error {
	m, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	return installModel(ctx, svc, m)
}

// watchModelFile reloads the served model whenever the file changes.
func watchModelFile(ctx context.Context, svc *kripke.Service, path string) (*storage.Watcher, error) {
	watcher, err := storage.NewWatcher(path, func(m *model.Model) {
		if err := installModel(ctx, svc, m); err != nil {
			slog.Warn("Model reload failed", slog.String("error", err.Error()))
			return
		}
		slog.Info("Reloaded model file",
			slog.String("path", path),
			slog.Int("worlds", m.WorldCount()),
			slog.Int("relations", m.RelationCount()))
	}, slog.Default())
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}
	return watcher, nil
}

func installModel(ctx context.Context, svc *kripke.Service, m *model.Model) error {
	return svc.ImportModel(ctx, watchedModelName, m.Snapshot(), true)
}

func printBanner(port int, persistent bool) {
	storageMode := "in-memory (models are lost on restart)"
	if persistent {
		storageMode = "persistent (badger)"
	}

	banner := `
╔═══════════════════════════════════════════════════════════════════╗
║                     KRIPKE WORKBENCH SERVER                       ║
╠═══════════════════════════════════════════════════════════════════╣
║                                                                   ║
║  Possible-worlds models with modal formula evaluation.            ║
║  Storage: %-55s ║
║                                                                   ║
║  Quick Start:                                                     ║
║  ┌─────────────────────────────────────────────────────────────┐  ║
║  │ # Health check                                              │  ║
║  │ curl http://localhost:%d/v1/kripke/health                 │  ║
║  │                                                             │  ║
║  │ # Create a model                                            │  ║
║  │ curl -X POST http://localhost:%d/v1/kripke/models \       │  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"name": "demo"}'                                     │  ║
║  │                                                             │  ║
║  │ # Evaluate a formula                                        │  ║
║  │ curl -X POST \                                              │  ║
║  │   http://localhost:%d/v1/kripke/models/demo/eval \        │  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"formula": "[](rain -> wet)", "world": "w1"}'        │  ║
║  └─────────────────────────────────────────────────────────────┘  ║
║                                                                   ║
║  Endpoints:                                                       ║
║  ├── Models: create, list, export, import, delete                 ║
║  ├── Editing: worlds, relations, valuations, closure              ║
║  ├── Queries: validate, reachable, eval, eval-all, render         ║
║  └── Ops: /v1/kripke/health, /v1/kripke/ready, /metrics           ║
║                                                                   ║
║  Press Ctrl+C to stop                                             ║
╚═══════════════════════════════════════════════════════════════════╝
`
	fmt.Printf(banner, storageMode, port, port, port)
}
