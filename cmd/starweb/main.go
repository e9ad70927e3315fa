package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohitmenonhart-xhunter/starweb-p1/analyzer"
	"github.com/rohitmenonhart-xhunter/starweb-p1/api"
	"github.com/rohitmenonhart-xhunter/starweb-p1/audit"
	"github.com/rohitmenonhart-xhunter/starweb-p1/cache"
	"github.com/rohitmenonhart-xhunter/starweb-p1/capture"
	"github.com/rohitmenonhart-xhunter/starweb-p1/config"
	"github.com/rohitmenonhart-xhunter/starweb-p1/extract"
	"github.com/rohitmenonhart-xhunter/starweb-p1/llm"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("starweb starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"maxPages", cfg.Browser.MaxPages,
	)

	// ── 3. Initialise capturer (launches browser) ───────────────────
	capturer, err := capture.NewCapturer(cfg.Browser, cfg.Capture)
	if err != nil {
		slog.Error("failed to initialise capturer", "error", err)
		os.Exit(1)
	}
	defer capturer.Close()

	// ── 4. Initialise analysis: AI orchestrator or heuristic-only ───
	var orchestrator *analyzer.Orchestrator
	var solverClient analyzer.ChatClient
	if cfg.AI.APIKey != "" {
		client := llm.NewClient(cfg.AI, nil)
		orchestrator = analyzer.NewOrchestrator(client, cfg.AI.Timeout)
		solverClient = client
		slog.Info("AI analysis enabled", "model", cfg.AI.Model)
	} else {
		slog.Info("no AI credential configured, running heuristic analysis only")
	}
	solver := analyzer.NewSolver(solverClient, cfg.AI.Timeout)

	// ── 5. Assemble pipeline + cache ────────────────────────────────
	service := audit.NewService(capturer, extract.New(), orchestrator)
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	// ── 6. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(service, solver, capturer, cfg, cc, startTime)

	// ── 7. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server stopped cleanly")
	}
}

// initLogger configures the process-wide slog default.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
