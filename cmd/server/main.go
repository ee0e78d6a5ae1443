package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/crmrelay/internal/api"
	"github.com/gyaneshwarpardhi/crmrelay/internal/config"
	"github.com/gyaneshwarpardhi/crmrelay/internal/slack"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPath := flag.String("config", "configs/relay.yaml", "Path to relay YAML config (empty = built-in routes)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	var (
		cfg    *config.RelayConfig
		loader *config.Loader
	)
	if *cfgPath == "" {
		cfg = config.Default()
	} else {
		var err error
		loader, err = config.NewLoader(*cfgPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loader.Config()
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	// ── Relay handler ─────────────────────────────────────────────────────────
	// Per-request delivery limits come from config; the client itself has no timeout.
	client := slack.NewClient(0)
	opts := []api.Option{api.WithLogger(logger)}
	if loader != nil {
		opts = append(opts, api.WithLoader(loader))
	}
	handler, err := api.New(cfg, client, opts...)
	if err != nil {
		slog.Error("failed to build handler", "err", err)
		os.Exit(1)
	}
	slog.Info("relay routes loaded", "routes", len(cfg.Routes))

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	if loader != nil {
		loader.OnError(func(err error) {
			slog.Warn("config reload failed", "err", err)
		})
		stopWatch, err := loader.Watch()
		if err != nil {
			slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
		} else {
			defer stopWatch()
		}
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutMs) * time.Millisecond,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	slog.Info("goodbye")
}
