package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/promptforge/internal/api"
	"github.com/dgallion1/promptforge/internal/catalog"
	"github.com/dgallion1/promptforge/internal/config"
	"github.com/dgallion1/promptforge/internal/source"
	"github.com/dgallion1/promptforge/internal/stats"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.New(cfg.AnalysisCacheSize, log)
	if err != nil {
		log.Error("catalog init failed", "error", err)
		os.Exit(1)
	}

	// A missing templates dir is not fatal; templates can still be uploaded.
	opts := source.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}
	if _, err := cat.LoadDir(ctx, cfg.TemplatesDir, cfg.LoadConcurrency, opts); err != nil {
		log.Warn("templates not loaded", "dir", cfg.TemplatesDir, "error", err)
	}

	srv := api.NewServer(cat, stats.NewCompliance(cfg.StatsWindow), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}()

	log.Info("starting promptforge", "port", cfg.Port, "templates", cat.Count())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
