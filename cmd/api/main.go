// Package main implements the CardForge API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sporez/cardforge/engine/extract"
	"github.com/sporez/cardforge/engine/ingest"
	"github.com/sporez/cardforge/engine/publish"
	"github.com/sporez/cardforge/pkg/mid"
)

// Config holds all environment-based configuration.
type Config struct {
	Port         string
	NATSURL      string
	FetchWorkers int
	FetchTimeout time.Duration
	RateLimitRPS float64
	CORSOrigin   string
}

func loadConfig() Config {
	return Config{
		Port:         envOr("PORT", "8080"),
		NATSURL:      envOr("NATS_URL", nats.DefaultURL),
		FetchWorkers: envIntOr("FETCH_WORKERS", 4),
		FetchTimeout: time.Duration(envIntOr("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		RateLimitRPS: envFloatOr("RATE_LIMIT_RPS", 5),
		CORSOrigin:   envOr("CORS_ORIGIN", "*"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Drain()

	extractor := extract.New(extract.Options{
		Timeout: cfg.FetchTimeout,
		Workers: cfg.FetchWorkers,
		RPS:     cfg.RateLimitRPS,
	})
	svc := ingest.New(extractor, logger)
	pub := publish.New(nc, logger)

	handler := mid.Chain(buildMux(svc, pub, logger),
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.Metrics(),
		mid.OTel("cardforge-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

func buildMux(svc *ingest.Service, pub *publish.Publisher, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("POST /api/crawl", handleCrawl(svc, logger))
	mux.HandleFunc("POST /api/enrich", handleEnrich(svc, logger))
	mux.HandleFunc("POST /api/fuse", handleFuse(svc, logger))
	mux.HandleFunc("POST /api/publish", handlePublish(pub, logger))
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}
