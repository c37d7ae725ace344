// Package main is the entrypoint for the FixIt API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/fixit/internal/api"
	"github.com/kiranshivaraju/fixit/internal/api/handler"
	mw "github.com/kiranshivaraju/fixit/internal/api/middleware"
	"github.com/kiranshivaraju/fixit/internal/api/response"
	"github.com/kiranshivaraju/fixit/internal/cache"
	"github.com/kiranshivaraju/fixit/internal/config"
	"github.com/kiranshivaraju/fixit/internal/diagnosis"
	"github.com/kiranshivaraju/fixit/internal/knowledge"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName    = "FixIt"
	serviceVersion = "1.0.0"
)

// logLevel is raised or lowered once config is loaded.
var logLevel = new(slog.LevelVar)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	started := time.Now()

	// 1. Load config; an invalid config aborts startup
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logLevel.Set(cfg.Server.LogLevel)
	slog.Info("config loaded",
		"env", cfg.Server.Env,
		"strategy", cfg.Diagnosis.Strategy,
		"rate_limit", cfg.RateLimitEnabled(),
		"auth", cfg.AuthEnabled(),
	)

	// 2. Load the rule table
	idx, err := loadRules(cfg.Knowledge.RulesPath)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	slog.Info("rules loaded", "devices", idx.Devices(), "rules", idx.RuleCount())

	// 3. Load the issue catalog, falling back to the built-in entries
	catalog, err := knowledge.LoadCatalog(cfg.Knowledge.IssuesPath)
	if err != nil {
		slog.Warn("issue catalog unavailable, using built-in entries",
			"path", cfg.Knowledge.IssuesPath, "error", err)
		catalog = knowledge.BuiltinCatalog()
	}
	slog.Info("issue catalog loaded", "issues", catalog.Len(), "devices", catalog.Devices())

	// 4. Build the diagnosis service
	strategy, err := diagnosis.NewStrategy(cfg.Diagnosis.Strategy, idx)
	if err != nil {
		return fmt.Errorf("create strategy: %w", err)
	}
	svc := diagnosis.NewService(strategy, diagnosis.NewResponder())

	// 5. Optional Redis cache for rate limiting
	var (
		counters  cache.Cache
		rateLimit *mw.RateLimit
	)
	if cfg.RateLimitEnabled() {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		counters = redisCache
		rateLimit = mw.NewRateLimit(redisCache, cfg.RateLimit.RequestsPerMin)
	}

	var auth *mw.Auth
	if cfg.AuthEnabled() {
		auth = mw.NewAuth(cfg.Auth.Keys)
	}

	// 6. Build router with dependencies
	info := handler.ServiceInfo{
		Name:     serviceName,
		Version:  serviceVersion,
		Strategy: svc.Strategy(),
		Started:  started,
	}

	router := api.NewRouter(api.Dependencies{
		Auth:           auth,
		RateLimit:      rateLimit,
		AllowedOrigins: cfg.Server.AllowedOrigins,

		IndexHandler:          handler.NewIndexHandler(info, idx, catalog),
		HealthHandler:         healthHandler(counters),
		ConnectionTestHandler: handler.NewConnectionTestHandler(info),
		SampleSymptomsHandler: handler.NewSampleSymptomsHandler(idx),
		TestDiagnoseHandler:   handler.NewTestDiagnoseHandler(info),
		DiagnoseHandler:       handler.NewDiagnoseHandler(svc, cfg.Diagnosis.DefaultDevice),
		IssuesHandler:         handler.NewIssuesHandler(catalog),
	})

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received, draining connections...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

// loadRules returns the embedded rule table unless path overrides it.
func loadRules(path string) (*knowledge.Index, error) {
	if path == "" {
		return knowledge.Default()
	}
	return knowledge.LoadFile(path)
}

// healthHandler checks cache connectivity. A nil cache means rate limiting
// is disabled and is reported as such.
func healthHandler(c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"knowledge": "ok",
			"cache":     "disabled",
		}

		if c != nil {
			checks["cache"] = "ok"
			if err := c.Ping(r.Context()); err != nil {
				checks["cache"] = "degraded"
			}
		}

		if checks["cache"] == "degraded" {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
