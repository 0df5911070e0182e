package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stacksfolio/yield-radar/internal/aggregate"
	"github.com/stacksfolio/yield-radar/internal/cache"
	"github.com/stacksfolio/yield-radar/internal/config"
	"github.com/stacksfolio/yield-radar/internal/handler"
	"github.com/stacksfolio/yield-radar/internal/llm"
	"github.com/stacksfolio/yield-radar/internal/middleware"
	"github.com/stacksfolio/yield-radar/internal/price"
	"github.com/stacksfolio/yield-radar/internal/provider"
	"github.com/stacksfolio/yield-radar/internal/store"
	"github.com/stacksfolio/yield-radar/internal/wallet"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database is optional: recommendations work without it, only the
	// intent endpoints need it.
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("database connected and migrated")
	} else {
		logger.Warn("DATABASE_URL not set, intent endpoints disabled")
	}

	// Redis keeps each provider's last good pool list for fallback. Also
	// optional: without it a failed provider just drops out of the merge.
	var providerCache *cache.ProviderCache
	if cfg.RedisURL != "" {
		var err error
		for i := 0; i < 6; i++ {
			providerCache, err = cache.New(cfg.RedisURL, cfg.RedisPassword, time.Hour)
			if err == nil {
				break
			}
			logger.Warn("redis not ready, retrying...", "attempt", i+1, "error", err)
			time.Sleep(5 * time.Second)
		}
		if err != nil {
			logger.Warn("redis unavailable, running without last-good cache", "error", err)
			providerCache = nil
		} else {
			defer providerCache.Close()
			logger.Info("redis connected for provider fallback cache")
		}
	}

	// Pool aggregation
	agg := aggregate.New(logger, providerCache)
	agg.Register(provider.NewAlex())
	agg.Register(provider.NewArkadiko())
	agg.Register(provider.NewVelar(logger))
	agg.Register(provider.NewBitflow(logger))
	agg.Register(provider.NewZest())
	agg.Register(provider.NewStackingDAO())
	agg.Register(provider.NewStackSwap(logger, cfg.StackSwapScrape))
	logger.Info("providers registered", "providers", agg.ProviderNames())

	// STX price resolver
	resolver := price.New(price.Config{
		OverrideUSD:    cfg.PriceOverrideUSD,
		PinnedProvider: cfg.PriceProvider,
		APIKey:         cfg.PriceAPIKey,
		CustomURL:      cfg.PriceCustomURL,
	}, logger)

	// LLM commentary and wallet lookups
	groq := llm.NewClient(cfg.GroqAPIKey)
	if !groq.Configured() {
		logger.Warn("GROQ_API_KEY not set, AI endpoints disabled")
	}
	hiro := wallet.NewClient(cfg.HiroAPIBase)

	// HTTP routes
	r := chi.NewRouter()
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.FrontendOrigin))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handler.Health())
	r.Get("/readyz", handler.Ready(db))

	r.Route("/api", func(r chi.Router) {
		r.Post("/recommendations", handler.Recommendations(logger, agg, groq))
		r.Get("/price/stx", handler.STXPrice(resolver))
		r.Post("/analyze", handler.Analyze(agg, groq))
		r.Post("/llm/recommend", handler.LLMRecommend(hiro, agg, groq))
		r.Get("/llm/models", handler.LLMModels(groq))
		r.Get("/wallet/{address}/balances", handler.WalletBalances(hiro))
		r.Post("/intents", handler.CreateIntent(db))
		r.Get("/intents", handler.ListIntents(db))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
