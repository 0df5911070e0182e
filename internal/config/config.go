package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	infisical "github.com/infisical/go-sdk"
)

type Config struct {
	Port           string
	DatabaseURL    string
	FrontendOrigin string
	RedisURL       string
	RedisPassword  string

	GroqAPIKey  string
	HiroAPIBase string

	// STX price resolution knobs. OverrideUSD short-circuits the whole
	// resolver cascade; a pinned provider plus key selects a paid source.
	PriceOverrideUSD  float64
	PriceProvider     string
	PriceAPIKey       string
	PriceCustomURL    string

	// StackSwap has no public API, so its pools come from a headless
	// browser scrape. Off by default since it needs a Chrome binary.
	StackSwapScrape bool
}

func Load() Config {
	cfg := Config{
		Port:             envOr("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		FrontendOrigin:   envOr("FRONTEND_ORIGIN", "*"),
		RedisURL:         envOr("REDIS_URL", "redis://redis-master.redis.svc.cluster.local:6379/0"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		HiroAPIBase:      envOr("HIRO_API_BASE", "https://api.hiro.so"),
		PriceOverrideUSD: envFloat("STX_PRICE_OVERRIDE_USD", 0),
		PriceProvider:    os.Getenv("STX_PRICE_PROVIDER"),
		PriceAPIKey:      os.Getenv("STX_PRICE_API_KEY"),
		PriceCustomURL:   os.Getenv("STX_PRICE_URL"),
		StackSwapScrape:  envBool("STACKSWAP_SCRAPE", false),
	}

	// If Infisical credentials are available, fetch secrets from Infisical
	clientID := os.Getenv("INFISICAL_CLIENT_ID")
	clientSecret := os.Getenv("INFISICAL_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		loadFromInfisical(&cfg, clientID, clientSecret)
	}

	return cfg
}

func loadFromInfisical(cfg *Config, clientID, clientSecret string) {
	siteURL := envOr("INFISICAL_SITE_URL",
		"http://infisical-infisical-standalone-infisical.infisical.svc.cluster.local:8080")
	projectID := os.Getenv("INFISICAL_PROJECT_ID")
	envSlug := envOr("INFISICAL_ENV", "prod")

	if projectID == "" {
		slog.Warn("INFISICAL_PROJECT_ID not set, skipping Infisical")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := infisical.NewInfisicalClient(ctx, infisical.Config{
		SiteUrl:          siteURL,
		AutoTokenRefresh: false,
	})

	_, err := client.Auth().UniversalAuthLogin(clientID, clientSecret)
	if err != nil {
		slog.Error("infisical auth failed", "error", err)
		return
	}

	secrets := map[string]*string{
		"GROQ_API_KEY":      &cfg.GroqAPIKey,
		"STX_PRICE_API_KEY": &cfg.PriceAPIKey,
		"REDIS_PASSWORD":    &cfg.RedisPassword,
	}

	for key, target := range secrets {
		if *target != "" {
			continue // env var already set, skip
		}
		secret, err := client.Secrets().Retrieve(infisical.RetrieveSecretOptions{
			SecretKey:   key,
			Environment: envSlug,
			ProjectID:   projectID,
			SecretPath:  "/",
		})
		if err != nil {
			slog.Warn("failed to retrieve secret from infisical", "key", key, "error", err)
			continue
		}
		*target = secret.SecretValue
		slog.Info("loaded secret from infisical", "key", key)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid float env var, using fallback", "key", key, "value", v)
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using fallback", "key", key, "value", v)
		return fallback
	}
	return b
}
