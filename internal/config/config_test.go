package config

import (
	"os"
	"testing"
)

func TestEnvOr(t *testing.T) {
	// Unset key returns fallback
	os.Unsetenv("TEST_ENVOR_KEY")
	if got := envOr("TEST_ENVOR_KEY", "default"); got != "default" {
		t.Errorf("envOr unset key = %q, want %q", got, "default")
	}

	// Set key returns value
	os.Setenv("TEST_ENVOR_KEY", "custom")
	defer os.Unsetenv("TEST_ENVOR_KEY")
	if got := envOr("TEST_ENVOR_KEY", "default"); got != "custom" {
		t.Errorf("envOr set key = %q, want %q", got, "custom")
	}

	// Empty string returns fallback
	os.Setenv("TEST_ENVOR_KEY", "")
	if got := envOr("TEST_ENVOR_KEY", "fallback"); got != "fallback" {
		t.Errorf("envOr empty key = %q, want %q", got, "fallback")
	}
}

func TestEnvFloat(t *testing.T) {
	os.Setenv("TEST_ENVFLOAT_KEY", "0.85")
	defer os.Unsetenv("TEST_ENVFLOAT_KEY")
	if got := envFloat("TEST_ENVFLOAT_KEY", 0); got != 0.85 {
		t.Errorf("envFloat = %v, want 0.85", got)
	}

	os.Setenv("TEST_ENVFLOAT_KEY", "not-a-number")
	if got := envFloat("TEST_ENVFLOAT_KEY", 1.5); got != 1.5 {
		t.Errorf("envFloat invalid = %v, want fallback 1.5", got)
	}

	os.Unsetenv("TEST_ENVFLOAT_KEY")
	if got := envFloat("TEST_ENVFLOAT_KEY", 2); got != 2 {
		t.Errorf("envFloat unset = %v, want fallback 2", got)
	}
}

func TestEnvBool(t *testing.T) {
	os.Setenv("TEST_ENVBOOL_KEY", "true")
	defer os.Unsetenv("TEST_ENVBOOL_KEY")
	if !envBool("TEST_ENVBOOL_KEY", false) {
		t.Error("envBool true = false")
	}

	os.Setenv("TEST_ENVBOOL_KEY", "maybe")
	if envBool("TEST_ENVBOOL_KEY", false) {
		t.Error("envBool invalid should fall back to false")
	}
}

func TestLoadDefaults(t *testing.T) {
	// Clear all relevant env vars
	for _, k := range []string{
		"PORT", "DATABASE_URL", "FRONTEND_ORIGIN", "REDIS_URL", "REDIS_PASSWORD",
		"GROQ_API_KEY", "HIRO_API_BASE",
		"STX_PRICE_OVERRIDE_USD", "STX_PRICE_PROVIDER", "STX_PRICE_API_KEY", "STX_PRICE_URL",
		"STACKSWAP_SCRAPE", "INFISICAL_CLIENT_ID", "INFISICAL_CLIENT_SECRET",
	} {
		os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.FrontendOrigin != "*" {
		t.Errorf("FrontendOrigin = %q, want %q", cfg.FrontendOrigin, "*")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.HiroAPIBase != "https://api.hiro.so" {
		t.Errorf("HiroAPIBase = %q", cfg.HiroAPIBase)
	}
	if cfg.PriceOverrideUSD != 0 {
		t.Errorf("PriceOverrideUSD = %v, want 0", cfg.PriceOverrideUSD)
	}
	if cfg.StackSwapScrape {
		t.Error("StackSwapScrape should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("GROQ_API_KEY", "gsk-test")
	os.Setenv("STX_PRICE_OVERRIDE_USD", "0.85")
	os.Setenv("STX_PRICE_PROVIDER", "coingecko-pro")
	os.Setenv("STACKSWAP_SCRAPE", "true")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("GROQ_API_KEY")
		os.Unsetenv("STX_PRICE_OVERRIDE_USD")
		os.Unsetenv("STX_PRICE_PROVIDER")
		os.Unsetenv("STACKSWAP_SCRAPE")
	}()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "postgres://test")
	}
	if cfg.GroqAPIKey != "gsk-test" {
		t.Errorf("GroqAPIKey = %q", cfg.GroqAPIKey)
	}
	if cfg.PriceOverrideUSD != 0.85 {
		t.Errorf("PriceOverrideUSD = %v, want 0.85", cfg.PriceOverrideUSD)
	}
	if cfg.PriceProvider != "coingecko-pro" {
		t.Errorf("PriceProvider = %q", cfg.PriceProvider)
	}
	if !cfg.StackSwapScrape {
		t.Error("StackSwapScrape = false, want true")
	}
}
