// Package price resolves a USD spot price for STX through an ordered
// cascade of sources: an operator override, an optional pinned provider,
// a fixed list of public keyless APIs, a short-lived cache, and a final
// hard-coded constant so the dashboard never renders without a figure.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/stacksfolio/yield-radar/internal/metrics"
)

// Sanity heuristics for STX specifically. Kept as named variables on the
// resolver so they can be recalibrated for a different asset.
const (
	DefaultMinSaneUSD  = 0.01
	DefaultMaxSaneUSD  = 10
	DefaultFallbackUSD = 0.60
	DefaultCacheTTL    = 30 * time.Minute

	requestTimeout = 10 * time.Second
)

// Config carries the operator knobs for the resolver.
type Config struct {
	// OverrideUSD short-circuits the whole cascade when positive; exists
	// for demo/test determinism.
	OverrideUSD float64

	// PinnedProvider restricts live resolution to a single keyed provider:
	// "coingecko-pro", "cryptocompare" or "custom". Empty means the public
	// keyless cascade.
	PinnedProvider string
	APIKey         string
	CustomURL      string
}

// Result is the resolver output. USD is nil only in the total-failure case
// with the constant fallback disabled.
type Result struct {
	USD    *float64 `json:"usd"`
	Source string   `json:"source"`
}

// source is one step of the keyless cascade.
type source struct {
	name  string
	url   string
	parse func(body []byte) (float64, error)
}

// Resolver walks the cascade. The cache is plain in-memory state guarded
// by a mutex; the clock is injected so TTL behavior is testable.
type Resolver struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
	now    func() time.Time

	sources []source

	MinSaneUSD  float64
	MaxSaneUSD  float64
	FallbackUSD float64
	CacheTTL    time.Duration

	mu       sync.Mutex
	cachedAt time.Time
	cached   float64
	hasCache bool
}

// New builds a resolver with the default STX source cascade.
func New(cfg Config, logger *slog.Logger) *Resolver {
	return &Resolver{
		cfg:         cfg,
		client:      &http.Client{Timeout: requestTimeout},
		logger:      logger,
		now:         time.Now,
		sources:     defaultSources(),
		MinSaneUSD:  DefaultMinSaneUSD,
		MaxSaneUSD:  DefaultMaxSaneUSD,
		FallbackUSD: DefaultFallbackUSD,
		CacheTTL:    DefaultCacheTTL,
	}
}

func defaultSources() []source {
	return []source{
		{"coingecko", "https://api.coingecko.com/api/v3/simple/price?ids=stacks&vs_currencies=usd", parseCoinGecko("stacks")},
		{"coingecko_blockstack", "https://api.coingecko.com/api/v3/simple/price?ids=blockstack&vs_currencies=usd", parseCoinGecko("blockstack")},
		{"binance", "https://api.binance.com/api/v3/ticker/price?symbol=STXUSDT", parseBinance},
		{"coincap", "https://api.coincap.io/v2/assets/stacks", parseCoinCap},
		{"cryptocompare_public", "https://min-api.cryptocompare.com/data/price?fsym=STX&tsyms=USD", parseCryptoCompare},
	}
}

// Resolve never returns an error: every failure path degrades to the next
// step of the cascade and the final constant.
func (r *Resolver) Resolve(ctx context.Context) Result {
	// 0) Operator override wins outright.
	if r.cfg.OverrideUSD > 0 {
		r.remember(r.cfg.OverrideUSD)
		metrics.PriceResolveTotal.WithLabelValues("override").Inc()
		return result(r.cfg.OverrideUSD, "override")
	}

	// 1) Pinned provider: queried alone, no cross-provider retry. On
	// failure we fall through to the public cascade.
	if name, usd, ok := r.resolvePinned(ctx); ok {
		r.remember(usd)
		metrics.PriceResolveTotal.WithLabelValues(name).Inc()
		return result(usd, name)
	}

	// 2) Public keyless cascade, first plausible value wins.
	for _, src := range r.sources {
		usd, err := r.fetchSource(ctx, src)
		if err != nil {
			r.logger.Warn("price source failed", "source", src.name, "error", err)
			metrics.PriceSourceErrors.WithLabelValues(src.name).Inc()
			continue
		}
		if !r.plausible(usd) {
			r.logger.Warn("price source out of sanity band", "source", src.name, "usd", usd)
			metrics.PriceSourceErrors.WithLabelValues(src.name).Inc()
			continue
		}
		r.remember(usd)
		metrics.PriceResolveTotal.WithLabelValues(src.name).Inc()
		return result(usd, src.name)
	}

	// 3) Recent cache entry.
	if usd, ok := r.recall(); ok {
		metrics.PriceResolveTotal.WithLabelValues("cache").Inc()
		return result(usd, "cache")
	}

	// 4) Hard-coded constant; tagged so callers know it is not live.
	if r.FallbackUSD > 0 {
		metrics.PriceResolveTotal.WithLabelValues("fallback").Inc()
		return result(r.FallbackUSD, "fallback")
	}
	return Result{USD: nil, Source: "error"}
}

func (r *Resolver) resolvePinned(ctx context.Context) (string, float64, bool) {
	switch r.cfg.PinnedProvider {
	case "coingecko-pro":
		if r.cfg.APIKey == "" {
			return "", 0, false
		}
		usd, err := r.fetchWithHeaders(ctx,
			"https://pro-api.coingecko.com/api/v3/simple/price?ids=stacks&vs_currencies=usd",
			map[string]string{"x-cg-pro-api-key": r.cfg.APIKey},
			parseCoinGecko("stacks"))
		if err != nil {
			r.logger.Warn("pinned coingecko-pro failed", "error", err)
			return "", 0, false
		}
		return "coingecko-pro", usd, usd > 0
	case "cryptocompare":
		if r.cfg.APIKey == "" {
			return "", 0, false
		}
		usd, err := r.fetchWithHeaders(ctx,
			"https://min-api.cryptocompare.com/data/price?fsym=STX&tsyms=USD",
			map[string]string{"Authorization": "Apikey " + r.cfg.APIKey},
			parseCryptoCompare)
		if err != nil {
			r.logger.Warn("pinned cryptocompare failed", "error", err)
			return "", 0, false
		}
		return "cryptocompare", usd, usd > 0
	case "custom":
		if r.cfg.CustomURL == "" {
			return "", 0, false
		}
		usd, err := r.fetchWithHeaders(ctx, r.cfg.CustomURL, nil, parseCustom)
		if err != nil {
			r.logger.Warn("pinned custom url failed", "error", err)
			return "", 0, false
		}
		return "custom", usd, usd > 0
	}
	return "", 0, false
}

func (r *Resolver) fetchSource(ctx context.Context, src source) (float64, error) {
	return r.fetchWithHeaders(ctx, src.url, nil, src.parse)
}

func (r *Resolver) fetchWithHeaders(ctx context.Context, url string, headers map[string]string, parse func([]byte) (float64, error)) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("price fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price fetch status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return 0, fmt.Errorf("read price response: %w", err)
	}
	return parse(body)
}

func (r *Resolver) plausible(usd float64) bool {
	return usd >= r.MinSaneUSD && usd <= r.MaxSaneUSD
}

func (r *Resolver) remember(usd float64) {
	r.mu.Lock()
	r.cached = usd
	r.cachedAt = r.now()
	r.hasCache = true
	r.mu.Unlock()
}

func (r *Resolver) recall() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasCache || r.now().Sub(r.cachedAt) > r.CacheTTL {
		return 0, false
	}
	return r.cached, true
}

func result(usd float64, src string) Result {
	return Result{USD: &usd, Source: src}
}

// ── Per-source payload parsers ─────────────────────────────────────────

func parseCoinGecko(id string) func([]byte) (float64, error) {
	return func(body []byte) (float64, error) {
		var payload map[string]struct {
			USD float64 `json:"usd"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return 0, fmt.Errorf("decode coingecko: %w", err)
		}
		entry, ok := payload[id]
		if !ok || entry.USD == 0 {
			return 0, fmt.Errorf("coingecko: no price for %s", id)
		}
		return entry.USD, nil
	}
}

func parseBinance(body []byte) (float64, error) {
	var payload struct {
		Price string `json:"price"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("decode binance: %w", err)
	}
	usd, err := strconv.ParseFloat(payload.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse binance price: %w", err)
	}
	return usd, nil
}

func parseCoinCap(body []byte) (float64, error) {
	var payload struct {
		Data struct {
			PriceUSD string `json:"priceUsd"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("decode coincap: %w", err)
	}
	usd, err := strconv.ParseFloat(payload.Data.PriceUSD, 64)
	if err != nil {
		return 0, fmt.Errorf("parse coincap price: %w", err)
	}
	return usd, nil
}

func parseCryptoCompare(body []byte) (float64, error) {
	var payload struct {
		USD float64 `json:"USD"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("decode cryptocompare: %w", err)
	}
	if payload.USD == 0 {
		return 0, fmt.Errorf("cryptocompare: empty price")
	}
	return payload.USD, nil
}

func parseCustom(body []byte) (float64, error) {
	var payload struct {
		USD float64 `json:"usd"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("decode custom price: %w", err)
	}
	if payload.USD == 0 {
		return 0, fmt.Errorf("custom price endpoint: empty price")
	}
	return payload.USD, nil
}
