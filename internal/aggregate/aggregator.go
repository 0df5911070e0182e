// Package aggregate fans out to every registered provider concurrently and
// joins the partial results into one normalized pool list. Aggregation
// never fails: broken providers contribute nothing (or their last-good
// cached payload), and a total outage yields the static fallback dataset.
package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stacksfolio/yield-radar/internal/cache"
	"github.com/stacksfolio/yield-radar/internal/metrics"
	"github.com/stacksfolio/yield-radar/internal/pool"
	"github.com/stacksfolio/yield-radar/internal/provider"
)

// Aggregator runs the registered providers. The cache is optional (nil
// disables last-good smoothing).
type Aggregator struct {
	logger    *slog.Logger
	cache     *cache.ProviderCache
	providers []provider.Provider
	static    []pool.Pool
}

func New(logger *slog.Logger, c *cache.ProviderCache) *Aggregator {
	return &Aggregator{
		logger: logger,
		cache:  c,
		static: pool.StaticPools,
	}
}

// Register adds a provider to the fan-out set.
func (a *Aggregator) Register(p provider.Provider) {
	a.providers = append(a.providers, p)
	a.logger.Info("registered provider", "provider", p.Name())
}

// ProviderNames returns the slugs of all registered providers.
func (a *Aggregator) ProviderNames() []string {
	names := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		names = append(names, p.Name())
	}
	return names
}

// Aggregate fetches from every provider in parallel, waits for all of them
// to settle, and concatenates the successful results. No cross-provider
// ordering is guaranteed; the ranking stage establishes order later.
func (a *Aggregator) Aggregate(ctx context.Context) []pool.Pool {
	results := make([][]pool.Pool, len(a.providers))

	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			results[i] = a.fetchOne(ctx, p)
		}(i, p)
	}
	wg.Wait()

	var combined []pool.Pool
	for _, pools := range results {
		combined = append(combined, pools...)
	}

	combined = dropInvalid(combined)
	if len(combined) == 0 {
		a.logger.Warn("all providers failed or empty, serving static fallback")
		metrics.AggregationFallbackTotal.Inc()
		combined = append(combined, a.static...)
	}
	return combined
}

// fetchOne isolates a single provider: panics and errors both degrade to
// the cached last-good payload, or nothing.
func (a *Aggregator) fetchOne(ctx context.Context, p provider.Provider) (pools []pool.Pool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("provider panicked", "provider", p.Name(), "panic", r)
			metrics.ProviderFetchTotal.WithLabelValues(p.Name(), "panic").Inc()
			pools = a.lastGood(ctx, p.Name())
		}
	}()

	start := time.Now()
	fetched, err := p.Fetch(ctx)
	metrics.ProviderFetchDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		a.logger.Warn("provider fetch failed", "provider", p.Name(), "error", err)
		metrics.ProviderFetchTotal.WithLabelValues(p.Name(), "error").Inc()
		return a.lastGood(ctx, p.Name())
	}

	metrics.ProviderFetchTotal.WithLabelValues(p.Name(), "ok").Inc()
	metrics.ProviderPoolCount.WithLabelValues(p.Name()).Set(float64(len(fetched)))
	a.cache.PutPools(ctx, p.Name(), fetched)
	return fetched
}

func (a *Aggregator) lastGood(ctx context.Context, name string) []pool.Pool {
	cached, ok := a.cache.GetPools(ctx, name)
	if !ok {
		return nil
	}
	a.logger.Info("serving last-good pools from cache", "provider", name, "count", len(cached))
	return cached
}

// dropInvalid rejects any pool whose APY is not a finite number >= 0 or
// whose risk bucket is missing.
func dropInvalid(pools []pool.Pool) []pool.Pool {
	out := pools[:0]
	for _, p := range pools {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}
