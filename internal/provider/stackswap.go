package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

const stackswapURL = "https://app.stackswap.org/pool"

// scrapedPool is the intermediate shape extracted from the rendered page.
type scrapedPool struct {
	Pair         string  `json:"pair"`
	LiquidityUSD float64 `json:"liquidityUsd"`
	Volume24hUSD float64 `json:"volume24hUsd"`
}

// StackSwap has no public data API, so pool figures are scraped from the
// app's pool table via headless Chrome. Scraping is best-effort: any
// failure (or scraping disabled) falls back to a curated list.
type StackSwap struct {
	logger        *slog.Logger
	scrapeEnabled bool
}

func NewStackSwap(logger *slog.Logger, scrapeEnabled bool) *StackSwap {
	return &StackSwap{logger: logger, scrapeEnabled: scrapeEnabled}
}

func (s *StackSwap) Name() string     { return "stackswap" }
func (s *StackSwap) Platform() string { return "StackSwap" }

func (s *StackSwap) Fetch(ctx context.Context) ([]pool.Pool, error) {
	if s.scrapeEnabled {
		pools, err := s.scrape(ctx)
		if err == nil && len(pools) > 0 {
			return capPools(pools), nil
		}
		s.logger.Warn("stackswap scrape failed, serving curated fallback", "error", err)
	}
	return s.fallbackPools(), nil
}

func (s *StackSwap) scrape(ctx context.Context) ([]pool.Pool, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-crash-reporter", true),
		chromedp.Flag("crash-dumps-dir", "/tmp"),
		chromedp.UserDataDir("/tmp/chromedp-profile"),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	cctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// Same budget as the HTTP adapters, and comfortably inside the
	// server's write deadline: a slow render becomes the curated
	// fallback, never a dropped connection.
	cctx, cancel = context.WithTimeout(cctx, fetchTimeout)
	defer cancel()

	var resultJSON string
	if err := chromedp.Run(cctx,
		chromedp.Navigate(stackswapURL),
		chromedp.WaitVisible(`table tbody tr`, chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(extractPoolsJS, &resultJSON),
	); err != nil {
		return nil, fmt.Errorf("chromedp: %w", err)
	}

	var scraped []scrapedPool
	if err := json.Unmarshal([]byte(resultJSON), &scraped); err != nil {
		return nil, fmt.Errorf("parse scraped pools: %w", err)
	}
	return s.normalize(scraped), nil
}

func (s *StackSwap) normalize(scraped []scrapedPool) []pool.Pool {
	pools := make([]pool.Pool, 0, len(scraped))
	for _, sp := range scraped {
		if sp.Pair == "" {
			continue
		}
		pools = append(pools, pool.Pool{
			ID:           "stackswap-" + slugify(sp.Pair),
			Platform:     s.Platform(),
			Name:         "StackSwap " + sp.Pair,
			APY:          pool.EstimateAPYFromFees(sp.Volume24hUSD, sp.LiquidityUSD),
			Risk:         pool.RiskFromLiquidity(sp.LiquidityUSD),
			URL:          "https://app.stackswap.org/",
			LiquidityUSD: sp.LiquidityUSD,
			Volume24hUSD: sp.Volume24hUSD,
		})
	}
	return pools
}

// fallbackPools are hand-curated estimates used whenever scraping is off
// or fails.
func (s *StackSwap) fallbackPools() []pool.Pool {
	return []pool.Pool{
		{
			ID:           "stackswap-stx-usda",
			Platform:     s.Platform(),
			Name:         "StackSwap STX/USDA",
			APY:          9.8,
			Risk:         pool.RiskMedium,
			URL:          "https://app.stackswap.org/",
			LiquidityUSD: 50_000,
			Volume24hUSD: 12_000,
		},
		{
			ID:           "stackswap-stx-xbtc",
			Platform:     s.Platform(),
			Name:         "StackSwap STX/xBTC",
			APY:          15.2,
			Risk:         pool.RiskHigh,
			URL:          "https://app.stackswap.org/",
			LiquidityUSD: 15_000,
			Volume24hUSD: 8_000,
		},
		{
			ID:           "stackswap-usda-xbtc",
			Platform:     s.Platform(),
			Name:         "StackSwap USDA/xBTC",
			APY:          7.4,
			Risk:         pool.RiskMedium,
			URL:          "https://app.stackswap.org/",
			LiquidityUSD: 70_000,
			Volume24hUSD: 9_000,
		},
	}
}

// extractPoolsJS is evaluated in the browser to pull pool rows from the
// rendered table. Column layout: Pair | Liquidity | 24h Volume | ...
const extractPoolsJS = `
(() => {
	const rows = document.querySelectorAll('table tbody tr');
	const data = [];
	const parseNum = s => {
		s = (s || '').replace(/[$,\s]/g, '');
		const n = parseFloat(s);
		return isNaN(n) ? 0 : n;
	};
	rows.forEach(row => {
		const cells = row.querySelectorAll('td');
		if (cells.length < 3) return;
		const pair = (cells[0].textContent || '').trim().replace(/\s+/g, '/');
		data.push({
			pair: pair,
			liquidityUsd: parseNum(cells[1].textContent),
			volume24hUsd: parseNum(cells[2].textContent),
		});
	});
	return JSON.stringify(data);
})()
`
