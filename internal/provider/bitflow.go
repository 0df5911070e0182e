package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

const bitflowAPI = "https://bitflow-sdk-api-gateway-7owjsmt8.uc.gateway.dev/ticker"

type bitflowTicker struct {
	TickerID       string    `json:"ticker_id"`
	BaseCurrency   string    `json:"base_currency"`
	TargetCurrency string    `json:"target_currency"`
	LastPrice      flexFloat `json:"last_price"`
	BaseVolume     flexFloat `json:"base_volume"`
	TargetVolume   flexFloat `json:"target_volume"`
	LiquidityInUSD flexFloat `json:"liquidity_in_usd"`
}

// Bitflow fetches pools from the Bitflow ticker gateway. The endpoint has
// returned both a bare object and an array over time, so both are accepted.
type Bitflow struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

func NewBitflow(logger *slog.Logger) *Bitflow {
	return &Bitflow{client: newHTTPClient(), baseURL: bitflowAPI, logger: logger}
}

func (b *Bitflow) Name() string     { return "bitflow" }
func (b *Bitflow) Platform() string { return "Bitflow" }

func (b *Bitflow) Fetch(ctx context.Context) ([]pool.Pool, error) {
	tickers, err := b.fetchTickers(ctx)
	if err != nil {
		b.logger.Warn("bitflow fetch failed, serving curated fallback", "error", err)
		return b.fallbackPools(), nil
	}

	pools := make([]pool.Pool, 0, len(tickers))
	for _, t := range tickers {
		volumeUSD := math.Max(0, t.BaseVolume.Float()*t.LastPrice.Float()+t.TargetVolume.Float())
		liq := t.LiquidityInUSD.Float()
		pools = append(pools, pool.Pool{
			ID:           "bitflow-" + t.TickerID,
			Platform:     b.Platform(),
			Name:         fmt.Sprintf("Bitflow %s/%s", t.BaseCurrency, t.TargetCurrency),
			APY:          pool.EstimateAPYFromFees(volumeUSD, liq),
			Risk:         pool.RiskFromLiquidity(liq),
			URL:          "https://www.bitflow.finance/",
			LiquidityUSD: liq,
			Volume24hUSD: volumeUSD,
		})
	}
	return capPools(pools), nil
}

func (b *Bitflow) fetchTickers(ctx context.Context) ([]bitflowTicker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bitflow: build request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bitflow: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bitflow: fetch status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("bitflow: read body: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tickers []bitflowTicker
		if err := json.Unmarshal(trimmed, &tickers); err != nil {
			return nil, fmt.Errorf("bitflow: decode array: %w", err)
		}
		return tickers, nil
	}
	var single bitflowTicker
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("bitflow: decode object: %w", err)
	}
	return []bitflowTicker{single}, nil
}

func (b *Bitflow) fallbackPools() []pool.Pool {
	return []pool.Pool{
		{
			ID:       "bitflow-stx-sbtc",
			Platform: b.Platform(),
			Name:     "Bitflow STX/sBTC",
			APY:      18.7,
			Risk:     pool.RiskHigh,
			URL:      "https://www.bitflow.finance/",
		},
		{
			ID:       "bitflow-sbtc-usda",
			Platform: b.Platform(),
			Name:     "Bitflow sBTC/USDA",
			APY:      11.3,
			Risk:     pool.RiskMedium,
			URL:      "https://www.bitflow.finance/",
		},
		{
			ID:       "bitflow-stx-wmno",
			Platform: b.Platform(),
			Name:     "Bitflow STX/WMNO",
			APY:      22.1,
			Risk:     pool.RiskHigh,
			URL:      "https://www.bitflow.finance/",
		},
	}
}
