package provider

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

const alexAPI = "https://api.alexgo.io/v1/tickers"

// alexTicker mirrors one entry of the ALEX public ticker feed.
type alexTicker struct {
	TickerID       string    `json:"ticker_id"`
	PoolID         string    `json:"pool_id"`
	Base           string    `json:"base"`
	Target         string    `json:"target"`
	LastPrice      flexFloat `json:"last_price"`
	BaseVolume     flexFloat `json:"base_volume"`
	TargetVolume   flexFloat `json:"target_volume"`
	LiquidityInUSD flexFloat `json:"liquidity_in_usd"`
}

// Alex fetches AMM pools from the ALEX ticker API. ALEX publishes no APY,
// so yield is estimated from fee revenue.
type Alex struct {
	client  *http.Client
	baseURL string
}

func NewAlex() *Alex {
	return &Alex{client: newHTTPClient(), baseURL: alexAPI}
}

func (a *Alex) Name() string     { return "alex" }
func (a *Alex) Platform() string { return "ALEX" }

func (a *Alex) Fetch(ctx context.Context) ([]pool.Pool, error) {
	var tickers []alexTicker
	if err := getJSON(ctx, a.client, a.baseURL, &tickers); err != nil {
		return nil, fmt.Errorf("alex: %w", err)
	}

	pools := make([]pool.Pool, 0, len(tickers))
	for _, t := range tickers {
		// Approximate 24h USD volume: base side priced via last trade,
		// target side assumed USD-denominated.
		volumeUSD := math.Max(0, t.BaseVolume.Float()*t.LastPrice.Float()+t.TargetVolume.Float())
		liq := t.LiquidityInUSD.Float()
		pools = append(pools, pool.Pool{
			ID:           "alex-" + t.TickerID,
			Platform:     a.Platform(),
			Name:         fmt.Sprintf("ALEX %s/%s", t.Base, t.Target),
			APY:          pool.EstimateAPYFromFees(volumeUSD, liq),
			Risk:         pool.RiskFromLiquidity(liq),
			URL:          "https://app.alexlab.co/pools",
			LiquidityUSD: liq,
			Volume24hUSD: volumeUSD,
		})
	}
	return capPools(pools), nil
}
