package provider

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

const arkadikoAPI = "https://arkadiko-api.herokuapp.com/api/v1/tickers"

type arkadikoTicker struct {
	TickerID       string    `json:"ticker_id"`
	BaseCurrency   string    `json:"base_currency"`
	TargetCurrency string    `json:"target_currency"`
	PoolID         string    `json:"pool_id"`
	LastPrice      flexFloat `json:"last_price"`
	BaseVolume     flexFloat `json:"base_volume"`
	TargetVolume   flexFloat `json:"target_volume"`
	LiquidityInUSD flexFloat `json:"liquidity_in_usd"`
}

// Arkadiko fetches AMM pools from the Arkadiko ticker API. Same schema
// family as ALEX: no published APY, so fee-revenue estimation applies.
type Arkadiko struct {
	client  *http.Client
	baseURL string
}

func NewArkadiko() *Arkadiko {
	return &Arkadiko{client: newHTTPClient(), baseURL: arkadikoAPI}
}

func (a *Arkadiko) Name() string     { return "arkadiko" }
func (a *Arkadiko) Platform() string { return "Arkadiko" }

func (a *Arkadiko) Fetch(ctx context.Context) ([]pool.Pool, error) {
	var tickers []arkadikoTicker
	if err := getJSON(ctx, a.client, a.baseURL, &tickers); err != nil {
		return nil, fmt.Errorf("arkadiko: %w", err)
	}

	pools := make([]pool.Pool, 0, len(tickers))
	for _, t := range tickers {
		volumeUSD := math.Max(0, t.BaseVolume.Float()*t.LastPrice.Float()+t.TargetVolume.Float())
		liq := t.LiquidityInUSD.Float()
		pools = append(pools, pool.Pool{
			ID:           "arkadiko-" + t.TickerID,
			Platform:     a.Platform(),
			Name:         fmt.Sprintf("Arkadiko %s/%s", t.BaseCurrency, t.TargetCurrency),
			APY:          pool.EstimateAPYFromFees(volumeUSD, liq),
			Risk:         pool.RiskFromLiquidity(liq),
			URL:          "https://app.arkadiko.finance/swap",
			LiquidityUSD: liq,
			Volume24hUSD: volumeUSD,
		})
	}
	return capPools(pools), nil
}
