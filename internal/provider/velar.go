package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

const velarAPI = "https://api.velar.co/pools"

type velarPool struct {
	ID           string    `json:"id"`
	Token0       string    `json:"token0"`
	Token1       string    `json:"token1"`
	LiquidityUSD flexFloat `json:"liquidity_usd"`
	Volume24hUSD flexFloat `json:"volume_24h_usd"`
	// Velar has published APY under different names across API revisions.
	APY flexFloat `json:"apy"`
	APR flexFloat `json:"apr"`
}

// Velar fetches pools from the Velar public API. A published APY is used
// when present; otherwise yield is estimated from fee revenue. When the
// API is unreachable a small curated list keeps the protocol represented.
type Velar struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

func NewVelar(logger *slog.Logger) *Velar {
	return &Velar{client: newHTTPClient(), baseURL: velarAPI, logger: logger}
}

func (v *Velar) Name() string     { return "velar" }
func (v *Velar) Platform() string { return "Velar" }

func (v *Velar) Fetch(ctx context.Context) ([]pool.Pool, error) {
	var raw []velarPool
	if err := getJSON(ctx, v.client, v.baseURL, &raw); err != nil {
		v.logger.Warn("velar fetch failed, serving curated fallback", "error", err)
		return v.fallbackPools(), nil
	}

	pools := make([]pool.Pool, 0, len(raw))
	for _, p := range raw {
		liq := p.LiquidityUSD.Float()
		vol := p.Volume24hUSD.Float()
		apy := p.APY.Float()
		if apy == 0 {
			apy = p.APR.Float()
		}
		if apy == 0 {
			apy = pool.EstimateAPYFromFees(vol, liq)
		}
		pools = append(pools, pool.Pool{
			ID:           "velar-" + p.ID,
			Platform:     v.Platform(),
			Name:         fmt.Sprintf("Velar %s/%s", p.Token0, p.Token1),
			APY:          pool.ClampAPY(apy),
			Risk:         pool.RiskFromLiquidity(liq),
			URL:          "https://velar.co/",
			LiquidityUSD: liq,
			Volume24hUSD: vol,
		})
	}
	return capPools(pools), nil
}

// fallbackPools are hand-curated estimates, served only when the live API
// is down.
func (v *Velar) fallbackPools() []pool.Pool {
	return []pool.Pool{
		{
			ID:       "velar-stx-btc",
			Platform: v.Platform(),
			Name:     "Velar STX/BTC Pool",
			APY:      10.2,
			Risk:     pool.RiskMedium,
			URL:      "https://velar.co/",
		},
		{
			ID:       "velar-stx-usda",
			Platform: v.Platform(),
			Name:     "Velar STX/USDA Pool",
			APY:      8.1,
			Risk:     pool.RiskMedium,
			URL:      "https://velar.co/",
		},
	}
}
