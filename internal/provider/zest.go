package provider

import (
	"context"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

// Zest Protocol is a BTC lending/borrowing market on Stacks. There is no
// public API for live pool data, so this adapter serves a small curated
// list with estimated figures and hand-assigned risk categories.
type Zest struct{}

func NewZest() *Zest { return &Zest{} }

func (z *Zest) Name() string     { return "zest" }
func (z *Zest) Platform() string { return "Zest Protocol" }

func (z *Zest) Fetch(_ context.Context) ([]pool.Pool, error) {
	return []pool.Pool{
		{
			ID:           "zest-btc-lending",
			Platform:     z.Platform(),
			Name:         "Zest BTC Lending Pool",
			APY:          6.5,
			Risk:         pool.RiskMedium,
			URL:          "https://app.zestprotocol.com/",
			LiquidityUSD: 250_000,
			Volume24hUSD: 20_000,
		},
		{
			ID:           "zest-btc-borrowing",
			Platform:     z.Platform(),
			Name:         "Zest BTC Borrowing Pool",
			APY:          9.2,
			Risk:         pool.RiskHigh, // leveraged borrow side
			URL:          "https://app.zestprotocol.com/",
			LiquidityUSD: 120_000,
			Volume24hUSD: 18_000,
		},
	}, nil
}
