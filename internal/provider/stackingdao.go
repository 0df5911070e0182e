package provider

import (
	"context"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

// StackingDAO is a liquid staking protocol for STX with no public pool
// API; the adapter serves a single curated entry with estimated figures.
type StackingDAO struct{}

func NewStackingDAO() *StackingDAO { return &StackingDAO{} }

func (s *StackingDAO) Name() string     { return "stackingdao" }
func (s *StackingDAO) Platform() string { return "StackingDAO" }

func (s *StackingDAO) Fetch(_ context.Context) ([]pool.Pool, error) {
	return []pool.Pool{
		{
			ID:           "stackingdao-stx-ststx",
			Platform:     s.Platform(),
			Name:         "StackingDAO STX/stSTX Pool",
			APY:          5.8,
			Risk:         pool.RiskLow,
			URL:          "https://stackingdao.com/",
			LiquidityUSD: 300_000,
			Volume24hUSD: 5_000,
		},
	}, nil
}
