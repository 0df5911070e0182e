package pool

// StaticPools is the hand-curated dataset served when every provider fails,
// so the dashboard never shows a hard empty state for a transient network
// blip. Figures are estimates, not live data.
var StaticPools = []Pool{
	{
		ID:       "alex-stx-usda",
		Platform: "ALEX",
		Name:     "ALEX STX/USDA LP",
		APY:      12.4,
		Risk:     RiskMedium,
		URL:      "https://app.alexlab.co/pools",
	},
	{
		ID:       "alex-usda",
		Platform: "ALEX",
		Name:     "ALEX USDA Savings",
		APY:      7.1,
		Risk:     RiskLow,
		URL:      "https://app.alexlab.co/earn",
	},
	{
		ID:       "alex-stx",
		Platform: "ALEX",
		Name:     "ALEX STX Staking",
		APY:      9.3,
		Risk:     RiskLow,
		URL:      "https://app.alexlab.co/stake",
	},
	{
		ID:       "velar-stx-btc",
		Platform: "Velar",
		Name:     "Velar STX/BTC Pool",
		APY:      10.2,
		Risk:     RiskMedium,
		URL:      "https://velar.co/",
	},
	{
		ID:           "stackingdao-stx-ststx",
		Platform:     "StackingDAO",
		Name:         "StackingDAO STX/stSTX Pool",
		APY:          5.8,
		Risk:         RiskLow,
		URL:          "https://stackingdao.com/",
		LiquidityUSD: 300_000,
		Volume24hUSD: 5_000,
	},
}
