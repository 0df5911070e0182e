package pool

import "math"

// Risk is the categorical risk bucket assigned during normalization.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Goal is the user-selected optimization preference driving scoring weights.
type Goal string

const (
	GoalYield    Goal = "yield"
	GoalLowRisk  Goal = "low-risk"
	GoalHandsOff Goal = "hands-off"
)

// ParseGoal maps a request string onto a known goal, defaulting to yield.
func ParseGoal(s string) Goal {
	switch Goal(s) {
	case GoalLowRisk:
		return GoalLowRisk
	case GoalHandsOff:
		return GoalHandsOff
	default:
		return GoalYield
	}
}

// Pool is a yield opportunity normalized into the common schema. Provider
// adapters must never let upstream field names or shapes leak past this type.
type Pool struct {
	ID           string  `json:"id"`
	Platform     string  `json:"platform"`
	Name         string  `json:"name"`
	APY          float64 `json:"apy"`
	Risk         Risk    `json:"risk"`
	URL          string  `json:"url"`
	LiquidityUSD float64 `json:"liquidityUsd,omitempty"`
	Volume24hUSD float64 `json:"volume24hUsd,omitempty"`
}

// Normalization thresholds. These are heuristics tuned to the Stacks
// ecosystem and are kept as named constants so they can be recalibrated.
const (
	// AMMFeeRate is the assumed trading fee for APY estimation (30 bps,
	// typical constant-product AMM). Not verified against each protocol's
	// actual fee schedule, so estimated APYs are low-confidence.
	AMMFeeRate = 0.003

	// ThinLiquidityUSD and DeepLiquidityUSD bound the risk buckets when
	// liquidity data is available.
	ThinLiquidityUSD = 20_000
	DeepLiquidityUSD = 100_000

	// HighAPYPct and MediumAPYPct bound the risk buckets when liquidity
	// is unknown and APY magnitude is the only signal.
	HighAPYPct   = 30
	MediumAPYPct = 10
)

// ClampAPY normalizes a raw APY value to a finite percentage in [0, 100].
// NaN, infinities and negatives all collapse to 0.
func ClampAPY(apy float64) float64 {
	if math.IsNaN(apy) || math.IsInf(apy, 0) || apy < 0 {
		return 0
	}
	return math.Min(apy, 100)
}

// RiskFromLiquidity buckets risk by pool depth. Unknown (zero) liquidity
// is treated as thin.
func RiskFromLiquidity(liquidityUSD float64) Risk {
	switch {
	case liquidityUSD < ThinLiquidityUSD:
		return RiskHigh
	case liquidityUSD < DeepLiquidityUSD:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskFromAPY buckets risk by yield magnitude, for providers that expose
// no liquidity figure.
func RiskFromAPY(apy float64) Risk {
	switch {
	case apy > HighAPYPct:
		return RiskHigh
	case apy > MediumAPYPct:
		return RiskMedium
	default:
		return RiskLow
	}
}

// EstimateAPYFromFees derives an annualized yield percentage from 24h
// trading volume and pool depth, assuming AMMFeeRate of every trade
// accrues to LPs. Returns 0 when liquidity is unknown or the inputs
// produce a non-finite rate.
func EstimateAPYFromFees(dailyVolumeUSD, liquidityUSD float64) float64 {
	if liquidityUSD <= 0 {
		return 0
	}
	feePerDay := math.Max(0, dailyVolumeUSD) * AMMFeeRate
	apr := feePerDay * 365 / liquidityUSD
	return ClampAPY(apr * 100)
}

// Valid reports whether a pool is safe to hand to the ranking stage.
func (p Pool) Valid() bool {
	if math.IsNaN(p.APY) || math.IsInf(p.APY, 0) || p.APY < 0 {
		return false
	}
	switch p.Risk {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}
