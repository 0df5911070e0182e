// Package scoring computes a 0–100 relevance score for a normalized pool
// against a user goal. Pure functions only: identical inputs always yield
// identical scores.
package scoring

import (
	"strings"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

// Volume thresholds for the 24h trading-volume component.
const (
	lowVolumeUSD  = 5_000
	highVolumeUSD = 50_000
)

// Score rates a pool for the given goal as a weighted mix of raw APY and a
// safety percentage built from risk category, liquidity depth, trading
// volume and a coarse platform-trust multiplier.
func Score(p pool.Pool, goal pool.Goal) float64 {
	apyScore := pool.ClampAPY(p.APY)

	var riskWeight float64
	switch p.Risk {
	case pool.RiskLow:
		riskWeight = 1.0
	case pool.RiskMedium:
		riskWeight = 0.6
	default:
		riskWeight = 0.3
	}

	safetyPct := 100 * platformTrust(p.Platform) *
		(0.5*riskWeight + 0.3*liquidityScore(p.LiquidityUSD) + 0.2*volumeScore(p.Volume24hUSD))

	switch goal {
	case pool.GoalLowRisk:
		return 0.35*apyScore + 0.65*safetyPct
	case pool.GoalHandsOff:
		return 0.45*apyScore + 0.55*safetyPct
	default: // yield
		return 0.75*apyScore + 0.25*safetyPct
	}
}

// liquidityScore: >=100k → 1.0, 20k–100k → 0.6..0.9, below (or unknown) → 0.3.
func liquidityScore(liq float64) float64 {
	switch {
	case liq >= pool.DeepLiquidityUSD:
		return 1.0
	case liq >= pool.ThinLiquidityUSD:
		return 0.6 + (liq-pool.ThinLiquidityUSD)/(pool.DeepLiquidityUSD-pool.ThinLiquidityUSD)*0.3
	default:
		return 0.3
	}
}

// volumeScore: >=50k → 1.0, 5k–50k → 0.6..1.0, below (or unknown) → 0.4.
func volumeScore(vol float64) float64 {
	switch {
	case vol >= highVolumeUSD:
		return 1.0
	case vol >= lowVolumeUSD:
		return 0.6 + (vol-lowVolumeUSD)/(highVolumeUSD-lowVolumeUSD)*0.4
	default:
		return 0.4
	}
}

// platformTrust is a hardcoded reputation signal, not derived from data:
// long-established Stacks protocols 1.0, newer ones 0.8, unknown 0.7.
func platformTrust(platform string) float64 {
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "alex"), strings.Contains(p, "arkadiko"):
		return 1.0
	case strings.Contains(p, "velar"), strings.Contains(p, "stackswap"):
		return 0.8
	default:
		return 0.7
	}
}

// RiskNote returns the canned human-readable annotation for a pool's risk
// bucket, independent of score.
func RiskNote(p pool.Pool) string {
	switch p.Risk {
	case pool.RiskLow:
		return "Lower volatility and higher liquidity expected; yields may be moderate."
	case pool.RiskMedium:
		return "Moderate risk: price swings and changing fees can impact returns."
	default:
		return "High risk: thin liquidity or volatile assets; returns can vary widely."
	}
}
