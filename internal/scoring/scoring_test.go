package scoring

import (
	"math"
	"testing"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

func deepPool(apy float64) pool.Pool {
	return pool.Pool{
		ID:           "alex-test",
		Platform:     "ALEX",
		APY:          apy,
		Risk:         pool.RiskLow,
		LiquidityUSD: 500_000,
		Volume24hUSD: 100_000,
	}
}

func TestScoreDeterministic(t *testing.T) {
	p := deepPool(12)
	for _, goal := range []pool.Goal{pool.GoalYield, pool.GoalLowRisk, pool.GoalHandsOff} {
		a := Score(p, goal)
		b := Score(p, goal)
		if a != b {
			t.Errorf("Score not deterministic for goal %v: %v != %v", goal, a, b)
		}
	}
}

func TestScoreRange(t *testing.T) {
	pools := []pool.Pool{
		{},
		deepPool(0),
		deepPool(100),
		{Platform: "Mystery", APY: 100, Risk: pool.RiskHigh},
	}
	for _, p := range pools {
		for _, goal := range []pool.Goal{pool.GoalYield, pool.GoalLowRisk, pool.GoalHandsOff} {
			s := Score(p, goal)
			if s < 0 || s > 100 {
				t.Errorf("Score(%+v, %v) = %v out of [0,100]", p, goal, s)
			}
		}
	}
}

func TestScoreMonotonicInAPY(t *testing.T) {
	// Holding risk/liquidity/volume/platform fixed, more APY never scores
	// lower under the yield goal.
	prev := math.Inf(-1)
	for apy := 0.0; apy <= 100; apy += 2.5 {
		s := Score(deepPool(apy), pool.GoalYield)
		if s < prev {
			t.Fatalf("score decreased at apy=%v: %v < %v", apy, s, prev)
		}
		prev = s
	}
}

func TestScoreExactValue(t *testing.T) {
	// Full-safety low-risk ALEX pool: safety = 100*1.0*(0.5+0.3+0.2) = 100.
	p := deepPool(20)
	got := Score(p, pool.GoalYield)
	want := 0.75*20 + 0.25*100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", got, want)
	}

	got = Score(p, pool.GoalLowRisk)
	want = 0.35*20 + 0.65*100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("low-risk Score = %v, want %v", got, want)
	}
}

func TestGoalWeighting(t *testing.T) {
	// A risky high-APY pool should outrank a safe low-APY pool for the
	// yield goal, and lose to it for the low-risk goal.
	risky := pool.Pool{Platform: "Mystery", APY: 80, Risk: pool.RiskHigh}
	safe := deepPool(4)

	if Score(risky, pool.GoalYield) <= Score(safe, pool.GoalYield) {
		t.Error("yield goal should favor the high-APY pool")
	}
	if Score(risky, pool.GoalLowRisk) >= Score(safe, pool.GoalLowRisk) {
		t.Error("low-risk goal should favor the safe pool")
	}
}

func TestLiquidityInterpolation(t *testing.T) {
	tests := []struct {
		liq  float64
		want float64
	}{
		{0, 0.3},
		{19_999, 0.3},
		{20_000, 0.6},
		{60_000, 0.75},
		{100_000, 1.0},
	}
	for _, tt := range tests {
		if got := liquidityScore(tt.liq); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("liquidityScore(%v) = %v, want %v", tt.liq, got, tt.want)
		}
	}
}

func TestVolumeInterpolation(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{0, 0.4},
		{4_999, 0.4},
		{5_000, 0.6},
		{27_500, 0.8},
		{50_000, 1.0},
	}
	for _, tt := range tests {
		if got := volumeScore(tt.vol); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeScore(%v) = %v, want %v", tt.vol, got, tt.want)
		}
	}
}

func TestPlatformTrust(t *testing.T) {
	tests := []struct {
		platform string
		want     float64
	}{
		{"ALEX", 1.0},
		{"Arkadiko", 1.0},
		{"Velar", 0.8},
		{"StackSwap", 0.8},
		{"Zest Protocol", 0.7},
		{"", 0.7},
	}
	for _, tt := range tests {
		if got := platformTrust(tt.platform); got != tt.want {
			t.Errorf("platformTrust(%q) = %v, want %v", tt.platform, got, tt.want)
		}
	}
}

func TestRiskNote(t *testing.T) {
	notes := map[pool.Risk]string{
		pool.RiskLow:    RiskNote(pool.Pool{Risk: pool.RiskLow}),
		pool.RiskMedium: RiskNote(pool.Pool{Risk: pool.RiskMedium}),
		pool.RiskHigh:   RiskNote(pool.Pool{Risk: pool.RiskHigh}),
	}
	seen := make(map[string]bool)
	for risk, note := range notes {
		if note == "" {
			t.Errorf("empty risk note for %v", risk)
		}
		if seen[note] {
			t.Errorf("duplicate risk note: %q", note)
		}
		seen[note] = true
	}
}
