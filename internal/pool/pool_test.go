package pool

import (
	"math"
	"testing"
)

func TestClampAPY(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"normal", 12.5, 12.5},
		{"negative", -3, 0},
		{"above cap", 250, 100},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), 0},
		{"-Inf", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampAPY(tt.in); got != tt.want {
				t.Errorf("ClampAPY(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRiskFromLiquidity(t *testing.T) {
	tests := []struct {
		liq  float64
		want Risk
	}{
		{0, RiskHigh},
		{19_999, RiskHigh},
		{20_000, RiskMedium},
		{99_999, RiskMedium},
		{100_000, RiskLow},
		{5_000_000, RiskLow},
	}
	for _, tt := range tests {
		if got := RiskFromLiquidity(tt.liq); got != tt.want {
			t.Errorf("RiskFromLiquidity(%v) = %v, want %v", tt.liq, got, tt.want)
		}
	}
}

func TestRiskFromAPY(t *testing.T) {
	tests := []struct {
		apy  float64
		want Risk
	}{
		{0, RiskLow},
		{10, RiskLow},
		{10.1, RiskMedium},
		{30, RiskMedium},
		{30.1, RiskHigh},
	}
	for _, tt := range tests {
		if got := RiskFromAPY(tt.apy); got != tt.want {
			t.Errorf("RiskFromAPY(%v) = %v, want %v", tt.apy, got, tt.want)
		}
	}
}

func TestEstimateAPYFromFees(t *testing.T) {
	tests := []struct {
		name      string
		volume    float64
		liquidity float64
		want      float64
	}{
		{"no liquidity", 10_000, 0, 0},
		{"negative liquidity", 10_000, -5, 0},
		{"negative volume treated as zero", -100, 50_000, 0},
		// 10k * 0.003 * 365 / 100k * 100 = 10.95
		{"typical pool", 10_000, 100_000, 10.95},
		// huge volume clamps at 100
		{"clamped", 10_000_000, 10_000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateAPYFromFees(tt.volume, tt.liquidity)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EstimateAPYFromFees(%v, %v) = %v, want %v", tt.volume, tt.liquidity, got, tt.want)
			}
		})
	}
}

func TestParseGoal(t *testing.T) {
	tests := []struct {
		in   string
		want Goal
	}{
		{"yield", GoalYield},
		{"low-risk", GoalLowRisk},
		{"hands-off", GoalHandsOff},
		{"", GoalYield},
		{"garbage", GoalYield},
	}
	for _, tt := range tests {
		if got := ParseGoal(tt.in); got != tt.want {
			t.Errorf("ParseGoal(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPoolValid(t *testing.T) {
	ok := Pool{ID: "x", APY: 5, Risk: RiskLow}
	if !ok.Valid() {
		t.Error("expected valid pool")
	}
	for _, p := range []Pool{
		{APY: math.NaN(), Risk: RiskLow},
		{APY: -1, Risk: RiskLow},
		{APY: 5, Risk: "weird"},
		{APY: 5},
	} {
		if p.Valid() {
			t.Errorf("expected invalid pool: %+v", p)
		}
	}
}

func TestStaticPoolsNormalized(t *testing.T) {
	if len(StaticPools) == 0 {
		t.Fatal("static fallback dataset must not be empty")
	}
	seen := make(map[string]bool)
	for _, p := range StaticPools {
		if !p.Valid() {
			t.Errorf("static pool %q not normalized", p.ID)
		}
		if p.URL == "" {
			t.Errorf("static pool %q missing url", p.ID)
		}
		if seen[p.ID] {
			t.Errorf("duplicate static pool id %q", p.ID)
		}
		seen[p.ID] = true
	}
}
