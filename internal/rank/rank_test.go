package rank

import (
	"strings"
	"testing"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

func mkPool(id string, apy float64) pool.Pool {
	return pool.Pool{
		ID:       id,
		Platform: "ALEX",
		Name:     id,
		APY:      apy,
		Risk:     pool.RiskMedium,
		URL:      "https://app.alexlab.co/pools",
	}
}

func TestRankThresholdApplied(t *testing.T) {
	pools := []pool.Pool{mkPool("a", 5), mkPool("b", 8), mkPool("c", 12)}

	res := Rank(pools, pool.GoalYield, 6, 10)
	if len(res.Pools) != 2 {
		t.Fatalf("got %d pools, want 2", len(res.Pools))
	}
	if res.Pools[0].ID != "c" || res.Pools[1].ID != "b" {
		t.Errorf("order = [%s %s], want [c b]", res.Pools[0].ID, res.Pools[1].ID)
	}
	if !strings.Contains(res.Message, "APY ≥ 6.0%") {
		t.Errorf("message = %q, want applied-threshold message", res.Message)
	}
}

func TestRankThresholdRelaxed(t *testing.T) {
	pools := []pool.Pool{mkPool("a", 5), mkPool("b", 8), mkPool("c", 12)}

	res := Rank(pools, pool.GoalYield, 20, 10)
	if len(res.Pools) != 3 {
		t.Fatalf("got %d pools, want all 3 (relaxed)", len(res.Pools))
	}
	if res.Pools[0].ID != "c" {
		t.Errorf("top pool = %s, want c", res.Pools[0].ID)
	}
	if !strings.Contains(res.Message, "No pools matched") {
		t.Errorf("message = %q, want relaxation notice", res.Message)
	}
}

func TestRankEmptyInput(t *testing.T) {
	res := Rank(nil, pool.GoalYield, 0, 5)
	if res.Pools == nil {
		t.Fatal("pools must be an empty slice, not nil")
	}
	if len(res.Pools) != 0 {
		t.Errorf("got %d pools, want 0", len(res.Pools))
	}
	if res.Message == "" {
		t.Error("expected a no-data message")
	}
}

func TestRankLimitClamp(t *testing.T) {
	var pools []pool.Pool
	for i := 0; i < 25; i++ {
		pools = append(pools, mkPool(string(rune('a'+i)), float64(i)))
	}

	if res := Rank(pools, pool.GoalYield, 0, 999); len(res.Pools) != MaxLimit {
		t.Errorf("limit=999 returned %d pools, want %d", len(res.Pools), MaxLimit)
	}
	if res := Rank(pools, pool.GoalYield, 0, 0); len(res.Pools) != MinLimit {
		t.Errorf("limit=0 returned %d pools, want %d", len(res.Pools), MinLimit)
	}
	if res := Rank(pools, pool.GoalYield, 0, -3); len(res.Pools) != MinLimit {
		t.Errorf("limit=-3 returned %d pools, want %d", len(res.Pools), MinLimit)
	}
}

func TestRankDeterministicTieBreak(t *testing.T) {
	// Identical score and APY: lexical id decides, repeatably.
	pools := []pool.Pool{mkPool("zz", 7), mkPool("aa", 7), mkPool("mm", 7)}

	first := Rank(pools, pool.GoalHandsOff, 0, 10)
	for i := 0; i < 5; i++ {
		again := Rank(pools, pool.GoalHandsOff, 0, 10)
		for j := range first.Pools {
			if first.Pools[j].ID != again.Pools[j].ID {
				t.Fatalf("ordering not deterministic at %d: %s vs %s",
					j, first.Pools[j].ID, again.Pools[j].ID)
			}
		}
	}
	if first.Pools[0].ID != "aa" || first.Pools[1].ID != "mm" || first.Pools[2].ID != "zz" {
		t.Errorf("tie-break order = %v, want [aa mm zz]",
			[]string{first.Pools[0].ID, first.Pools[1].ID, first.Pools[2].ID})
	}
}

func TestRankMinAPYClamp(t *testing.T) {
	pools := []pool.Pool{mkPool("a", 50)}

	// minApy above 100 clamps to 100 and relaxes (50 < 100).
	res := Rank(pools, pool.GoalYield, 500, 5)
	if len(res.Pools) != 1 {
		t.Errorf("got %d pools, want relaxed 1", len(res.Pools))
	}
	if !strings.Contains(res.Message, "100.0%") {
		t.Errorf("message = %q, want clamped threshold", res.Message)
	}

	// Negative minApy clamps to 0 and matches everything.
	res = Rank(pools, pool.GoalYield, -10, 5)
	if !strings.Contains(res.Message, "APY ≥ 0.0%") {
		t.Errorf("message = %q, want zero threshold", res.Message)
	}
}
