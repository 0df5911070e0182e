package provider

import (
	"context"
	"testing"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

func TestZestCuratedPools(t *testing.T) {
	z := NewZest()

	pools, err := z.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(pools) != 2 {
		t.Fatalf("got %d pools, want 2", len(pools))
	}

	// Risk categories are hand-assigned per pool, not derived: the
	// lending side is medium despite its modest APY, the leveraged
	// borrow side is high.
	byID := map[string]pool.Pool{}
	for _, p := range pools {
		byID[p.ID] = p
	}
	if byID["zest-btc-lending"].Risk != pool.RiskMedium {
		t.Errorf("lending risk = %v, want medium", byID["zest-btc-lending"].Risk)
	}
	if byID["zest-btc-borrowing"].Risk != pool.RiskHigh {
		t.Errorf("borrowing risk = %v, want high", byID["zest-btc-borrowing"].Risk)
	}
	for _, p := range pools {
		if !p.Valid() {
			t.Errorf("pool %q not normalized", p.ID)
		}
	}
}
