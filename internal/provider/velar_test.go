package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVelarPublishedAPYPreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"id":"p1","token0":"STX","token1":"USDA","liquidity_usd":150000,
			 "volume_24h_usd":30000,"apy":14.2},
			{"id":"p2","token0":"STX","token1":"BTC","liquidity_usd":100000,
			 "volume_24h_usd":10000}
		]`)
	}))
	defer srv.Close()

	v := NewVelar(slog.Default())
	v.baseURL = srv.URL

	pools, err := v.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(pools) != 2 {
		t.Fatalf("got %d pools, want 2", len(pools))
	}
	if pools[0].APY != 14.2 {
		t.Errorf("published apy = %v, want 14.2", pools[0].APY)
	}
	// p2 has no published APY: estimated from fees.
	// 10000*0.003*365/100000*100 = 10.95
	if pools[1].APY < 10.94 || pools[1].APY > 10.96 {
		t.Errorf("estimated apy = %v, want ~10.95", pools[1].APY)
	}
	if pools[0].ID != "velar-p1" || pools[1].ID != "velar-p2" {
		t.Errorf("ids = %q, %q", pools[0].ID, pools[1].ID)
	}
}

func TestVelarFallbackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := NewVelar(slog.Default())
	v.baseURL = srv.URL

	pools, err := v.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fallback must not error, got %v", err)
	}
	if len(pools) == 0 {
		t.Fatal("expected curated fallback pools")
	}
	for _, p := range pools {
		if p.Platform != "Velar" || !p.Valid() {
			t.Errorf("fallback pool not normalized: %+v", p)
		}
	}
}

func TestVelarNegativeAPYClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"id":"p1","token0":"A","token1":"B","liquidity_usd":1000,"volume_24h_usd":0,"apy":-5}]`)
	}))
	defer srv.Close()

	v := NewVelar(slog.Default())
	v.baseURL = srv.URL

	pools, err := v.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if pools[0].APY != 0 {
		t.Errorf("apy = %v, want 0 after clamping", pools[0].APY)
	}
}
