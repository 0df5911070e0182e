package handler

import (
	"encoding/json"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/pool"
	"github.com/stacksfolio/yield-radar/internal/store"
	"github.com/stacksfolio/yield-radar/internal/wallet"
)

// CreateIntent records a user's stated deposit intention. The server runs
// without Postgres in dev, so a nil store answers 503 rather than panicking.
func CreateIntent(s *store.Store) http.HandlerFunc {
	type request struct {
		Address   string  `json:"address"`
		PoolID    string  `json:"poolId"`
		Platform  string  `json:"platform"`
		AmountUSD float64 `json:"amountUsd"`
		Goal      string  `json:"goal"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			http.Error(w, `{"error":"storage not configured"}`, http.StatusServiceUnavailable)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if !wallet.ValidAddress(req.Address) {
			http.Error(w, `{"error":"invalid stacks address"}`, http.StatusBadRequest)
			return
		}
		if req.PoolID == "" {
			http.Error(w, `{"error":"poolId required"}`, http.StatusBadRequest)
			return
		}
		if req.AmountUSD <= 0 {
			http.Error(w, `{"error":"amountUsd must be positive"}`, http.StatusBadRequest)
			return
		}

		intent, err := s.InsertIntent(r.Context(), store.Intent{
			Address:   req.Address,
			PoolID:    req.PoolID,
			Platform:  req.Platform,
			AmountUSD: req.AmountUSD,
			Goal:      string(pool.ParseGoal(req.Goal)),
		})
		if err != nil {
			http.Error(w, `{"error":"failed to record intent"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(intent)
	}
}

// ListIntents returns the most recent intents for an address.
func ListIntents(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			http.Error(w, `{"error":"storage not configured"}`, http.StatusServiceUnavailable)
			return
		}

		address := r.URL.Query().Get("address")
		if !wallet.ValidAddress(address) {
			http.Error(w, `{"error":"invalid stacks address"}`, http.StatusBadRequest)
			return
		}

		intents, err := s.ListIntents(r.Context(), address, 50)
		if err != nil {
			http.Error(w, `{"error":"failed to list intents"}`, http.StatusInternalServerError)
			return
		}
		if intents == nil {
			intents = []store.Intent{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(intents)
	}
}
