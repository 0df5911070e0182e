package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stacksfolio/yield-radar/internal/wallet"
)

// WalletBalances returns the token balances held by a Stacks principal.
func WalletBalances(balances BalanceFetcher) http.HandlerFunc {
	type response struct {
		Address  string             `json:"address"`
		Balances map[string]float64 `json:"balances"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")
		if !wallet.ValidAddress(address) {
			http.Error(w, `{"error":"invalid stacks address"}`, http.StatusBadRequest)
			return
		}

		held, err := balances.Balances(r.Context(), address)
		if err != nil {
			http.Error(w, `{"error":"failed to fetch wallet balances"}`, http.StatusBadGateway)
			return
		}
		if held == nil {
			held = map[string]float64{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response{Address: address, Balances: held})
	}
}
