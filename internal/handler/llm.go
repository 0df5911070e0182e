package handler

import (
	"encoding/json"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/llm"
	"github.com/stacksfolio/yield-radar/internal/wallet"
)

// LLMRecommend matches a wallet's holdings against the live pool universe
// and asks the model for up to three entry suggestions.
func LLMRecommend(balances BalanceFetcher, agg PoolAggregator, ai Completer) http.HandlerFunc {
	type request struct {
		Address  string             `json:"address"`
		Balances map[string]float64 `json:"balances"`
		Model    string             `json:"model"`
	}
	type response struct {
		Result []llm.Recommendation `json:"result"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if !wallet.ValidAddress(req.Address) {
			http.Error(w, `{"error":"invalid stacks address"}`, http.StatusBadRequest)
			return
		}
		if ai == nil || !ai.Configured() {
			http.Error(w, `{"error":"llm not configured"}`, http.StatusServiceUnavailable)
			return
		}

		// Callers that already hold balances (the dashboard does) may send
		// them; otherwise they are fetched fresh.
		held := req.Balances
		if len(held) == 0 {
			var err error
			held, err = balances.Balances(r.Context(), req.Address)
			if err != nil {
				http.Error(w, `{"error":"failed to fetch wallet balances"}`, http.StatusBadGateway)
				return
			}
		}

		pools := agg.Aggregate(r.Context())
		prompt := llm.BuildWalletPrompt(req.Address, held, pools)
		raw, err := ai.Complete(r.Context(), prompt, req.Model)
		if err != nil {
			http.Error(w, `{"error":"recommendation failed"}`, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response{Result: llm.ParseRecommendations(raw)})
	}
}

// LLMModels lists the model ids available to the configured key.
func LLMModels(lister ModelLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models, err := lister.ListModels(r.Context())
		if err != nil {
			http.Error(w, `{"error":"failed to list models"}`, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string][]string{"models": models})
	}
}
