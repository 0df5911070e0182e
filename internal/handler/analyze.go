package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/llm"
	"github.com/stacksfolio/yield-radar/internal/pool"
	"github.com/stacksfolio/yield-radar/internal/rank"
)

// Analyze returns free-text model commentary on the current pool universe
// for the caller's goal. Callers may pass their own pool list to analyze a
// subset; otherwise the live aggregate is used.
func Analyze(agg PoolAggregator, ai Completer) http.HandlerFunc {
	type request struct {
		Goal   string      `json:"goal"`
		MinAPY float64     `json:"minApy"`
		Pools  []pool.Pool `json:"pools"`
	}
	type response struct {
		Summary string `json:"summary"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		if ai == nil || !ai.Configured() {
			http.Error(w, `{"error":"llm not configured"}`, http.StatusServiceUnavailable)
			return
		}

		goal := pool.ParseGoal(req.Goal)
		pools := req.Pools
		if len(pools) == 0 {
			ranked := rank.Rank(agg.Aggregate(r.Context()), goal, req.MinAPY, rank.DefaultLimit)
			pools = ranked.Pools
		}
		if len(pools) == 0 {
			http.Error(w, `{"error":"no pool data available to analyze"}`, http.StatusServiceUnavailable)
			return
		}

		text, err := ai.Complete(r.Context(), llm.BuildAnalysisPrompt(goal, req.MinAPY, pools), "")
		if err != nil {
			// Commentary is advisory: a provider error degrades to a canned
			// summary rather than failing the request.
			text = "AI analysis failed. Please try again later."
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response{Summary: text})
	}
}
