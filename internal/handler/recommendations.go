package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/llm"
	"github.com/stacksfolio/yield-radar/internal/pool"
	"github.com/stacksfolio/yield-radar/internal/rank"
	"github.com/stacksfolio/yield-radar/internal/scoring"
)

// ScoredPool is a pool plus its composite score for the requested goal.
type ScoredPool struct {
	pool.Pool
	Score    float64 `json:"score"`
	RiskNote string  `json:"riskNote"`
}

// Recommendations ranks the aggregated pool universe for the caller's
// goal. It always answers 200 with a well-formed body; upstream provider
// trouble degrades the data, never the response shape.
func Recommendations(logger *slog.Logger, agg PoolAggregator, ai Completer) http.HandlerFunc {
	type request struct {
		Goal      string  `json:"goal"`
		MinAPY    float64 `json:"minApy"`
		Limit     int     `json:"limit"`
		AISummary bool    `json:"aiSummary"`
	}
	type response struct {
		Recommendations []ScoredPool `json:"recommendations"`
		Message         string       `json:"message"`
		AISummary       string       `json:"aiSummary,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// Preset so an absent limit means the default, while an explicit
		// zero still reaches the clamp.
		req := request{Limit: rank.DefaultLimit}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		goal := pool.ParseGoal(req.Goal)
		pools := agg.Aggregate(r.Context())
		ranked := rank.Rank(pools, goal, req.MinAPY, req.Limit)

		scored := make([]ScoredPool, 0, len(ranked.Pools))
		for _, p := range ranked.Pools {
			scored = append(scored, ScoredPool{
				Pool:     p,
				Score:    scoring.Score(p, goal),
				RiskNote: scoring.RiskNote(p),
			})
		}

		resp := response{Recommendations: scored, Message: ranked.Message}

		if req.AISummary && ai != nil && ai.Configured() && len(ranked.Pools) > 0 {
			prompt := llm.BuildAnalysisPrompt(goal, req.MinAPY, ranked.Pools)
			summary, err := ai.Complete(r.Context(), prompt, "")
			if err != nil {
				logger.Warn("ai summary failed, returning pools without it", "error", err)
			} else {
				resp.AISummary = summary
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
