// Package rank applies the minimum-APY threshold, orders pools by score and
// truncates to the requested limit, relaxing the threshold rather than
// returning an empty result when nothing matches.
package rank

import (
	"fmt"
	"sort"

	"github.com/stacksfolio/yield-radar/internal/pool"
	"github.com/stacksfolio/yield-radar/internal/scoring"
)

// Limit bounds for the result size.
const (
	MinLimit     = 1
	MaxLimit     = 10
	DefaultLimit = 6
)

// Result is a ranked, size-capped pool list plus a status message telling
// the caller whether the threshold held or was relaxed.
type Result struct {
	Pools   []pool.Pool
	Message string
}

// Rank filters pools by minApy, sorts the survivors by score for the goal
// and truncates to limit. When the threshold eliminates everything, the
// full set is ranked instead and the message says so. Never fails: empty
// input yields an empty result with an explanatory message.
func Rank(pools []pool.Pool, goal pool.Goal, minApy float64, limit int) Result {
	minApy = clampMinAPY(minApy)
	limit = clampLimit(limit)

	if len(pools) == 0 {
		return Result{
			Pools:   []pool.Pool{},
			Message: "No pool data is currently available. Please try again shortly.",
		}
	}

	filtered := make([]pool.Pool, 0, len(pools))
	for _, p := range pools {
		if p.APY >= minApy {
			filtered = append(filtered, p)
		}
	}

	if len(filtered) > 0 {
		sortByScore(filtered, goal)
		return Result{
			Pools:   truncate(filtered, limit),
			Message: fmt.Sprintf("Showing pools with APY ≥ %.1f%%.", minApy),
		}
	}

	relaxed := make([]pool.Pool, len(pools))
	copy(relaxed, pools)
	sortByScore(relaxed, goal)
	relaxed = truncate(relaxed, limit)
	return Result{
		Pools: relaxed,
		Message: fmt.Sprintf("No pools matched your APY ≥ %.1f%% filter — showing top %d pools instead.",
			minApy, len(relaxed)),
	}
}

// sortByScore orders pools descending by score with deterministic
// tie-breaks: higher APY first, then lexical id.
func sortByScore(pools []pool.Pool, goal pool.Goal) {
	sort.SliceStable(pools, func(i, j int) bool {
		si, sj := scoring.Score(pools[i], goal), scoring.Score(pools[j], goal)
		if si != sj {
			return si > sj
		}
		if pools[i].APY != pools[j].APY {
			return pools[i].APY > pools[j].APY
		}
		return pools[i].ID < pools[j].ID
	})
}

func truncate(pools []pool.Pool, limit int) []pool.Pool {
	if len(pools) > limit {
		return pools[:limit]
	}
	return pools
}

func clampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func clampMinAPY(minApy float64) float64 {
	if minApy < 0 || minApy != minApy { // NaN guard
		return 0
	}
	if minApy > 100 {
		return 100
	}
	return minApy
}
