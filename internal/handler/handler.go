// Package handler holds the HTTP endpoints. Each handler is a constructor
// taking its dependencies and returning an http.HandlerFunc, so routing
// stays in main and tests can inject fakes.
package handler

import (
	"context"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

// PoolAggregator supplies the current pool universe.
type PoolAggregator interface {
	Aggregate(ctx context.Context) []pool.Pool
}

// Completer produces model commentary. Configured reports whether a
// credential is present so handlers can skip the call entirely.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, prompt, model string) (string, error)
}

// ModelLister lists the model ids available to the configured key.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// BalanceFetcher reads token balances for a Stacks principal.
type BalanceFetcher interface {
	Balances(ctx context.Context, address string) (map[string]float64, error)
}
