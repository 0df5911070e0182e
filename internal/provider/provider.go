// Package provider holds one adapter per upstream Stacks DeFi protocol.
// Each adapter fetches raw pool or ticker data and normalizes it into the
// common pool.Pool shape; upstream field names never escape this package.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

const (
	// fetchTimeout bounds every upstream HTTP call; a timeout is treated
	// like any other fetch failure.
	fetchTimeout = 10 * time.Second

	// maxPoolsPerProvider caps how many pools one upstream may contribute.
	maxPoolsPerProvider = 50
)

// Provider is the adapter contract. Fetch may return an error; the
// aggregator converts failures into an absent contribution, never a crash.
type Provider interface {
	// Name returns the platform slug used in pool ids, e.g. "alex".
	Name() string

	// Platform returns the display name, e.g. "ALEX".
	Platform() string

	// Fetch retrieves and normalizes the provider's current pools.
	Fetch(ctx context.Context) ([]pool.Pool, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// getJSON fetches url and decodes the response body into v.
func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// flexFloat tolerates the numeric sloppiness of upstream ticker APIs:
// numbers, quoted numbers, placeholder strings like "--", null and missing
// fields all decode without error; anything non-numeric reads as 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

func (f flexFloat) Float() float64 { return float64(f) }

// slugify lowercases a pair label into an id-safe token, e.g.
// "STX/USDA" -> "stx-usda".
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			if n := b.Len(); n > 0 && b.String()[n-1] != '-' {
				b.WriteByte('-')
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func capPools(pools []pool.Pool) []pool.Pool {
	if len(pools) > maxPoolsPerProvider {
		return pools[:maxPoolsPerProvider]
	}
	return pools
}
