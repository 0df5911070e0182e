// Package wallet reads Stacks address balances from the Hiro API.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DefaultHiroBase = "https://api.hiro.so"

// Stacks addresses are c32check encoded, SP/SM mainnet or ST testnet.
var addressPattern = regexp.MustCompile(`^S[PTM][0-9A-Z]{38,40}$`)

// ValidAddress reports whether addr looks like a Stacks principal.
func ValidAddress(addr string) bool {
	return addressPattern.MatchString(addr)
}

// Client fetches token balances for a Stacks principal.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultHiroBase
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type balancesResponse struct {
	STX struct {
		Balance string `json:"balance"`
	} `json:"stx"`
	FungibleTokens map[string]struct {
		Balance string `json:"balance"`
	} `json:"fungible_tokens"`
}

// Balances returns a symbol to amount map for the address. Amounts are
// scaled from micro-units assuming 6 decimals, which holds for STX and
// the common Stacks SIP-010 tokens the dashboard cares about.
func (c *Client) Balances(ctx context.Context, address string) (map[string]float64, error) {
	if !ValidAddress(address) {
		return nil, fmt.Errorf("invalid stacks address: %q", address)
	}

	url := fmt.Sprintf("%s/extended/v1/address/%s/balances", c.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build balances request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hiro balances: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return map[string]float64{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hiro balances status: %d", resp.StatusCode)
	}

	var parsed balancesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode hiro balances: %w", err)
	}

	out := make(map[string]float64)
	if v, err := strconv.ParseFloat(parsed.STX.Balance, 64); err == nil && v > 0 {
		out["STX"] = v / 1e6
	}
	for asset, tok := range parsed.FungibleTokens {
		v, err := strconv.ParseFloat(tok.Balance, 64)
		if err != nil || v <= 0 {
			continue
		}
		out[tokenSymbol(asset)] = v / 1e6
	}
	return out, nil
}

// tokenSymbol extracts the asset name from a fully qualified identifier
// like "SP...contract-name::token-name".
func tokenSymbol(assetID string) string {
	if i := strings.LastIndex(assetID, "::"); i >= 0 {
		return assetID[i+2:]
	}
	return assetID
}
