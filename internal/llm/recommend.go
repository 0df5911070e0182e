package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/stacksfolio/yield-radar/internal/pool"
)

// Recommendation is one structured suggestion extracted from model output.
// APY and URL are pointers because the model frequently omits them.
type Recommendation struct {
	Title    string   `json:"title"`
	Platform string   `json:"platform"`
	APY      *float64 `json:"apy,omitempty"`
	URL      *string  `json:"url,omitempty"`
	Reason   string   `json:"reason"`
}

// BuildAnalysisPrompt asks for a short commentary on an already-ranked
// pool list. The pools arrive pre-scored; the model only explains them.
func BuildAnalysisPrompt(goal pool.Goal, minApy float64, pools []pool.Pool) string {
	var b strings.Builder
	b.WriteString("You are a DeFi analyst for the Stacks (Bitcoin L2) ecosystem.\n")
	fmt.Fprintf(&b, "The user's goal is %q with a minimum APY filter of %.1f%%.\n", goal, minApy)
	b.WriteString("Here are the candidate yield pools, best first:\n")
	for i, p := range pools {
		fmt.Fprintf(&b, "%d. %s on %s: %.2f%% APY, %s risk, $%.0f liquidity, $%.0f 24h volume\n",
			i+1, p.Name, p.Platform, p.APY, p.Risk, p.LiquidityUSD, p.Volume24hUSD)
	}
	b.WriteString("\nIn 3-4 sentences, explain which pools fit the goal and what the main risks are. ")
	b.WriteString("Do not invent pools that are not in the list. Plain text only.")
	return b.String()
}

// BuildWalletPrompt asks for pool recommendations given a wallet's token
// balances. The response is requested as strict JSON so it can be parsed
// into Recommendation values.
func BuildWalletPrompt(address string, balances map[string]float64, pools []pool.Pool) string {
	symbols := make([]string, 0, len(balances))
	for sym := range balances {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var b strings.Builder
	b.WriteString("You are a DeFi analyst for the Stacks (Bitcoin L2) ecosystem.\n")
	fmt.Fprintf(&b, "Wallet %s holds:\n", address)
	for _, sym := range symbols {
		fmt.Fprintf(&b, "- %s: %.6f\n", sym, balances[sym])
	}
	b.WriteString("\nAvailable yield pools:\n")
	for _, p := range pools {
		fmt.Fprintf(&b, "- %s on %s: %.2f%% APY, %s risk (%s)\n",
			p.Name, p.Platform, p.APY, p.Risk, p.URL)
	}
	b.WriteString("\nRecommend up to 3 pools this wallet could enter with its current tokens. ")
	b.WriteString(`Respond with ONLY a JSON array, no prose, where each element is `)
	b.WriteString(`{"title": string, "platform": string, "apy": number, "url": string, "reason": string}.`)
	return b.String()
}

// ParseRecommendations extracts structured suggestions from raw model
// output. Models do not always honor the JSON-only instruction, so a
// non-JSON reply is wrapped as a single free-text recommendation instead
// of being dropped.
func ParseRecommendations(raw string) []Recommendation {
	text := strings.TrimSpace(raw)

	// Models sometimes fence the JSON in markdown code blocks.
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			var recs []Recommendation
			if err := json.Unmarshal([]byte(text[start:end+1]), &recs); err == nil && len(recs) > 0 {
				return recs
			}
		}
	}

	return []Recommendation{{
		Title:    "AI Recommendation",
		Platform: "General",
		Reason:   raw,
	}}
}
