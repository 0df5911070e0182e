package handler

import (
	"encoding/json"
	"net/http"

	"github.com/stacksfolio/yield-radar/internal/price"
)

// STXPrice serves the resolved STX/USD price. The resolver never errors;
// the source field tells the caller how fresh the number is.
func STXPrice(resolver *price.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := resolver.Resolve(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}
