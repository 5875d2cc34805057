package portfolio

import "strconv"

// Divergence reports a holding whose metadata differs from the representative
// (first-seen) holding of the same symbol. Aggregate keeps the representative
// value; divergences are surfaced to callers rather than reconciled.
type Divergence struct {
	Symbol         string `json:"symbol"`
	Field          string `json:"field"`
	Platform       string `json:"platform"`
	Representative string `json:"representative"`
	Observed       string `json:"observed"`
}

// Divergences lists every holding whose price, name or type disagrees with
// the first holding seen for its symbol.
func Divergences(holdings []Holding) []Divergence {
	first := make(map[string]Holding, len(holdings))
	var out []Divergence

	for _, h := range holdings {
		rep, ok := first[h.Symbol]
		if !ok {
			first[h.Symbol] = h
			continue
		}

		if h.Price != rep.Price {
			out = append(out, Divergence{
				Symbol:         h.Symbol,
				Field:          "price",
				Platform:       h.Platform,
				Representative: formatFloat(rep.Price),
				Observed:       formatFloat(h.Price),
			})
		}
		if h.Name != rep.Name {
			out = append(out, Divergence{
				Symbol:         h.Symbol,
				Field:          "name",
				Platform:       h.Platform,
				Representative: rep.Name,
				Observed:       h.Name,
			})
		}
		if h.Type != rep.Type {
			out = append(out, Divergence{
				Symbol:         h.Symbol,
				Field:          "type",
				Platform:       h.Platform,
				Representative: string(rep.Type),
				Observed:       string(h.Type),
			})
		}
	}

	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
