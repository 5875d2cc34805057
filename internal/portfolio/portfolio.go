// Package portfolio groups per-platform asset holdings into a unified,
// symbol-keyed view of a user's portfolio.
package portfolio

import "slices"

// AssetType represents the class of a held asset.
type AssetType string

const (
	AssetTypeCrypto     AssetType = "crypto"
	AssetTypeStock      AssetType = "stock"
	AssetTypeStablecoin AssetType = "stablecoin"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeCrypto, AssetTypeStock, AssetTypeStablecoin:
		return true
	}
	return false
}

// Holding is one position of one symbol on one platform.
type Holding struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Type      AssetType `json:"type"`
	Amount    float64   `json:"amount"`
	Price     float64   `json:"price"`
	Change24h float64   `json:"change_24h"`
	Platform  string    `json:"platform"`
}

// Value returns amount × price.
func (h Holding) Value() float64 {
	return h.Amount * h.Price
}

// AggregatedAsset is the sum of all holdings sharing a symbol.
// Price, Change24h, Name and Type come from the first holding seen.
type AggregatedAsset struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Type      AssetType `json:"type"`
	Amount    float64   `json:"amount"`
	Value     float64   `json:"value"`
	Price     float64   `json:"price"`
	Change24h float64   `json:"change_24h"`
	Platforms []string  `json:"platforms"`
}

// Aggregate groups holdings by exact symbol. Output order is the order in
// which each symbol first appears. The input slice is not modified.
func Aggregate(holdings []Holding) []AggregatedAsset {
	index := make(map[string]int, len(holdings))
	assets := make([]AggregatedAsset, 0, len(holdings))

	for _, h := range holdings {
		i, ok := index[h.Symbol]
		if !ok {
			index[h.Symbol] = len(assets)
			assets = append(assets, AggregatedAsset{
				Symbol:    h.Symbol,
				Name:      h.Name,
				Type:      h.Type,
				Amount:    h.Amount,
				Value:     h.Value(),
				Price:     h.Price,
				Change24h: h.Change24h,
				Platforms: []string{h.Platform},
			})
			continue
		}

		asset := &assets[i]
		asset.Amount += h.Amount
		asset.Value += h.Value()
		if !slices.Contains(asset.Platforms, h.Platform) {
			asset.Platforms = append(asset.Platforms, h.Platform)
		}
	}

	return assets
}

// Flatten turns aggregated assets back into one holding per symbol,
// attributed to the first contributing platform. The per-unit price is the
// aggregate value divided by the aggregate amount so that values survive a
// round trip through Aggregate.
func Flatten(assets []AggregatedAsset) []Holding {
	holdings := make([]Holding, 0, len(assets))
	for _, a := range assets {
		price := a.Price
		if a.Amount != 0 {
			price = a.Value / a.Amount
		}
		var platform string
		if len(a.Platforms) > 0 {
			platform = a.Platforms[0]
		}
		holdings = append(holdings, Holding{
			Symbol:    a.Symbol,
			Name:      a.Name,
			Type:      a.Type,
			Amount:    a.Amount,
			Price:     price,
			Change24h: a.Change24h,
			Platform:  platform,
		})
	}
	return holdings
}

// Filter returns the holdings of the given type, or all of them when t is empty.
func Filter(holdings []Holding, t AssetType) []Holding {
	if t == "" {
		return holdings
	}
	filtered := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.Type == t {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// Summary holds portfolio-wide totals.
type Summary struct {
	TotalValue float64 `json:"total_value"`
	// Change24h is the value-weighted 24h change across all assets, in percent.
	Change24h float64 `json:"change_24h"`
	Assets    int     `json:"assets"`
}

// Summarize computes totals over aggregated assets.
func Summarize(assets []AggregatedAsset) Summary {
	var total, weighted float64
	for _, a := range assets {
		total += a.Value
		weighted += a.Value * a.Change24h
	}

	s := Summary{TotalValue: total, Assets: len(assets)}
	if total != 0 {
		s.Change24h = weighted / total
	}
	return s
}
