package collateral

// Policy holds the lending constants applied to a selection.
type Policy struct {
	// MaxLTV is the loan-to-value ceiling in percent.
	MaxLTV float64
	// InterestRate is the fixed annual rate in percent.
	InterestRate float64
}

// DefaultPolicy is the 60% LTV, 5.2% APR policy.
var DefaultPolicy = Policy{MaxLTV: 60, InterestRate: 5.2}

// Eligibility is derived from the current selection and never cached.
type Eligibility struct {
	TotalCollateral float64 `json:"total_collateral"`
	MaxLoanAmount   float64 `json:"max_loan_amount"`
	InterestRate    float64 `json:"interest_rate"`
	LTV             float64 `json:"ltv"`
}

// ComputeEligibility derives the maximum loan for the selection under p.
func ComputeEligibility(sel *Selector, p Policy) Eligibility {
	total := sel.TotalValue()
	return Eligibility{
		TotalCollateral: total,
		MaxLoanAmount:   total * p.MaxLTV / 100,
		InterestRate:    p.InterestRate,
		LTV:             p.MaxLTV,
	}
}

// SnapshotAsset is a by-value copy of one pledged asset.
type SnapshotAsset struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
	Value  float64 `json:"value"`
}

// Snapshot is what a loan application captures at submission time.
type Snapshot struct {
	TotalCollateral float64         `json:"total_collateral"`
	LoanAmount      float64         `json:"loan_amount"`
	InterestRate    float64         `json:"interest_rate"`
	LTV             float64         `json:"ltv"`
	SelectedAssets  []SnapshotAsset `json:"selected_assets"`
}

// BuildSnapshot copies the selection and its eligibility. The loan amount
// defaults to the maximum eligible amount.
func BuildSnapshot(sel *Selector, p Policy) Snapshot {
	e := ComputeEligibility(sel, p)
	entries := sel.Entries()

	assets := make([]SnapshotAsset, 0, len(entries))
	for _, entry := range entries {
		assets = append(assets, SnapshotAsset{
			Name:   entry.Asset.Name,
			Symbol: entry.Asset.Symbol,
			Amount: entry.Quantity,
			Value:  entry.Value(),
		})
	}

	return Snapshot{
		TotalCollateral: e.TotalCollateral,
		LoanAmount:      e.MaxLoanAmount,
		InterestRate:    e.InterestRate,
		LTV:             e.LTV,
		SelectedAssets:  assets,
	}
}
