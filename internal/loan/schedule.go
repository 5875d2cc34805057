package loan

import (
	"errors"
	"math"
)

// MaxTermMonths is the longest term a schedule can be built for.
const MaxTermMonths = 360

var (
	ErrInvalidPrincipal = errors.New("principal must be a non-negative number")
	ErrInvalidRate      = errors.New("annual rate must be a non-negative number")
	ErrInvalidTerm      = errors.New("term must be between 1 and 360 months")
	ErrOutOfRange       = errors.New("loan terms produce amounts out of range")
)

// Row is one month of an amortization schedule.
type Row struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Amortization is a fixed-payment repayment plan.
type Amortization struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPayment   float64 `json:"total_payment"`
	Rows           []Row   `json:"rows"`
}

// MonthlyPayment returns the annuity payment for the given terms. A zero
// rate degenerates to principal / term.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return principal / float64(termMonths)
	}
	growth := math.Pow(1+r, float64(termMonths))
	return principal * r * growth / (growth - 1)
}

// Schedule builds a month-by-month annuity schedule. Each row's payment is
// its principal plus interest; the running balance is floored at zero.
func Schedule(principal, annualRatePercent float64, termMonths int) (*Amortization, error) {
	if math.IsNaN(principal) || math.IsInf(principal, 0) || principal < 0 {
		return nil, ErrInvalidPrincipal
	}
	if math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) || annualRatePercent < 0 {
		return nil, ErrInvalidRate
	}
	if termMonths < 1 || termMonths > MaxTermMonths {
		return nil, ErrInvalidTerm
	}

	monthlyRate := annualRatePercent / 100 / 12
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)
	if !finite(payment) {
		return nil, ErrOutOfRange
	}

	a := &Amortization{
		Principal:      principal,
		AnnualRate:     annualRatePercent,
		TermMonths:     termMonths,
		MonthlyPayment: payment,
		Rows:           make([]Row, 0, termMonths),
	}

	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := balance * monthlyRate
		principalPortion := payment - interest
		balance = math.Max(0, balance-principalPortion)

		a.Rows = append(a.Rows, Row{
			Month:     month,
			Payment:   payment,
			Principal: principalPortion,
			Interest:  interest,
			Balance:   balance,
		})
		a.TotalInterest += interest
	}
	a.TotalPayment = payment * float64(termMonths)
	if !finite(a.TotalPayment) || !finite(a.TotalInterest) {
		return nil, ErrOutOfRange
	}

	return a, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
