package casfolio

import (
	"errors"
	"fmt"
	"math"
)

// Errors reported by the XIRR solver. Non-convergence is a distinct failure,
// never conflated with a zero return.
var (
	ErrNotEnoughCashflows = errors.New("at least two cashflows on two distinct dates are required")
	ErrNoConvergence      = errors.New("rate computation did not converge")
)

const (
	xirrGuess     = 0.1 // initial rate for the Newton iteration
	xirrTolerance = 1e-8
	xirrMaxIter   = 100
	// daysPerYear is an intentional simplification: leap years are ignored,
	// which is acceptable for fund-return reporting.
	daysPerYear = 365.0
)

// XIRR computes the annualized money-weighted return of an irregular, dated,
// signed cashflow series: the rate r such that
//
//	Σ amount_i / (1+r)^(days_i/365) = 0
//
// where days_i counts from the earliest cashflow date. Solved by
// Newton-Raphson from a 10% guess. The result is in percent points
// (10.0 means 10%), the module-wide rate convention.
//
// Fewer than two cashflows, or all cashflows on a single date, is a
// precondition violation reported as ErrNotEnoughCashflows before solving.
func XIRR(flows []Cashflow) (Percent, error) {
	if len(flows) < 2 {
		return 0, fmt.Errorf("got %d cashflows: %w", len(flows), ErrNotEnoughCashflows)
	}
	start := flows[0].Date
	for _, f := range flows {
		if f.Date.Before(start) {
			start = f.Date
		}
	}
	distinct := false
	for _, f := range flows {
		if f.Date != start {
			distinct = true
			break
		}
	}
	if !distinct {
		return 0, fmt.Errorf("all cashflows dated %s: %w", start, ErrNotEnoughCashflows)
	}

	// Precompute year fractions once, the iteration only varies the rate.
	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = float64(f.Date.Days(start)) / daysPerYear
	}

	npv := func(rate float64) (value, derivative float64) {
		for i, f := range flows {
			base := 1 + rate
			value += f.Amount * math.Pow(base, -years[i])
			derivative -= f.Amount * years[i] * math.Pow(base, -years[i]-1)
		}
		return value, derivative
	}

	rate := xirrGuess
	for i := 0; i < xirrMaxIter; i++ {
		value, derivative := npv(rate)
		if math.Abs(value) < xirrTolerance {
			return Percent(rate * 100), nil
		}
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			return 0, ErrNoConvergence
		}
		next := rate - value/derivative
		if next <= -1 {
			// Discounting is undefined at or below -100%; halve the step
			// towards the boundary instead of crossing it.
			next = (rate - 1) / 2
		}
		if math.Abs(next-rate) < xirrTolerance {
			rate = next
			if v, _ := npv(rate); math.Abs(v) < 1e-4 {
				return Percent(rate * 100), nil
			}
			return 0, ErrNoConvergence
		}
		rate = next
	}
	return 0, ErrNoConvergence
}

// GetXIRR is the canonical transaction-level wrapper: it extracts the dated
// signed amounts and solves for the rate.
func GetXIRR(txns []Transaction) (Percent, error) {
	return XIRR(CashflowsOf(txns))
}
