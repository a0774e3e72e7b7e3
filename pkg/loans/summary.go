package loans

import (
	"github.com/iwvelando/mortgage-schedule/pkg/constants"
	"github.com/iwvelando/mortgage-schedule/pkg/mathutil"
)

// Savings describes how much a schedule saves against a baseline schedule.
type Savings struct {
	InterestSaved float64 `json:"interestSaved"`
	PaidSaved     float64 `json:"paidSaved"`
	MonthsSaved   int     `json:"monthsSaved"`
}

// summarize reduces a finished simulation into the result record. The
// instalment without overpayment is rebuilt from the first row rather than
// recomputed so it always matches what the schedule shows.
func summarize(acc *accumulator) LoanComputationResult {
	result := LoanComputationResult{
		TotalInterestPaid: mathutil.Round(acc.totalInterestPaid),
		TotalPaid:         mathutil.Round(acc.totalPaid),
		PayoffMonths:      len(acc.schedule),
		Schedule:          acc.schedule,
		Truncated:         mathutil.IsPositive(acc.balance),
	}

	if len(acc.schedule) == 0 {
		return result
	}

	first := acc.schedule[0]
	result.MonthlyPayment = mathutil.Round(first.Payment - first.Overpayment)
	result.ActualFirstPayment = mathutil.Round(first.Payment)
	result.FirstPaymentBreakdown = &FirstPaymentBreakdown{
		Interest:    mathutil.Round(first.Interest),
		Capital:     mathutil.Round(first.Principal + first.Overpayment),
		Overpayment: mathutil.Round(first.Overpayment),
	}
	return result
}

// Baseline returns params without any overpayment.
func Baseline(params LoanParameters) LoanParameters {
	params.MonthlyOverpayment = 0
	return params
}

// Compare reports what result saves relative to baseline. Positive values
// mean result is cheaper or shorter.
func Compare(baseline, result LoanComputationResult) Savings {
	return Savings{
		InterestSaved: mathutil.Round(baseline.TotalInterestPaid - result.TotalInterestPaid),
		PaidSaved:     mathutil.Round(baseline.TotalPaid - result.TotalPaid),
		MonthsSaved:   baseline.PayoffMonths - result.PayoffMonths,
	}
}

// PayoffDuration splits a month count into whole years and remaining months.
func PayoffDuration(months int) (years, remainder int) {
	if months <= 0 {
		return 0, 0
	}
	return months / constants.MonthsPerYear, months % constants.MonthsPerYear
}
