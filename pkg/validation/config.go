package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-schedule/pkg/constants"
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
)

// ValidateLoanParameters returns warnings for parameters the engine accepts
// but quietly adjusts or treats as "no loan".
func ValidateLoanParameters(name string, params loans.LoanParameters, maxRows int) []string {
	var warnings []string

	if params.IsEmpty() {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has a non-positive principal or term - schedule will be empty", name))
		return warnings
	}

	if params.AnnualInterestRate < 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has a negative interest rate (%.2f%%)", name, params.AnnualInterestRate))
	}

	if params.MonthlyOverpayment < 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has a negative monthly overpayment (%.2f) - it will be treated as 0",
			name, params.MonthlyOverpayment))
	}

	if err := ValidateTerm(params); err != nil {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' %v - using %d months", name, err, params.TotalMonths()))
		return warnings
	}

	months := params.Years * constants.MonthsPerYear
	if math.Abs(months-math.Round(months)) > 1e-9 || months < 1 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' term of %g years is not a whole number of months - using %d months",
			name, params.Years, params.TotalMonths()))
	}

	if maxRows > 0 && params.TotalMonths() > maxRows {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' runs for %d months - only the first %d rows will be displayed",
			name, params.TotalMonths(), maxRows))
	}

	return warnings
}

// ValidateTerm returns an error when the term is longer than the engine
// simulates.
func ValidateTerm(params loans.LoanParameters) error {
	if params.Years > constants.MaxTermYears {
		return fmt.Errorf("term of %g years exceeds the maximum of %d years", params.Years, constants.MaxTermYears)
	}
	return nil
}

// ValidateCacheBackend checks if the cache backend is one of the supported backends.
func ValidateCacheBackend(backend string) error {
	switch backend {
	case constants.CacheBackendMemory, constants.CacheBackendRedis, constants.CacheBackendNone:
		return nil
	}
	return fmt.Errorf("expected cache backend of %s, %s or %s, got %s",
		constants.CacheBackendMemory, constants.CacheBackendRedis, constants.CacheBackendNone, backend)
}
