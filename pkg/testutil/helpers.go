// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/mortgage-schedule/internal/schedule"
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"github.com/iwvelando/mortgage-schedule/pkg/mathutil"
)

// rowSumTolerance absorbs float error when adding three rounded amounts.
const rowSumTolerance = 1e-6

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the schedule if found, nil otherwise.
func FindScenario(results []schedule.Schedule, name string) *schedule.Schedule {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// CheckScheduleInvariants fails t when a computed result breaks the row
// arithmetic, balance ordering or payoff rules.
func CheckScheduleInvariants(t testing.TB, params loans.LoanParameters, result loans.LoanComputationResult) {
	t.Helper()

	if params.IsEmpty() {
		if len(result.Schedule) != 0 || result.FirstPaymentBreakdown != nil {
			t.Errorf("expected empty result for %+v", params)
		}
		return
	}

	if len(result.Schedule) == 0 {
		t.Fatalf("expected schedule rows for %+v", params)
	}
	if result.PayoffMonths != len(result.Schedule) {
		t.Errorf("PayoffMonths = %d, schedule has %d rows", result.PayoffMonths, len(result.Schedule))
	}

	previous := params.Principal
	for i, row := range result.Schedule {
		if row.Month != i+1 {
			t.Fatalf("row %d has month %d", i, row.Month)
		}
		if !mathutil.WithinTolerance(row.Payment, row.Interest+row.Principal+row.Overpayment, rowSumTolerance) {
			t.Errorf("month %d components do not add up to %.2f", row.Month, row.Payment)
		}
		if row.RemainingBalance > previous {
			t.Errorf("month %d balance %.2f increased from %.2f", row.Month, row.RemainingBalance, previous)
		}
		previous = row.RemainingBalance
	}

	if !result.Truncated && result.Schedule[len(result.Schedule)-1].RemainingBalance != 0 {
		t.Errorf("final balance = %.2f, expected 0", result.Schedule[len(result.Schedule)-1].RemainingBalance)
	}
}
