// Package loans provides the amortization schedule engine: the closed-form
// instalment calculation, the month-by-month schedule simulation, and the
// summary figures derived from a schedule.
package loans

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-schedule/pkg/constants"
)

// Mode selects how principal is amortized over the life of the loan.
type Mode int

const (
	// ModeAnnuity holds the total instalment fixed; the principal share grows
	// as the balance and therefore the interest shrink.
	ModeAnnuity Mode = iota
	// ModeFalling holds the principal component fixed; the total instalment
	// decreases over time.
	ModeFalling
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m == ModeFalling {
		return constants.ModeFalling
	}
	return constants.ModeAnnuity
}

// ParseMode converts a mode name into a Mode. An empty name is an annuity.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.ModeAnnuity:
		return ModeAnnuity, nil
	case constants.ModeFalling:
		return ModeFalling, nil
	default:
		return ModeAnnuity, fmt.Errorf("expected schedule mode of %s or %s, got %s",
			constants.ModeAnnuity, constants.ModeFalling, value)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// LoanParameters holds the inputs of a single schedule computation.
type LoanParameters struct {
	Principal          float64 `json:"principal" yaml:"principal"`
	AnnualInterestRate float64 `json:"annualInterestRate" yaml:"annualInterestRate"` // percent, 6.5 means 6.5%/yr
	Years              float64 `json:"years" yaml:"years"`
	MonthlyOverpayment float64 `json:"monthlyOverpayment,omitempty" yaml:"monthlyOverpayment,omitempty"`
	Mode               Mode    `json:"mode" yaml:"mode"`
}

// TotalMonths converts the term into whole months, never less than one and
// never more than constants.MaxTermMonths.
func (p LoanParameters) TotalMonths() int {
	months := math.Round(p.Years * constants.MonthsPerYear)
	switch {
	case !(months >= 1):
		return 1
	case months > constants.MaxTermMonths:
		return constants.MaxTermMonths
	}
	return int(months)
}

// MonthlyRate returns the periodic (monthly) interest rate as a fraction.
func (p LoanParameters) MonthlyRate() float64 {
	return MonthlyRate(p.AnnualInterestRate)
}

// Overpayment returns the configured monthly overpayment with negative values
// clamped to zero.
func (p LoanParameters) Overpayment() float64 {
	return math.Max(p.MonthlyOverpayment, 0)
}

// IsEmpty reports whether the parameters describe no loan at all.
func (p LoanParameters) IsEmpty() bool {
	return !(p.Principal > 0) || !(p.Years > 0)
}

// AmortizationRow holds the values for a given month of the schedule.
type AmortizationRow struct {
	ID               string  `json:"id"`
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	Overpayment      float64 `json:"overpayment"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// Capital returns the part of the payment that reduced the balance.
func (r AmortizationRow) Capital() float64 {
	return r.Principal + r.Overpayment
}

// FirstPaymentBreakdown splits the first payment of a schedule.
type FirstPaymentBreakdown struct {
	Interest    float64 `json:"interest"`
	Capital     float64 `json:"capital"`
	Overpayment float64 `json:"overpayment"`
}

// LoanComputationResult is the outcome of one schedule computation.
type LoanComputationResult struct {
	MonthlyPayment        float64                `json:"monthlyPayment"`
	ActualFirstPayment    float64                `json:"actualFirstPayment"`
	FirstPaymentBreakdown *FirstPaymentBreakdown `json:"firstPaymentBreakdown"`
	TotalInterestPaid     float64                `json:"totalInterestPaid"`
	TotalPaid             float64                `json:"totalPaid"`
	PayoffMonths          int                    `json:"payoffMonths"`
	Schedule              []AmortizationRow      `json:"schedule"`
	// Truncated is set when the iteration cap ended the simulation before
	// the balance was paid off.
	Truncated bool `json:"truncated,omitempty"`
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / constants.MonthsPerYear / constants.PercentageMultiplier
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula. A non-positive principal or term yields 0.
func CalculateMonthlyPayment(principal, annualInterestRate float64, totalMonths int) float64 {
	if !(principal > 0) || totalMonths <= 0 {
		return 0
	}

	monthlyRate := MonthlyRate(annualInterestRate)
	if monthlyRate == 0 {
		return principal / float64(totalMonths)
	}

	factor := math.Pow(1+monthlyRate, float64(totalMonths))
	return principal * monthlyRate * factor / (factor - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, monthlyRate float64) float64 {
	if monthlyRate == 0 {
		return 0
	}
	return remainingPrincipal * monthlyRate
}
