package config

import (
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
)

// LoanParameters merges the scenario over the common defaults and converts
// the result into engine parameters. Unset numbers default to 0.
func (c *Configuration) LoanParameters(scenario Scenario) (loans.LoanParameters, error) {
	merged := c.Common.Merge(scenario.Loan)
	return merged.ToLoanParameters()
}

// Merge returns a copy of loan with every field set in override replaced.
func (loan Loan) Merge(override Loan) Loan {
	if override.Principal != nil {
		loan.Principal = override.Principal
	}
	if override.AnnualInterestRate != nil {
		loan.AnnualInterestRate = override.AnnualInterestRate
	}
	if override.Years != nil {
		loan.Years = override.Years
	}
	if override.MonthlyOverpayment != nil {
		loan.MonthlyOverpayment = override.MonthlyOverpayment
	}
	if override.Mode != nil {
		loan.Mode = override.Mode
	}
	return loan
}

// ToLoanParameters converts the config representation into engine parameters.
func (loan Loan) ToLoanParameters() (loans.LoanParameters, error) {
	var mode string
	if loan.Mode != nil {
		mode = *loan.Mode
	}
	parsedMode, err := loans.ParseMode(mode)
	if err != nil {
		return loans.LoanParameters{}, err
	}

	return loans.LoanParameters{
		Principal:          valueOf(loan.Principal),
		AnnualInterestRate: valueOf(loan.AnnualInterestRate),
		Years:              valueOf(loan.Years),
		MonthlyOverpayment: valueOf(loan.MonthlyOverpayment),
		Mode:               parsedMode,
	}, nil
}

// FromLoanParameters converts engine parameters into a fully populated Loan.
func FromLoanParameters(params loans.LoanParameters) Loan {
	mode := params.Mode.String()
	return Loan{
		Principal:          float64Ptr(params.Principal),
		AnnualInterestRate: float64Ptr(params.AnnualInterestRate),
		Years:              float64Ptr(params.Years),
		MonthlyOverpayment: float64Ptr(params.MonthlyOverpayment),
		Mode:               &mode,
	}
}

func valueOf(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func float64Ptr(value float64) *float64 {
	return &value
}
