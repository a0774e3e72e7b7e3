package loans

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iwvelando/mortgage-schedule/pkg/constants"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		totalMonths        int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          580000,
			annualInterestRate: 6.0,
			totalMonths:        360,
			expectedRange:      []float64{3477.39, 3477.40}, // Around 3477.39
		},
		{
			name:               "5-year car loan",
			principal:          20000,
			annualInterestRate: 4.0,
			totalMonths:        60,
			expectedRange:      []float64{368, 369}, // Around 368.33
		},
		{
			name:               "Zero interest loan",
			principal:          120000,
			annualInterestRate: 0.0,
			totalMonths:        120,
			expectedRange:      []float64{1000, 1000},
		},
		{
			name:               "Zero principal",
			principal:          0,
			annualInterestRate: 5.0,
			totalMonths:        60,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Negative principal",
			principal:          -1000,
			annualInterestRate: 5.0,
			totalMonths:        60,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Zero term",
			principal:          10000,
			annualInterestRate: 5.0,
			totalMonths:        0,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "High interest loan",
			principal:          10000,
			annualInterestRate: 18.0,
			totalMonths:        36,
			expectedRange:      []float64{361, 362}, // Around 361.52
		},
		{
			name:               "Single month",
			principal:          10000,
			annualInterestRate: 12.0,
			totalMonths:        1,
			expectedRange:      []float64{10100, 10100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.totalMonths)

			if result < tt.expectedRange[0]-1e-9 || result > tt.expectedRange[1]+1e-9 {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{"Standard mortgage interest", 580000, 6.0, 2900.0},
		{"Car loan interest", 15000, 4.5, 56.25},
		{"Zero interest", 10000, 0.0, 0.0},
		{"High interest", 5000, 24.0, 100.0},
		{"Very small principal", 100, 6.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, MonthlyRate(tt.annualInterestRate))

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestTotalMonths(t *testing.T) {
	tests := []struct {
		name     string
		years    float64
		expected int
	}{
		{"Whole years", 30, 360},
		{"Half year", 0.5, 6},
		{"Rounds to nearest month", 1.04, 12},
		{"Rounds up", 1.05, 13},
		{"Tiny term floors at one month", 0.01, 1},
		{"Longest supported term", 1000, 12000},
		{"Huge term is clamped", 1e13, constants.MaxTermMonths},
		{"Infinite term is clamped", math.Inf(1), constants.MaxTermMonths},
		{"NaN term floors at one month", math.NaN(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := LoanParameters{Principal: 1000, Years: tt.years}
			if got := params.TotalMonths(); got != tt.expected {
				t.Errorf("TotalMonths() for %v years = %d, expected %d", tt.years, got, tt.expected)
			}
		})
	}
}

func TestOverpaymentClampsNegative(t *testing.T) {
	if got := (LoanParameters{MonthlyOverpayment: -250}).Overpayment(); got != 0 {
		t.Errorf("Overpayment() = %v, expected 0", got)
	}
	if got := (LoanParameters{MonthlyOverpayment: 250}).Overpayment(); got != 250 {
		t.Errorf("Overpayment() = %v, expected 250", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input     string
		expected  Mode
		expectErr bool
	}{
		{"", ModeAnnuity, false},
		{"annuity", ModeAnnuity, false},
		{"Falling", ModeFalling, false},
		{" falling ", ModeFalling, false},
		{"decreasing", ModeAnnuity, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if (err != nil) != tt.expectErr {
				t.Fatalf("ParseMode(%q) error = %v, expectErr %v", tt.input, err, tt.expectErr)
			}
			if mode != tt.expected {
				t.Errorf("ParseMode(%q) = %v, expected %v", tt.input, mode, tt.expected)
			}
		})
	}
}

func TestModeJSON(t *testing.T) {
	var params LoanParameters
	if err := json.Unmarshal([]byte(`{"principal":1000,"years":1,"mode":"falling"}`), &params); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if params.Mode != ModeFalling {
		t.Fatalf("expected falling mode, got %v", params.Mode)
	}

	data, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["mode"] != "falling" {
		t.Errorf("expected mode to encode as falling, got %v", decoded["mode"])
	}

	if err := json.Unmarshal([]byte(`{"mode":"balloon"}`), &params); err == nil {
		t.Error("expected error for unknown mode")
	}
}
