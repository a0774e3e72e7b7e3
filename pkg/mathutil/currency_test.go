package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Half cent rounds up", 0.125, 0.13},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Instalment", 3477.4839, 3477.48},
		{"Negative half cent rounds away from zero", -0.125, -0.13},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Sub cent positive", 0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large balance", 579999.996, 580000.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Residual balance", 0.004, true},
		{"Negative residual", -0.004, true},
		{"Exactly tolerance", 0.01, true},
		{"Two cents", 0.02, false},
		{"Outstanding balance", 1500.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsPositive(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Overpayment", 1000.0, true},
		{"Just above tolerance", 0.011, true},
		{"Exactly tolerance", 0.01, false},
		{"Zero", 0.0, false},
		{"Negative", -1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsPositive(tt.input); result != tt.expected {
				t.Errorf("IsPositive(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1000.0, 1000.0, 0.01, true},
		{"One cent apart", 1000.0, 1000.01, 0.011, true},
		{"Outside tolerance", 1000.0, 1000.05, 0.01, false},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Regular value", 6.5, true},
		{"Zero", 0, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsFinite(tt.input); result != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(1000, 250.5); got != 250.5 {
		t.Errorf("Min(1000, 250.5) = %v, expected 250.5", got)
	}
	if got := Max(-12.5, 0); got != 0 {
		t.Errorf("Max(-12.5, 0) = %v, expected 0", got)
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Interest share", 2900.0, 3477.48, 83.3937},
		{"Whole", 100.0, 100.0, 100.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Zero value", 0.0, 100.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}
