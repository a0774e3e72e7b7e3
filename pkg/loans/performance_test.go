package loans

import (
	"sync"
	"testing"
	"time"
)

func BenchmarkGenerateAnnuity(b *testing.B) {
	params := LoanParameters{Principal: 580000, AnnualInterestRate: 6, Years: 30}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GenerateAmortizationSchedule(params)
	}
}

func BenchmarkGenerateFallingWithOverpayment(b *testing.B) {
	params := LoanParameters{Principal: 580000, AnnualInterestRate: 6, Years: 30, MonthlyOverpayment: 1000, Mode: ModeFalling}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GenerateAmortizationSchedule(params)
	}
}

func BenchmarkCalculateMonthlyPayment(b *testing.B) {
	for i := 0; i < b.N; i++ {
		CalculateMonthlyPayment(580000, 6, 360)
	}
}

// TestConcurrentGeneration runs the engine from many goroutines and checks
// every call sees the same result.
func TestConcurrentGeneration(t *testing.T) {
	params := LoanParameters{Principal: 250000, AnnualInterestRate: 7.1, Years: 25, MonthlyOverpayment: 250}
	expected := GenerateAmortizationSchedule(params)

	const workers = 32
	var wg sync.WaitGroup
	results := make([]LoanComputationResult, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GenerateAmortizationSchedule(params)
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		if result.TotalInterestPaid != expected.TotalInterestPaid || len(result.Schedule) != len(expected.Schedule) {
			t.Fatalf("worker %d diverged: %.2f/%d vs %.2f/%d", i,
				result.TotalInterestPaid, len(result.Schedule), expected.TotalInterestPaid, len(expected.Schedule))
		}
		for j := range result.Schedule {
			if result.Schedule[j] != expected.Schedule[j] {
				t.Fatalf("worker %d row %d differs: %+v vs %+v", i, j, result.Schedule[j], expected.Schedule[j])
			}
		}
	}
}

func TestLongTermPerformance(t *testing.T) {
	start := time.Now()
	result := GenerateAmortizationSchedule(LoanParameters{Principal: 1000000, AnnualInterestRate: 3, Years: 100})
	elapsed := time.Since(start)

	if result.PayoffMonths < 1200 {
		t.Errorf("expected at least 1200 months, got %d", result.PayoffMonths)
	}
	if elapsed > time.Second {
		t.Errorf("generating a 100 year schedule took %v", elapsed)
	}
}
