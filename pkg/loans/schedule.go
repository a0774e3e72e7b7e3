package loans

import (
	"fmt"

	"github.com/iwvelando/mortgage-schedule/pkg/constants"
	"github.com/iwvelando/mortgage-schedule/pkg/mathutil"
	"go.uber.org/zap"
)

// principalPolicy returns the scheduled principal for a month given the
// balance before payment and that month's interest.
type principalPolicy func(balance, interest float64) float64

// accumulator carries the running state of one simulation.
type accumulator struct {
	mode              Mode
	balance           float64
	month             int
	totalInterestPaid float64
	totalPaid         float64
	schedule          []AmortizationRow
}

// ScheduleGenerator provides utilities for generating loan amortization schedules
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

var defaultGenerator = NewScheduleGenerator(nil)

// GenerateAmortizationSchedule computes the full schedule and summary for
// params without logging.
func GenerateAmortizationSchedule(params LoanParameters) LoanComputationResult {
	return defaultGenerator.Generate(params)
}

// Generate computes the full schedule and summary for params. Degenerate
// parameters (no principal or no term) yield an empty result.
func (g *ScheduleGenerator) Generate(params LoanParameters) LoanComputationResult {
	if params.IsEmpty() {
		g.logger.Debug("empty loan parameters, returning empty schedule",
			zap.String("op", "loans.Generate"),
			zap.Float64("principal", params.Principal),
			zap.Float64("years", params.Years),
		)
		return LoanComputationResult{Schedule: []AmortizationRow{}}
	}

	totalMonths := params.TotalMonths()
	monthlyRate := params.MonthlyRate()

	var policy principalPolicy
	switch params.Mode {
	case ModeFalling:
		policy = fallingPolicy(params.Principal / float64(totalMonths))
	default:
		minPayment := mathutil.Round(CalculateMonthlyPayment(params.Principal, params.AnnualInterestRate, totalMonths))
		policy = annuityPolicy(minPayment, monthlyRate)
	}

	acc := simulate(params.Mode, params.Principal, monthlyRate, params.Overpayment(), safetyCapFor(totalMonths), policy)

	result := summarize(acc)
	if result.Truncated {
		g.logger.Warn(fmt.Sprintf("schedule stopped after %d months with %.2f outstanding", acc.month, acc.balance),
			zap.String("op", "loans.Generate"),
			zap.String("mode", params.Mode.String()),
			zap.Int("totalMonths", totalMonths),
		)
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.Generate"),
		zap.String("mode", params.Mode.String()),
		zap.Int("totalMonths", totalMonths),
		zap.Int("payoffMonths", result.PayoffMonths),
		zap.Float64("totalInterestPaid", result.TotalInterestPaid),
	)
	return result
}

// annuityPolicy pays whatever part of the fixed instalment the interest leaves
// over. Without interest the whole instalment is principal.
func annuityPolicy(minPayment, monthlyRate float64) principalPolicy {
	return func(_, interest float64) float64 {
		if monthlyRate == 0 {
			return minPayment
		}
		return mathutil.Max(minPayment-interest, 0)
	}
}

// fallingPolicy pays a constant principal, capped at the balance.
func fallingPolicy(basePrincipal float64) principalPolicy {
	return func(balance, _ float64) float64 {
		return mathutil.Min(basePrincipal, balance)
	}
}

func safetyCapFor(totalMonths int) int {
	return totalMonths*2 + constants.ExtraIterationsGuard
}

func simulate(mode Mode, principal, monthlyRate, overpayment float64, safetyCap int, policy principalPolicy) *accumulator {
	acc := &accumulator{
		mode:     mode,
		balance:  principal,
		schedule: make([]AmortizationRow, 0, min(safetyCap, constants.InitialScheduleCapacity)),
	}

	for mathutil.IsPositive(acc.balance) && acc.month < safetyCap {
		acc.step(monthlyRate, overpayment, policy)
	}
	return acc
}

// step simulates one month and appends its row.
func (acc *accumulator) step(monthlyRate, overpayment float64, policy principalPolicy) {
	acc.month++

	interestPayment := CalculateInterestPayment(acc.balance, monthlyRate)
	principalPayment := policy(acc.balance, interestPayment)

	appliedOverpayment := overpayment
	totalPrincipal := principalPayment + appliedOverpayment

	// The overpayment absorbs any excess first so nothing carries over.
	if totalPrincipal > acc.balance {
		excess := totalPrincipal - acc.balance
		appliedOverpayment = mathutil.Max(appliedOverpayment-excess, 0)
		totalPrincipal = acc.balance
		principalPayment = totalPrincipal - appliedOverpayment
	}

	totalPayment := interestPayment + totalPrincipal
	acc.balance = mathutil.Max(acc.balance-totalPrincipal, 0)
	if mathutil.IsZero(acc.balance) {
		acc.balance = 0
	}
	acc.totalInterestPaid += interestPayment
	acc.totalPaid += totalPayment

	// Payment is rebuilt from the rounded components so a row always adds up.
	row := AmortizationRow{
		ID:               fmt.Sprintf("%s-%d", acc.mode, acc.month),
		Month:            acc.month,
		Interest:         mathutil.Round(interestPayment),
		Principal:        mathutil.Round(principalPayment),
		Overpayment:      mathutil.Round(appliedOverpayment),
		RemainingBalance: mathutil.Round(acc.balance),
	}
	row.Payment = mathutil.Round(row.Interest + row.Principal + row.Overpayment)
	acc.schedule = append(acc.schedule, row)
}
