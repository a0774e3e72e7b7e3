// Package schedule computes amortization schedules for every active scenario
// of a configuration.
package schedule

import (
	"fmt"
	"sync"

	"github.com/iwvelando/mortgage-schedule/internal/config"
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"go.uber.org/zap"
)

// Schedule holds the computed result for one scenario.
type Schedule struct {
	Name       string                      `json:"name"`
	Parameters loans.LoanParameters        `json:"parameters"`
	Result     loans.LoanComputationResult `json:"result"`
	// Savings compares the result against the same loan without
	// overpayment; nil when no overpayment is configured.
	Savings *loans.Savings `json:"savings,omitempty"`
}

// Compute builds the schedule for params, including the comparison against
// the no-overpayment baseline when an overpayment is configured.
func Compute(generator *loans.ScheduleGenerator, name string, params loans.LoanParameters) Schedule {
	result := generator.Generate(params)
	s := Schedule{
		Name:       name,
		Parameters: params,
		Result:     result,
	}

	if params.Overpayment() > 0 && !params.IsEmpty() {
		baseline := generator.Generate(loans.Baseline(params))
		savings := loans.Compare(baseline, result)
		s.Savings = &savings
	}
	return s
}

// GetSchedules processes the schedules for all active scenarios. Scenarios are
// computed concurrently and returned in configuration order.
func GetSchedules(logger *zap.Logger, conf config.Configuration) ([]Schedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	generator := loans.NewScheduleGenerator(logger)

	var active []config.Scenario
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "schedule.GetSchedules"),
			)
			continue
		}
		active = append(active, scenario)
	}

	params := make([]loans.LoanParameters, len(active))
	for i, scenario := range active {
		p, err := conf.LoanParameters(scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		params[i] = p
	}

	results := make([]Schedule, len(active))
	var wg sync.WaitGroup
	for i := range active {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Compute(generator, active[i].Name, params[i])
			logger.Debug(fmt.Sprintf("computed schedule for scenario %s", active[i].Name),
				zap.String("op", "schedule.GetSchedules"),
				zap.Int("payoffMonths", results[i].Result.PayoffMonths),
			)
		}(i)
	}
	wg.Wait()

	return results, nil
}
