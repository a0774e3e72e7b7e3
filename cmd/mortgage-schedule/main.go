package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/mortgage-schedule/internal/config"
	"github.com/iwvelando/mortgage-schedule/internal/logging"
	"github.com/iwvelando/mortgage-schedule/internal/schedule"
	"github.com/iwvelando/mortgage-schedule/pkg/constants"
	"github.com/iwvelando/mortgage-schedule/pkg/format"
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"github.com/iwvelando/mortgage-schedule/pkg/output"
	"github.com/iwvelando/mortgage-schedule/pkg/selection"
	"github.com/iwvelando/mortgage-schedule/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	month := flag.Int("month", 0, "month whose payment breakdown is printed (0 prints the first month)")
	maxRows := flag.Int("max-rows", 0, "maximum schedule rows printed per scenario in pretty output")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	rowCap := conf.Output.MaxRows
	if *maxRows > 0 {
		rowCap = *maxRows
	}
	if rowCap <= 0 {
		rowCap = constants.DefaultDisplayRows
	}
	conf.Output.MaxRows = rowCap

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := schedule.GetSchedules(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute schedules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	locale := format.LocaleByName(conf.Output.Locale)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, results, rowCap, locale)
		printBreakdowns(logger, results, *month, locale)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, results)
	}
}

// printBreakdowns prints the inspected row of every scenario. The inspected
// row follows the schedule's first month unless a month was requested.
func printBreakdowns(logger *zap.Logger, results []schedule.Schedule, month int, locale format.Locale) {
	inspected := selection.New()
	inspected.Subscribe(func(row loans.AmortizationRow) {
		logger.Debug("inspected row changed",
			zap.String("op", "main.printBreakdowns"),
			zap.String("id", row.ID),
		)
	})
	for _, result := range results {
		inspected.SyncWith(result.Result)
		if month > 0 && !inspected.SelectMonth(result.Result, month) {
			logger.Warn(fmt.Sprintf("scenario %s has no month %d", result.Name, month),
				zap.String("op", "main.printBreakdowns"),
				zap.Int("payoffMonths", result.Result.PayoffMonths),
			)
			continue
		}
		if !inspected.Selected() {
			continue
		}

		fmt.Printf("\n--- Payment breakdown for scenario %s ---\n", result.Name)
		output.RowBreakdown(os.Stdout, inspected.Current(), locale)
	}
}
