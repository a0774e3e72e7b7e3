// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-schedule/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-schedule.
type Configuration struct {
	Common    Loan
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format  string `yaml:"format,omitempty"`  // pretty, csv
	Locale  string `yaml:"locale,omitempty"`  // pl-PL, en-US
	MaxRows int    `yaml:"maxRows,omitempty"` // pretty output row cap
}

// Loan holds loan parameters as written in the config file. In Common every
// field is a default; in a Scenario only the fields that are set override it.
type Loan struct {
	Principal          *float64 `yaml:"principal,omitempty"`
	AnnualInterestRate *float64 `yaml:"annualInterestRate,omitempty"`
	Years              *float64 `yaml:"years,omitempty"`
	MonthlyOverpayment *float64 `yaml:"monthlyOverpayment,omitempty"`
	Mode               *string  `yaml:"mode,omitempty"`
}

// Scenario holds one named set of loan parameters.
type Scenario struct {
	Name   string
	Active bool
	Loan   `mapstructure:",squash" yaml:",inline"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("MORTGAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate returns an error for configurations that cannot be computed.
func (c *Configuration) Validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("no scenarios defined")
	}

	seen := make(map[string]struct{}, len(c.Scenarios))
	for i, scenario := range c.Scenarios {
		name := strings.TrimSpace(scenario.Name)
		if name == "" {
			return fmt.Errorf("scenario %d has no name", i+1)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("duplicate scenario name %s", name)
		}
		seen[name] = struct{}{}

		if _, err := c.LoanParameters(scenario); err != nil {
			return fmt.Errorf("scenario %s: %w", name, err)
		}
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	return nil
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	active := c.ActiveScenarios()
	if len(active) == 0 {
		warnings = append(warnings, "no active scenarios, nothing will be computed")
	}

	for _, scenario := range active {
		params, err := c.LoanParameters(scenario)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("scenario %s: %v", scenario.Name, err))
			continue
		}
		warnings = append(warnings, validation.ValidateLoanParameters(scenario.Name, params, c.Output.MaxRows)...)
	}
	return warnings
}
