// Package config defines the data structures related to configuration and
// includes functions for loading and validating a planning profile.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-guide/internal/plan"
	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/iwvelando/finance-guide/pkg/finance"
	"github.com/iwvelando/finance-guide/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds everything one planning session needs.
type Configuration struct {
	Language          string        `yaml:"language" mapstructure:"language"`
	Profile           ProfileConfig `yaml:"profile" mapstructure:"profile"`
	YearsToRetirement int           `yaml:"yearsToRetirement" mapstructure:"yearsToRetirement"`
	RiskProfile       string        `yaml:"riskProfile" mapstructure:"riskProfile"`
	Goals             []GoalConfig  `yaml:"goals,omitempty" mapstructure:"goals"`
	Logging           LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output            OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // markdown, json, yaml
	File   string `yaml:"file,omitempty" mapstructure:"file"`     // optional file instead of stdout
}

// ProfileConfig is the monthly cash flow and capital of the user.
type ProfileConfig struct {
	MonthlyIncome   float64 `yaml:"monthlyIncome" mapstructure:"monthlyIncome"`
	MonthlyExpenses float64 `yaml:"monthlyExpenses" mapstructure:"monthlyExpenses"`
	LiquidCapital   float64 `yaml:"liquidCapital" mapstructure:"liquidCapital"`
	InvestedCapital float64 `yaml:"investedCapital,omitempty" mapstructure:"investedCapital"`
}

// GoalConfig is a predictable future expense.
type GoalConfig struct {
	Name  string  `yaml:"name" mapstructure:"name"`
	Cost  float64 `yaml:"cost" mapstructure:"cost"`
	Years int     `yaml:"years" mapstructure:"years"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("language", constants.DefaultLanguage)
	v.SetDefault("yearsToRetirement", constants.DefaultYearsToRetirement)
	v.SetDefault("riskProfile", finance.DefaultRiskProfile.String())
	v.SetDefault("output.format", constants.OutputFormatMarkdown)
	v.SetDefault("output.file", "")
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")

	// Registered so that environment variables can supply them without a file entry.
	v.SetDefault("profile.monthlyIncome", 0)
	v.SetDefault("profile.monthlyExpenses", 0)
	v.SetDefault("profile.liquidCapital", 0)
	v.SetDefault("profile.investedCapital", 0)

	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

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

	configuration.normalize()
	return &configuration, nil
}

func (c *Configuration) normalize() {
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if c.Language == "" {
		c.Language = constants.DefaultLanguage
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatMarkdown
	}
	c.RiskProfile = strings.TrimSpace(c.RiskProfile)
	for i := range c.Goals {
		c.Goals[i].Name = strings.TrimSpace(c.Goals[i].Name)
	}
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateLanguage(c.Language); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v - the report falls back to %s", err, constants.DefaultLanguage))
	}

	goals := make([]validation.GoalConfig, 0, len(c.Goals))
	for _, goal := range c.Goals {
		goals = append(goals, validation.GoalConfig{
			Name:  goal.Name,
			Cost:  goal.Cost,
			Years: goal.Years,
		})
	}

	validator := validation.ConfigValidator{
		Profile: validation.ProfileConfig{
			MonthlyIncome:   c.Profile.MonthlyIncome,
			MonthlyExpenses: c.Profile.MonthlyExpenses,
			LiquidCapital:   c.Profile.LiquidCapital,
			InvestedCapital: c.Profile.InvestedCapital,
		},
		YearsToRetirement: c.YearsToRetirement,
		RiskProfile:       c.RiskProfile,
		Goals:             goals,
	}
	return append(warnings, validator.ValidateAll()...)
}

// ToInput converts the configuration into a planning session input. Goals
// are copied as declared; the planner reports the ones it cannot use.
func (c *Configuration) ToInput() plan.Input {
	goals := make([]finance.Goal, 0, len(c.Goals))
	for _, goal := range c.Goals {
		goals = append(goals, finance.Goal{
			Name:  goal.Name,
			Cost:  goal.Cost,
			Years: goal.Years,
		})
	}

	return plan.Input{
		Language: c.Language,
		Profile: plan.Profile{
			MonthlyIncome:   c.Profile.MonthlyIncome,
			MonthlyExpenses: c.Profile.MonthlyExpenses,
			LiquidCapital:   c.Profile.LiquidCapital,
			InvestedCapital: c.Profile.InvestedCapital,
		},
		YearsToRetirement: c.YearsToRetirement,
		RiskProfile:       c.RiskProfile,
		Goals:             goals,
	}
}
