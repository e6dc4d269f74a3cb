package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/iwvelando/finance-guide/pkg/finance"
)

// ValidateProfile checks the cash flow and capital figures of a profile.
func ValidateProfile(income, expenses, liquidCapital, investedCapital float64) []string {
	var warnings []string

	for _, field := range []struct {
		name  string
		value float64
	}{
		{"monthly income", income},
		{"monthly expenses", expenses},
		{"liquid capital", liquidCapital},
		{"invested capital", investedCapital},
	} {
		if field.value < 0 {
			warnings = append(warnings, fmt.Sprintf("Profile %s is negative (%.2f)", field.name, field.value))
		}
	}

	if expenses > 0 && income <= expenses {
		warnings = append(warnings, fmt.Sprintf(
			"Monthly expenses (%.2f) are not below monthly income (%.2f) - there are no savings to build the emergency fund or fund goals",
			expenses, income))
	}

	return warnings
}

// ValidateGoal checks a single goal. Goals with no positive horizon are
// accepted by the planner but contribute no monthly PAC.
func ValidateGoal(name string, cost float64, years int) []string {
	var warnings []string

	label := strings.TrimSpace(name)
	if label == "" {
		label = "(unnamed)"
		warnings = append(warnings, "Goal has no name")
	}
	if cost < 0 {
		warnings = append(warnings, fmt.Sprintf("Goal '%s' has a negative cost (%.2f)", label, cost))
	}
	if years <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Goal '%s' has %d years - its monthly PAC is reported as zero and savings needs are under-reported",
			label, years))
	}

	return warnings
}

// ValidateRetirement checks the investment horizon and risk profile.
func ValidateRetirement(yearsToRetirement int, riskProfile string) []string {
	var warnings []string

	if yearsToRetirement < constants.MinYearsToRetirement || yearsToRetirement > constants.MaxYearsToRetirement {
		warnings = append(warnings, fmt.Sprintf("Years to retirement %d is outside %d-%d",
			yearsToRetirement, constants.MinYearsToRetirement, constants.MaxYearsToRetirement))
	}

	if _, ok := finance.ParseRiskProfile(riskProfile); !ok {
		warnings = append(warnings, fmt.Sprintf("Risk profile '%s' is not recognized - using %s",
			riskProfile, finance.DefaultRiskProfile))
	}

	return warnings
}

// ConfigValidator collects everything a planning configuration declares.
type ConfigValidator struct {
	Profile           ProfileConfig
	YearsToRetirement int
	RiskProfile       string
	Goals             []GoalConfig
}

type ProfileConfig struct {
	MonthlyIncome   float64
	MonthlyExpenses float64
	LiquidCapital   float64
	InvestedCapital float64
}

type GoalConfig struct {
	Name  string
	Cost  float64
	Years int
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	p := cv.Profile
	warnings = append(warnings, ValidateProfile(p.MonthlyIncome, p.MonthlyExpenses, p.LiquidCapital, p.InvestedCapital)...)
	warnings = append(warnings, ValidateRetirement(cv.YearsToRetirement, cv.RiskProfile)...)

	seen := make(map[string]bool, len(cv.Goals))
	for _, goal := range cv.Goals {
		warnings = append(warnings, ValidateGoal(goal.Name, goal.Cost, goal.Years)...)

		key := strings.ToLower(strings.TrimSpace(goal.Name))
		if key == "" {
			continue
		}
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("Goal '%s' is defined more than once", goal.Name))
		}
		seen[key] = true
	}

	return warnings
}
