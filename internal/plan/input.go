package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-guide/pkg/finance"
)

// Goal list errors returned by Input.AddGoal and Input.RemoveGoal.
var (
	ErrGoalNameRequired = errors.New("goal name is required")
	ErrNegativeCost     = errors.New("goal cost cannot be negative")
	ErrInvalidYears     = errors.New("goal years must be at least 1")
	ErrGoalIndex        = errors.New("goal index out of range")
)

// Profile holds the monthly cash flow and capital of the user.
type Profile struct {
	MonthlyIncome   float64 `json:"monthlyIncome" yaml:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses" yaml:"monthlyExpenses"`
	LiquidCapital   float64 `json:"liquidCapital" yaml:"liquidCapital"`
	// InvestedCapital is shown for context only and never enters a total.
	InvestedCapital float64 `json:"investedCapital" yaml:"investedCapital"`
}

// MonthlySavings is income minus expenses.
func (p Profile) MonthlySavings() float64 {
	return p.MonthlyIncome - p.MonthlyExpenses
}

// Input is everything a single planning session collects. It is owned by
// the caller and discarded with the session.
type Input struct {
	Language          string         `json:"language" yaml:"language"`
	Profile           Profile        `json:"profile" yaml:"profile"`
	YearsToRetirement int            `json:"yearsToRetirement" yaml:"yearsToRetirement"`
	RiskProfile       string         `json:"riskProfile" yaml:"riskProfile"`
	Goals             []finance.Goal `json:"goals" yaml:"goals"`
}

// AddGoal appends a goal after checking it the way the input form does.
func (in *Input) AddGoal(name string, cost float64, years int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrGoalNameRequired
	}
	if cost < 0 {
		return fmt.Errorf("%w: %s costs %.2f", ErrNegativeCost, name, cost)
	}
	if years < 1 {
		return fmt.Errorf("%w: %s has %d", ErrInvalidYears, name, years)
	}
	in.Goals = append(in.Goals, finance.Goal{Name: name, Cost: cost, Years: years})
	return nil
}

// RemoveGoal deletes the goal at index, keeping the order of the others.
func (in *Input) RemoveGoal(index int) error {
	if index < 0 || index >= len(in.Goals) {
		return fmt.Errorf("%w: %d of %d", ErrGoalIndex, index, len(in.Goals))
	}
	in.Goals = append(in.Goals[:index], in.Goals[index+1:]...)
	return nil
}
