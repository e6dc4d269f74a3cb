package finance

import "github.com/iwvelando/finance-guide/pkg/constants"

// Goal is a fixed-cost savings target reached in equal monthly installments.
type Goal struct {
	Name  string  `json:"name" yaml:"name"`
	Cost  float64 `json:"cost" yaml:"cost"`
	Years int     `json:"years" yaml:"years"`
}

// Feasible reports whether the goal has a horizon MonthlyPAC can divide by.
func (g Goal) Feasible() bool {
	return g.Years > 0
}

// Months is the goal horizon in months.
func (g Goal) Months() int {
	return g.Years * constants.MonthsPerYear
}

// MonthlyPAC returns the monthly set-aside that reaches cost in the given
// number of years without any assumed return. A horizon of zero or fewer
// years yields zero: the goal is not funded, the calculation is declined.
func MonthlyPAC(cost float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	return cost / float64(years*constants.MonthsPerYear)
}

// TotalPAC sums MonthlyPAC over all goals.
func TotalPAC(goals []Goal) float64 {
	total := 0.0
	for _, goal := range goals {
		total += MonthlyPAC(goal.Cost, goal.Years)
	}
	return total
}

// MonthlySavingsGap is what remains of monthly savings after funding every
// goal. A negative gap means the goals are unaffordable from income alone.
func MonthlySavingsGap(income, expenses, totalPAC float64) float64 {
	return (income - expenses) - totalPAC
}

// AverageGoalYears is the arithmetic mean of goal horizons, or
// constants.DefaultAverageGoalYears when there are no goals.
func AverageGoalYears(goals []Goal) float64 {
	if len(goals) == 0 {
		return constants.DefaultAverageGoalYears
	}
	sum := 0
	for _, goal := range goals {
		sum += goal.Years
	}
	return float64(sum) / float64(len(goals))
}
