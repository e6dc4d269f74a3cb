package finance

import (
	"math"

	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/iwvelando/finance-guide/pkg/mathutil"
)

// SurplusAllocation splits capital held beyond the emergency fund.
type SurplusAllocation struct {
	ToGoals      float64 `json:"toGoals" yaml:"toGoals"`
	ToInvestment float64 `json:"toInvestment" yaml:"toInvestment"`
}

// ShortfallNeeded is the capital that bridges a negative monthly gap for
// the average goal horizon. A non-negative gap needs nothing, and a
// negative horizon counts as zero years.
func ShortfallNeeded(monthlyGap, averageYears float64) float64 {
	if monthlyGap >= 0 {
		return 0
	}
	return math.Abs(monthlyGap) * constants.MonthsPerYear * mathutil.NonNegative(averageYears)
}

// AllocateSurplus assigns surplus capital to goal shortfalls first and
// invests the remainder. With no shortfall the whole surplus is invested;
// with a shortfall larger than the surplus everything goes to the goals.
func AllocateSurplus(surplus, monthlyGap, averageYears float64) SurplusAllocation {
	if monthlyGap >= 0 {
		return SurplusAllocation{ToInvestment: surplus}
	}

	needed := ShortfallNeeded(monthlyGap, averageYears)
	if surplus >= needed {
		return SurplusAllocation{
			ToGoals:      needed,
			ToInvestment: surplus - needed,
		}
	}
	return SurplusAllocation{ToGoals: surplus}
}

// CoveredMonths is the number of whole months the goal share bridges the
// monthly gap. Zero when there is no gap.
func (a SurplusAllocation) CoveredMonths(monthlyGap float64) int {
	if monthlyGap == 0 {
		return 0
	}
	return int(a.ToGoals / math.Abs(monthlyGap))
}

// Covers reports whether the goal share bridges the gap for the whole
// average horizon. A negative gap with no horizon to bridge is never covered.
func (a SurplusAllocation) Covers(monthlyGap, averageYears float64) bool {
	needed := ShortfallNeeded(monthlyGap, averageYears)
	if monthlyGap < 0 && needed <= 0 {
		return false
	}
	return a.ToGoals >= needed
}
