package finance

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/iwvelando/finance-guide/pkg/mathutil"
)

// unreachableLabel is how an unreachable month count is encoded in JSON and YAML.
const unreachableLabel = "unreachable"

// EmergencyFundTarget returns the liquidity reserve for the given monthly
// expenses: six months of spending.
func EmergencyFundTarget(monthlyExpenses float64) float64 {
	return monthlyExpenses * constants.EmergencyFundMonths
}

// EmergencyFundStatus compares current liquidity against the fund target.
type EmergencyFundStatus struct {
	Complete bool    `json:"complete" yaml:"complete"`
	Delta    float64 `json:"delta" yaml:"delta"`
}

// CheckEmergencyFund reports whether current capital covers the target.
// A capital exactly equal to the target counts as complete.
func CheckEmergencyFund(currentCapital, target float64) EmergencyFundStatus {
	delta := currentCapital - target
	return EmergencyFundStatus{
		Complete: delta >= 0,
		Delta:    delta,
	}
}

// Deficit is the amount still missing from the fund, zero when complete.
func (s EmergencyFundStatus) Deficit() float64 {
	if s.Complete {
		return 0
	}
	return -s.Delta
}

// Surplus is the capital held beyond the fund target, zero when incomplete.
func (s EmergencyFundStatus) Surplus() float64 {
	if !s.Complete {
		return 0
	}
	return s.Delta
}

// Months is a month count that may be unreachable. The zero value is
// Unreachable; use MonthsOf for a finite count.
type Months struct {
	count     int
	reachable bool
}

// Unreachable is the month count for a gap that monthly savings can never close.
var Unreachable = Months{}

// MonthsOf returns a finite month count.
func MonthsOf(n int) Months {
	return Months{count: n, reachable: true}
}

// Count returns the number of months and whether the count is finite.
func (m Months) Count() (int, bool) {
	return m.count, m.reachable
}

// Reachable reports whether the count is finite.
func (m Months) Reachable() bool {
	return m.reachable
}

func (m Months) String() string {
	if !m.reachable {
		return unreachableLabel
	}
	return fmt.Sprintf("%d", m.count)
}

// MarshalJSON encodes a finite count as a number and Unreachable as a string.
func (m Months) MarshalJSON() ([]byte, error) {
	if !m.reachable {
		return json.Marshal(unreachableLabel)
	}
	return json.Marshal(m.count)
}

// UnmarshalJSON accepts either a number or the unreachable label.
func (m *Months) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		if label != unreachableLabel {
			return fmt.Errorf("invalid month count %q", label)
		}
		*m = Unreachable
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid month count: %w", err)
	}
	*m = MonthsOf(n)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (m Months) MarshalYAML() (interface{}, error) {
	if !m.reachable {
		return unreachableLabel, nil
	}
	return m.count, nil
}

// MonthsToCloseGap returns how many months of savings close the deficit,
// rounded up. Zero or negative savings never close it.
func MonthsToCloseGap(deficit, monthlySavings float64) Months {
	if monthlySavings <= 0 {
		return Unreachable
	}
	return MonthsOf(mathutil.CeilDiv(deficit, monthlySavings))
}
