package finance

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-guide/pkg/constants"
)

// RiskProfile is the investor's coarse risk tolerance.
type RiskProfile int

const (
	Conservative RiskProfile = iota
	Moderate
	Aggressive
)

// DefaultRiskProfile is used for any profile name outside the synonym set.
const DefaultRiskProfile = Moderate

var riskProfileNames = map[RiskProfile]string{
	Conservative: "Conservative",
	Moderate:     "Moderate",
	Aggressive:   "Aggressive",
}

func (p RiskProfile) String() string {
	if name, ok := riskProfileNames[p]; ok {
		return name
	}
	return fmt.Sprintf("RiskProfile(%d)", int(p))
}

// MarshalText encodes the canonical English name.
func (p RiskProfile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes any recognized synonym and falls back to
// DefaultRiskProfile like ParseRiskProfile.
func (p *RiskProfile) UnmarshalText(text []byte) error {
	*p, _ = ParseRiskProfile(string(text))
	return nil
}

// ParseRiskProfile resolves a profile name, including its Italian and German
// spellings, case-insensitively. Unrecognized names resolve to
// DefaultRiskProfile with ok set to false.
func ParseRiskProfile(name string) (profile RiskProfile, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "conservative", "conservatore", "konservativ":
		return Conservative, true
	case "moderate", "moderato", "moderat":
		return Moderate, true
	case "aggressive", "aggressivo", "aggressiv":
		return Aggressive, true
	default:
		return DefaultRiskProfile, false
	}
}

// RiskProfiles lists every profile in ascending order of risk.
func RiskProfiles() []RiskProfile {
	return []RiskProfile{Conservative, Moderate, Aggressive}
}

// Horizon is the time-to-retirement bucket that decides the allocation tilt.
type Horizon int

const (
	// ShortHorizon is fewer than 10 years: stocks tilted down.
	ShortHorizon Horizon = iota
	// NeutralHorizon is 10 to 20 years inclusive: no tilt.
	NeutralHorizon
	// LongHorizon is more than 20 years: stocks tilted up.
	LongHorizon
)

func (h Horizon) String() string {
	switch h {
	case ShortHorizon:
		return "short"
	case LongHorizon:
		return "long"
	default:
		return "neutral"
	}
}

// MarshalText encodes the bucket name.
func (h Horizon) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a bucket name written by MarshalText.
func (h *Horizon) UnmarshalText(text []byte) error {
	switch string(text) {
	case "short":
		*h = ShortHorizon
	case "neutral":
		*h = NeutralHorizon
	case "long":
		*h = LongHorizon
	default:
		return fmt.Errorf("unknown horizon %q", text)
	}
	return nil
}

// HorizonFor buckets a number of years to retirement.
func HorizonFor(yearsToRetirement int) Horizon {
	switch {
	case yearsToRetirement > constants.LongHorizonYears:
		return LongHorizon
	case yearsToRetirement < constants.ShortHorizonYears:
		return ShortHorizon
	default:
		return NeutralHorizon
	}
}

// Asset is one of the three allocation classes.
type Asset string

const (
	Stocks Asset = "stocks"
	Bonds  Asset = "bonds"
	Gold   Asset = "gold"
)

// Allocation is a whole-percentage split across the asset classes.
type Allocation struct {
	Stocks int `json:"stocks" yaml:"stocks"`
	Bonds  int `json:"bonds" yaml:"bonds"`
	Gold   int `json:"gold" yaml:"gold"`
}

// Total is the sum of all percentages.
func (a Allocation) Total() int {
	return a.Stocks + a.Bonds + a.Gold
}

// Share pairs an asset with its percentage.
type Share struct {
	Asset   Asset
	Percent int
}

// Shares lists the allocation as stocks, bonds, gold.
func (a Allocation) Shares() []Share {
	return []Share{
		{Asset: Stocks, Percent: a.Stocks},
		{Asset: Bonds, Percent: a.Bonds},
		{Asset: Gold, Percent: a.Gold},
	}
}

// BaseAllocation is the allocation for a profile before any horizon tilt.
func BaseAllocation(profile RiskProfile) Allocation {
	switch profile {
	case Conservative:
		return Allocation{Stocks: 30, Bonds: 60, Gold: constants.GoldPercent}
	case Aggressive:
		return Allocation{Stocks: 70, Bonds: 20, Gold: constants.GoldPercent}
	default:
		return Allocation{Stocks: 50, Bonds: 40, Gold: constants.GoldPercent}
	}
}

// InvestmentAllocation returns the allocation for a profile tilted by the
// retirement horizon. Long horizons move ten points from bonds to stocks.
// Short horizons move ten points from stocks to bonds with stocks floored at
// 20; the bonds side is not capped.
func InvestmentAllocation(profile RiskProfile, yearsToRetirement int) Allocation {
	allocation := BaseAllocation(profile)

	switch HorizonFor(yearsToRetirement) {
	case LongHorizon:
		allocation.Stocks += constants.HorizonTilt
		allocation.Bonds -= constants.HorizonTilt
	case ShortHorizon:
		allocation.Stocks = max(constants.MinStocksPercent, allocation.Stocks-constants.HorizonTilt)
		allocation.Bonds += constants.HorizonTilt
	}

	return allocation
}
