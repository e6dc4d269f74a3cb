// Package plan assembles the three planning phases for one session: it runs
// the calculators of pkg/finance in order, gates the later phases on the
// emergency fund, and returns plain values for report rendering.
package plan

import (
	"fmt"

	"github.com/iwvelando/finance-guide/pkg/finance"
	"github.com/iwvelando/finance-guide/pkg/mathutil"
	"go.uber.org/zap"
)

// WarningCode identifies a known limitation surfaced to report consumers.
type WarningCode string

const (
	// WarnInfeasibleGoal marks a goal whose horizon is zero or negative years.
	// Its monthly PAC is reported as zero, which under-reports savings needs.
	WarnInfeasibleGoal WarningCode = "infeasibleGoal"
	// WarnUnknownRiskProfile marks a risk profile that fell back to Moderate.
	WarnUnknownRiskProfile WarningCode = "unknownRiskProfile"
)

// Warning is a known limitation of the computed plan.
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Subject string      `json:"subject" yaml:"subject"`
}

func (w Warning) String() string {
	switch w.Code {
	case WarnInfeasibleGoal:
		return fmt.Sprintf("goal %q has no positive horizon; its monthly PAC is reported as zero", w.Subject)
	case WarnUnknownRiskProfile:
		return fmt.Sprintf("risk profile %q is not recognized; using %s", w.Subject, finance.DefaultRiskProfile)
	default:
		return fmt.Sprintf("%s: %s", w.Code, w.Subject)
	}
}

// EmergencyPhase is phase 1: the six-month liquidity reserve.
type EmergencyPhase struct {
	Target         float64                     `json:"target" yaml:"target"`
	Status         finance.EmergencyFundStatus `json:"status" yaml:"status"`
	MonthlySavings float64                     `json:"monthlySavings" yaml:"monthlySavings"`
	// MonthsToComplete is set only when the fund is incomplete.
	MonthsToComplete *finance.Months `json:"monthsToComplete,omitempty" yaml:"monthsToComplete,omitempty"`
}

// GoalPlan is one goal with its monthly accumulation plan.
type GoalPlan struct {
	finance.Goal   `yaml:",inline"`
	MonthlyPAC     float64 `json:"monthlyPac" yaml:"monthlyPac"`
	DurationMonths int     `json:"months" yaml:"months"`
	Feasible       bool    `json:"feasible" yaml:"feasible"`
}

// GoalsPhase is phase 2: predictable future expenses.
type GoalsPhase struct {
	Goals          []GoalPlan `json:"goals" yaml:"goals"`
	TotalPAC       float64    `json:"totalPac" yaml:"totalPac"`
	MonthlySavings float64    `json:"monthlySavings" yaml:"monthlySavings"`
	MonthlyGap     float64    `json:"monthlyGap" yaml:"monthlyGap"`
	AverageYears   float64    `json:"averageYears" yaml:"averageYears"`
	Surplus        float64    `json:"surplus" yaml:"surplus"`
	// SurplusAllocation is set only when the fund is complete with a positive surplus.
	SurplusAllocation *finance.SurplusAllocation `json:"surplusAllocation,omitempty" yaml:"surplusAllocation,omitempty"`
	CoveredMonths     int                        `json:"coveredMonths" yaml:"coveredMonths"`
	FullyCovered      bool                       `json:"fullyCovered" yaml:"fullyCovered"`
	Unaffordable      bool                       `json:"unaffordable" yaml:"unaffordable"`
}

// AssetSlice is the amount going into one asset class.
type AssetSlice struct {
	Asset   finance.Asset `json:"asset" yaml:"asset"`
	Percent int           `json:"percent" yaml:"percent"`
	Monthly float64       `json:"monthly" yaml:"monthly"`
	LumpSum float64       `json:"lumpSum" yaml:"lumpSum"`
}

// InvestmentPhase is phase 3: long-term investing.
type InvestmentPhase struct {
	RiskProfile       finance.RiskProfile `json:"riskProfile" yaml:"riskProfile"`
	YearsToRetirement int                 `json:"yearsToRetirement" yaml:"yearsToRetirement"`
	Horizon           finance.Horizon     `json:"horizon" yaml:"horizon"`
	MonthlyAvailable  float64             `json:"monthlyAvailable" yaml:"monthlyAvailable"`
	LumpSum           float64             `json:"lumpSum" yaml:"lumpSum"`
	Allocation        finance.Allocation  `json:"allocation" yaml:"allocation"`
	Slices            []AssetSlice        `json:"slices" yaml:"slices"`
	HasCapacity       bool                `json:"hasCapacity" yaml:"hasCapacity"`
}

// Plan is the full result of one planning session.
type Plan struct {
	Profile    Profile         `json:"profile" yaml:"profile"`
	Emergency  EmergencyPhase  `json:"emergency" yaml:"emergency"`
	Goals      GoalsPhase      `json:"goals" yaml:"goals"`
	Investment InvestmentPhase `json:"investment" yaml:"investment"`
	// Blocked means the emergency fund is incomplete; phases 2 and 3 are
	// computed for planning but should not be acted on yet.
	Blocked  bool      `json:"blocked" yaml:"blocked"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Build computes the plan for a session input.
func Build(logger *zap.Logger, in Input) Plan {
	if logger == nil {
		logger = zap.NewNop()
	}

	var result Plan
	result.Profile = in.Profile
	result.Emergency = buildEmergency(in.Profile)
	result.Blocked = !result.Emergency.Status.Complete

	logger.Debug("emergency fund evaluated",
		zap.String("op", "plan.Build"),
		zap.Float64("target", result.Emergency.Target),
		zap.Float64("delta", result.Emergency.Status.Delta),
		zap.Bool("complete", result.Emergency.Status.Complete),
	)

	result.Goals = buildGoals(in.Profile, in.Goals, result.Emergency.Status)
	for _, goal := range result.Goals.Goals {
		if !goal.Feasible {
			result.Warnings = append(result.Warnings, Warning{Code: WarnInfeasibleGoal, Subject: goal.Name})
		}
	}

	logger.Debug("goals evaluated",
		zap.String("op", "plan.Build"),
		zap.Int("goals", len(result.Goals.Goals)),
		zap.Float64("totalPac", result.Goals.TotalPAC),
		zap.Float64("monthlyGap", result.Goals.MonthlyGap),
	)

	profile, recognized := finance.ParseRiskProfile(in.RiskProfile)
	if !recognized {
		result.Warnings = append(result.Warnings, Warning{Code: WarnUnknownRiskProfile, Subject: in.RiskProfile})
	}
	result.Investment = buildInvestment(profile, in.YearsToRetirement, result.Goals)

	logger.Debug("investment allocation evaluated",
		zap.String("op", "plan.Build"),
		zap.Stringer("riskProfile", profile),
		zap.Stringer("horizon", result.Investment.Horizon),
		zap.Int("stocks", result.Investment.Allocation.Stocks),
		zap.Int("bonds", result.Investment.Allocation.Bonds),
		zap.Int("gold", result.Investment.Allocation.Gold),
	)

	for _, warning := range result.Warnings {
		logger.Warn(warning.String(),
			zap.String("op", "plan.Build"),
			zap.String("code", string(warning.Code)),
		)
	}

	return result
}

func buildEmergency(profile Profile) EmergencyPhase {
	target := finance.EmergencyFundTarget(profile.MonthlyExpenses)
	status := finance.CheckEmergencyFund(profile.LiquidCapital, target)
	phase := EmergencyPhase{
		Target:         target,
		Status:         status,
		MonthlySavings: profile.MonthlySavings(),
	}
	if !status.Complete {
		months := finance.MonthsToCloseGap(status.Deficit(), phase.MonthlySavings)
		phase.MonthsToComplete = &months
	}
	return phase
}

func buildGoals(profile Profile, goals []finance.Goal, status finance.EmergencyFundStatus) GoalsPhase {
	// Goals without a positive horizon contribute no PAC and take no part in
	// the averaging or the surplus split.
	feasible := make([]finance.Goal, 0, len(goals))
	for _, goal := range goals {
		if goal.Feasible() {
			feasible = append(feasible, goal)
		}
	}

	phase := GoalsPhase{
		Goals:          make([]GoalPlan, 0, len(goals)),
		TotalPAC:       finance.TotalPAC(goals),
		MonthlySavings: profile.MonthlySavings(),
		AverageYears:   finance.AverageGoalYears(feasible),
		Surplus:        status.Surplus(),
	}
	for _, goal := range goals {
		phase.Goals = append(phase.Goals, GoalPlan{
			Goal:           goal,
			MonthlyPAC:     finance.MonthlyPAC(goal.Cost, goal.Years),
			DurationMonths: max(0, goal.Months()),
			Feasible:       goal.Feasible(),
		})
	}
	phase.MonthlyGap = finance.MonthlySavingsGap(profile.MonthlyIncome, profile.MonthlyExpenses, phase.TotalPAC)

	if status.Complete && phase.Surplus > 0 {
		// Without a fundable goal there is no shortfall, whatever the savings.
		allocation := finance.SurplusAllocation{ToInvestment: phase.Surplus}
		if len(feasible) > 0 {
			allocation = finance.AllocateSurplus(phase.Surplus, phase.MonthlyGap, phase.AverageYears)
			phase.CoveredMonths = allocation.CoveredMonths(phase.MonthlyGap)
			phase.FullyCovered = allocation.Covers(phase.MonthlyGap, phase.AverageYears)
		}
		phase.SurplusAllocation = &allocation
	}
	phase.Unaffordable = len(feasible) > 0 && phase.MonthlyGap < 0 && !phase.FullyCovered

	return phase
}

func buildInvestment(profile finance.RiskProfile, yearsToRetirement int, goals GoalsPhase) InvestmentPhase {
	phase := InvestmentPhase{
		RiskProfile:       profile,
		YearsToRetirement: yearsToRetirement,
		Horizon:           finance.HorizonFor(yearsToRetirement),
		MonthlyAvailable:  goals.MonthlyGap,
		Allocation:        finance.InvestmentAllocation(profile, yearsToRetirement),
	}
	if goals.SurplusAllocation != nil {
		phase.LumpSum = goals.SurplusAllocation.ToInvestment
	}
	phase.HasCapacity = mathutil.IsPositive(phase.MonthlyAvailable) || mathutil.IsPositive(phase.LumpSum)

	monthly := mathutil.NonNegative(phase.MonthlyAvailable)
	for _, share := range phase.Allocation.Shares() {
		phase.Slices = append(phase.Slices, AssetSlice{
			Asset:   share.Asset,
			Percent: share.Percent,
			Monthly: mathutil.ApplyPercentage(monthly, share.Percent),
			LumpSum: mathutil.ApplyPercentage(phase.LumpSum, share.Percent),
		})
	}
	return phase
}

// Rounded returns a copy of the plan with every money amount rounded to
// cents, for machine-readable output. The receiver is not modified.
func (p Plan) Rounded() Plan {
	r := p

	r.Profile.MonthlyIncome = mathutil.Round(p.Profile.MonthlyIncome)
	r.Profile.MonthlyExpenses = mathutil.Round(p.Profile.MonthlyExpenses)
	r.Profile.LiquidCapital = mathutil.Round(p.Profile.LiquidCapital)
	r.Profile.InvestedCapital = mathutil.Round(p.Profile.InvestedCapital)

	r.Emergency.Target = mathutil.Round(p.Emergency.Target)
	r.Emergency.Status.Delta = mathutil.Round(p.Emergency.Status.Delta)
	r.Emergency.MonthlySavings = mathutil.Round(p.Emergency.MonthlySavings)

	r.Goals.Goals = make([]GoalPlan, len(p.Goals.Goals))
	for i, goal := range p.Goals.Goals {
		goal.Cost = mathutil.Round(goal.Cost)
		goal.MonthlyPAC = mathutil.Round(goal.MonthlyPAC)
		r.Goals.Goals[i] = goal
	}
	r.Goals.TotalPAC = mathutil.Round(p.Goals.TotalPAC)
	r.Goals.MonthlySavings = mathutil.Round(p.Goals.MonthlySavings)
	r.Goals.MonthlyGap = mathutil.Round(p.Goals.MonthlyGap)
	r.Goals.AverageYears = mathutil.Round(p.Goals.AverageYears)
	r.Goals.Surplus = mathutil.Round(p.Goals.Surplus)
	if p.Goals.SurplusAllocation != nil {
		r.Goals.SurplusAllocation = &finance.SurplusAllocation{
			ToGoals:      mathutil.Round(p.Goals.SurplusAllocation.ToGoals),
			ToInvestment: mathutil.Round(p.Goals.SurplusAllocation.ToInvestment),
		}
	}

	r.Investment.MonthlyAvailable = mathutil.Round(p.Investment.MonthlyAvailable)
	r.Investment.LumpSum = mathutil.Round(p.Investment.LumpSum)
	r.Investment.Slices = make([]AssetSlice, len(p.Investment.Slices))
	for i, slice := range p.Investment.Slices {
		slice.Monthly = mathutil.Round(slice.Monthly)
		slice.LumpSum = mathutil.Round(slice.LumpSum)
		r.Investment.Slices[i] = slice
	}

	return r
}
