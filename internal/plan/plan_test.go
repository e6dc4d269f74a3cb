package plan

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-guide/pkg/finance"
	"go.uber.org/zap"
)

func TestBuildIncompleteEmergencyFund(t *testing.T) {
	in := Input{
		Profile: Profile{
			MonthlyIncome:   2000,
			MonthlyExpenses: 1500,
			LiquidCapital:   5000,
		},
		YearsToRetirement: 30,
		RiskProfile:       "Moderate",
	}

	result := Build(zap.NewNop(), in)

	if result.Emergency.Target != 9000 {
		t.Errorf("Target = %v, expected 9000", result.Emergency.Target)
	}
	if result.Emergency.Status.Complete {
		t.Error("expected incomplete emergency fund")
	}
	if result.Emergency.Status.Delta != -4000 {
		t.Errorf("Delta = %v, expected -4000", result.Emergency.Status.Delta)
	}
	if result.Emergency.MonthsToComplete == nil {
		t.Fatal("expected months to complete")
	}
	months, ok := result.Emergency.MonthsToComplete.Count()
	if !ok || months != 8 {
		t.Errorf("MonthsToComplete = (%d, %v), expected (8, true)", months, ok)
	}
	if !result.Blocked {
		t.Error("expected plan to be blocked")
	}
	if result.Goals.SurplusAllocation != nil {
		t.Error("expected no surplus allocation while the fund is incomplete")
	}
	if result.Goals.Surplus != 0 {
		t.Errorf("Surplus = %v, expected 0", result.Goals.Surplus)
	}
	if result.Investment.Allocation != (finance.Allocation{Stocks: 60, Bonds: 30, Gold: 10}) {
		t.Errorf("allocation = %+v, expected long-horizon moderate split", result.Investment.Allocation)
	}
	if result.Investment.MonthlyAvailable != 500 {
		t.Errorf("MonthlyAvailable = %v, expected 500", result.Investment.MonthlyAvailable)
	}
	if result.Investment.LumpSum != 0 {
		t.Errorf("LumpSum = %v, expected 0", result.Investment.LumpSum)
	}
}

func TestBuildUnreachableEmergencyFund(t *testing.T) {
	in := Input{
		Profile: Profile{
			MonthlyIncome:   1500,
			MonthlyExpenses: 1500,
			LiquidCapital:   1000,
		},
		YearsToRetirement: 15,
		RiskProfile:       "Conservatore",
	}

	result := Build(zap.NewNop(), in)

	if result.Emergency.MonthsToComplete == nil {
		t.Fatal("expected months to complete")
	}
	if result.Emergency.MonthsToComplete.Reachable() {
		t.Errorf("expected unreachable, got %v", *result.Emergency.MonthsToComplete)
	}
	if result.Investment.HasCapacity {
		t.Error("expected no investment capacity without savings or surplus")
	}
}

func TestBuildCompleteFundWithAffordableGoal(t *testing.T) {
	in := Input{
		Profile: Profile{
			MonthlyIncome:   3000,
			MonthlyExpenses: 1200,
			LiquidCapital:   10000,
			InvestedCapital: 50000,
		},
		YearsToRetirement: 15,
		RiskProfile:       "Moderate",
		Goals: []finance.Goal{
			{Name: "House down payment", Cost: 12000, Years: 2},
		},
	}

	result := Build(zap.NewNop(), in)

	if result.Emergency.Target != 7200 {
		t.Errorf("Target = %v, expected 7200", result.Emergency.Target)
	}
	if !result.Emergency.Status.Complete || result.Emergency.Status.Delta != 2800 {
		t.Errorf("status = %+v, expected complete with 2800 surplus", result.Emergency.Status)
	}
	if result.Emergency.MonthsToComplete != nil {
		t.Error("expected no months to complete for a complete fund")
	}
	if result.Blocked {
		t.Error("expected plan not to be blocked")
	}
	if len(result.Goals.Goals) != 1 || result.Goals.Goals[0].MonthlyPAC != 500 {
		t.Fatalf("goals = %+v, expected one goal with 500 PAC", result.Goals.Goals)
	}
	if result.Goals.Goals[0].DurationMonths != 24 {
		t.Errorf("DurationMonths = %d, expected 24", result.Goals.Goals[0].DurationMonths)
	}
	if result.Goals.MonthlyGap != 1300 {
		t.Errorf("MonthlyGap = %v, expected 1300", result.Goals.MonthlyGap)
	}
	allocation := result.Goals.SurplusAllocation
	if allocation == nil {
		t.Fatal("expected surplus allocation")
	}
	if *allocation != (finance.SurplusAllocation{ToInvestment: 2800}) {
		t.Errorf("allocation = %+v, expected everything to investment", *allocation)
	}
	if result.Goals.Unaffordable {
		t.Error("expected goals to be affordable")
	}
	if result.Investment.LumpSum != 2800 {
		t.Errorf("LumpSum = %v, expected 2800", result.Investment.LumpSum)
	}
	if result.Investment.MonthlyAvailable != 1300 {
		t.Errorf("MonthlyAvailable = %v, expected 1300", result.Investment.MonthlyAvailable)
	}

	expected := []AssetSlice{
		{Asset: finance.Stocks, Percent: 50, Monthly: 650, LumpSum: 1400},
		{Asset: finance.Bonds, Percent: 40, Monthly: 520, LumpSum: 1120},
		{Asset: finance.Gold, Percent: 10, Monthly: 130, LumpSum: 280},
	}
	if len(result.Investment.Slices) != len(expected) {
		t.Fatalf("got %d slices, expected %d", len(result.Investment.Slices), len(expected))
	}
	for i, slice := range result.Investment.Slices {
		if slice.Asset != expected[i].Asset || slice.Percent != expected[i].Percent ||
			math.Abs(slice.Monthly-expected[i].Monthly) > 1e-9 ||
			math.Abs(slice.LumpSum-expected[i].LumpSum) > 1e-9 {
			t.Errorf("slice %d = %+v, expected %+v", i, slice, expected[i])
		}
	}

	if result.Profile.InvestedCapital != 50000 {
		t.Error("expected invested capital to be echoed")
	}
}

func TestBuildSurplusCoversShortfall(t *testing.T) {
	in := Input{
		Profile: Profile{
			MonthlyIncome:   2000,
			MonthlyExpenses: 1500,
			LiquidCapital:   14000,
		},
		YearsToRetirement: 5,
		RiskProfile:       "Aggressive",
		Goals: []finance.Goal{
			{Name: "Car", Cost: 14400, Years: 2},
		},
	}

	result := Build(zap.NewNop(), in)

	if result.Goals.MonthlyGap != -100 {
		t.Fatalf("MonthlyGap = %v, expected -100", result.Goals.MonthlyGap)
	}
	allocation := result.Goals.SurplusAllocation
	if allocation == nil || *allocation != (finance.SurplusAllocation{ToGoals: 2400, ToInvestment: 2600}) {
		t.Fatalf("allocation = %+v, expected 2400/2600", allocation)
	}
	if !result.Goals.FullyCovered || result.Goals.Unaffordable {
		t.Errorf("expected a fully covered shortfall, got %+v", result.Goals)
	}
	if result.Goals.CoveredMonths != 24 {
		t.Errorf("CoveredMonths = %d, expected 24", result.Goals.CoveredMonths)
	}
	if result.Investment.LumpSum != 2600 {
		t.Errorf("LumpSum = %v, expected 2600", result.Investment.LumpSum)
	}
	if !result.Investment.HasCapacity {
		t.Error("expected capacity from the lump sum")
	}
	for _, slice := range result.Investment.Slices {
		if slice.Monthly != 0 {
			t.Errorf("expected no monthly amount for %s with a negative gap", slice.Asset)
		}
	}
}

func TestBuildSurplusPartiallyCoversShortfall(t *testing.T) {
	in := Input{
		Profile: Profile{
			MonthlyIncome:   2000,
			MonthlyExpenses: 1500,
			LiquidCapital:   10000,
		},
		YearsToRetirement: 15,
		Goals: []finance.Goal{
			{Name: "Car", Cost: 14400, Years: 2},
		},
	}

	result := Build(zap.NewNop(), in)

	allocation := result.Goals.SurplusAllocation
	if allocation == nil || *allocation != (finance.SurplusAllocation{ToGoals: 1000}) {
		t.Fatalf("allocation = %+v, expected 1000 to goals", allocation)
	}
	if result.Goals.FullyCovered || !result.Goals.Unaffordable {
		t.Errorf("expected partial coverage, got %+v", result.Goals)
	}
	if result.Goals.CoveredMonths != 10 {
		t.Errorf("CoveredMonths = %d, expected 10", result.Goals.CoveredMonths)
	}
	if result.Investment.HasCapacity {
		t.Error("expected no investment capacity")
	}
}

func TestBuildNoGoalsInvestsWholeSurplus(t *testing.T) {
	in := Input{
		Profile: Profile{
			MonthlyIncome:   1000,
			MonthlyExpenses: 1200,
			LiquidCapital:   10000,
		},
		YearsToRetirement: 15,
		RiskProfile:       "Moderate",
	}

	result := Build(zap.NewNop(), in)

	if result.Goals.AverageYears != 5 {
		t.Errorf("AverageYears = %v, expected the default of 5", result.Goals.AverageYears)
	}
	allocation := result.Goals.SurplusAllocation
	if allocation == nil || *allocation != (finance.SurplusAllocation{ToInvestment: 2800}) {
		t.Fatalf("allocation = %+v, expected whole surplus to investment", allocation)
	}
	if result.Goals.Unaffordable {
		t.Error("expected no unaffordable flag without goals")
	}
}

func TestBuildWarnings(t *testing.T) {
	in := Input{
		Profile:           Profile{MonthlyIncome: 3000, MonthlyExpenses: 1000, LiquidCapital: 6000},
		YearsToRetirement: 15,
		RiskProfile:       "Reckless",
		Goals: []finance.Goal{
			{Name: "Holiday", Cost: 3000, Years: 0},
			{Name: "Car", Cost: 12000, Years: 1},
		},
	}

	result := Build(nil, in)

	expected := []Warning{
		{Code: WarnInfeasibleGoal, Subject: "Holiday"},
		{Code: WarnUnknownRiskProfile, Subject: "Reckless"},
	}
	if len(result.Warnings) != len(expected) {
		t.Fatalf("warnings = %+v, expected %+v", result.Warnings, expected)
	}
	for i := range expected {
		if result.Warnings[i] != expected[i] {
			t.Errorf("warning %d = %+v, expected %+v", i, result.Warnings[i], expected[i])
		}
		if result.Warnings[i].String() == "" {
			t.Errorf("warning %d has no message", i)
		}
	}
	if result.Goals.TotalPAC != 1000 {
		t.Errorf("TotalPAC = %v, expected 1000", result.Goals.TotalPAC)
	}
	if result.Investment.RiskProfile != finance.Moderate {
		t.Errorf("RiskProfile = %v, expected Moderate fallback", result.Investment.RiskProfile)
	}
}

func TestBuildInfeasibleGoalsAreNotFunded(t *testing.T) {
	tests := []struct {
		name          string
		goals         []finance.Goal
		averageYears  float64
		toGoals       float64
		toInvestment  float64
		coveredMonths int
		fullyCovered  bool
		unaffordable  bool
	}{
		{
			name:         "Only a negative horizon",
			goals:        []finance.Goal{{Name: "Broken", Cost: 10000, Years: -3}},
			averageYears: 5,
			toInvestment: 14000,
		},
		{
			name: "Negative horizon next to a feasible goal",
			goals: []finance.Goal{
				{Name: "Car", Cost: 4800, Years: 2},
				{Name: "Broken", Cost: 10000, Years: -3},
			},
			averageYears:  2,
			toGoals:       7200,
			toInvestment:  6800,
			coveredMonths: 24,
			fullyCovered:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Build(zap.NewNop(), Input{
				Profile:           Profile{MonthlyIncome: 900, MonthlyExpenses: 1000, LiquidCapital: 20000},
				YearsToRetirement: 15,
				RiskProfile:       "Moderate",
				Goals:             tt.goals,
			})

			goals := result.Goals
			if goals.AverageYears != tt.averageYears {
				t.Errorf("AverageYears = %v, expected %v", goals.AverageYears, tt.averageYears)
			}
			if goals.SurplusAllocation == nil {
				t.Fatal("expected a surplus allocation")
			}
			if goals.SurplusAllocation.ToGoals != tt.toGoals || goals.SurplusAllocation.ToInvestment != tt.toInvestment {
				t.Errorf("allocation = %+v, expected %v to goals and %v to investment",
					*goals.SurplusAllocation, tt.toGoals, tt.toInvestment)
			}
			if goals.SurplusAllocation.ToGoals+goals.SurplusAllocation.ToInvestment != goals.Surplus {
				t.Errorf("allocation does not add up to the surplus %v", goals.Surplus)
			}
			if goals.CoveredMonths != tt.coveredMonths || goals.FullyCovered != tt.fullyCovered {
				t.Errorf("covered = %d (full %v), expected %d (full %v)",
					goals.CoveredMonths, goals.FullyCovered, tt.coveredMonths, tt.fullyCovered)
			}
			if goals.Unaffordable != tt.unaffordable {
				t.Errorf("Unaffordable = %v, expected %v", goals.Unaffordable, tt.unaffordable)
			}
			for _, goal := range goals.Goals {
				if !goal.Feasible && (goal.MonthlyPAC != 0 || goal.DurationMonths != 0) {
					t.Errorf("infeasible goal %s planned as %+v", goal.Name, goal)
				}
			}
		})
	}
}

func TestInvestedCapitalExcludedFromTotals(t *testing.T) {
	base := Input{
		Profile:           Profile{MonthlyIncome: 3000, MonthlyExpenses: 1200, LiquidCapital: 10000},
		YearsToRetirement: 15,
		Goals:             []finance.Goal{{Name: "House", Cost: 12000, Years: 2}},
	}
	withInvested := base
	withInvested.Profile.InvestedCapital = 250000

	a := Build(zap.NewNop(), base)
	b := Build(zap.NewNop(), withInvested)

	if a.Emergency != b.Emergency {
		t.Errorf("emergency phase changed: %+v vs %+v", a.Emergency, b.Emergency)
	}
	if a.Goals.MonthlyGap != b.Goals.MonthlyGap || a.Goals.Surplus != b.Goals.Surplus {
		t.Error("goal phase changed with invested capital")
	}
	if a.Investment.LumpSum != b.Investment.LumpSum || a.Investment.MonthlyAvailable != b.Investment.MonthlyAvailable {
		t.Error("investment phase changed with invested capital")
	}
}

func TestAddGoal(t *testing.T) {
	var in Input

	if err := in.AddGoal("  House  ", 12000, 2); err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}
	if err := in.AddGoal("House", 8000, 4); err != nil {
		t.Fatalf("AddGoal() with duplicate name error = %v", err)
	}

	tests := []struct {
		name    string
		goal    string
		cost    float64
		years   int
		wantErr error
	}{
		{"Blank name", "   ", 1000, 1, ErrGoalNameRequired},
		{"Negative cost", "Car", -1, 1, ErrNegativeCost},
		{"Zero years", "Car", 1000, 0, ErrInvalidYears},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := in.AddGoal(tt.goal, tt.cost, tt.years)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddGoal() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}

	if len(in.Goals) != 2 {
		t.Fatalf("got %d goals, expected 2", len(in.Goals))
	}
	if in.Goals[0].Name != "House" || in.Goals[0].Cost != 12000 {
		t.Errorf("first goal = %+v", in.Goals[0])
	}
}

func TestRemoveGoal(t *testing.T) {
	in := Input{Goals: []finance.Goal{
		{Name: "A", Cost: 1, Years: 1},
		{Name: "B", Cost: 2, Years: 2},
		{Name: "C", Cost: 3, Years: 3},
	}}

	if err := in.RemoveGoal(1); err != nil {
		t.Fatalf("RemoveGoal() error = %v", err)
	}
	if len(in.Goals) != 2 || in.Goals[0].Name != "A" || in.Goals[1].Name != "C" {
		t.Errorf("goals = %+v, expected A and C in order", in.Goals)
	}

	for _, index := range []int{-1, 2, 10} {
		if err := in.RemoveGoal(index); !errors.Is(err, ErrGoalIndex) {
			t.Errorf("RemoveGoal(%d) error = %v, expected ErrGoalIndex", index, err)
		}
	}
}

func TestRounded(t *testing.T) {
	result := Build(zap.NewNop(), Input{
		Profile:           Profile{MonthlyIncome: 3000, MonthlyExpenses: 1200, LiquidCapital: 10000},
		YearsToRetirement: 15,
		RiskProfile:       "Moderate",
		Goals: []finance.Goal{
			{Name: "Car", Cost: 20000, Years: 5},
			{Name: "Bike", Cost: 1000, Years: 3},
		},
	})

	rounded := result.Rounded()

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"Car PAC", rounded.Goals.Goals[0].MonthlyPAC, 333.33},
		{"Bike PAC", rounded.Goals.Goals[1].MonthlyPAC, 27.78},
		{"Total PAC", rounded.Goals.TotalPAC, 361.11},
		{"Monthly gap", rounded.Goals.MonthlyGap, 1438.89},
		{"Average years", rounded.Goals.AverageYears, 4},
		{"Monthly available", rounded.Investment.MonthlyAvailable, 1438.89},
		{"Stocks monthly", rounded.Investment.Slices[0].Monthly, 719.44},
		{"Lump sum", rounded.Investment.LumpSum, 2800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	if result.Goals.Goals[0].MonthlyPAC == rounded.Goals.Goals[0].MonthlyPAC {
		t.Error("Rounded() modified the original goals")
	}
	if result.Goals.SurplusAllocation == rounded.Goals.SurplusAllocation {
		t.Error("Rounded() shares the surplus allocation with the original")
	}
}
