// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/finance-guide/internal/plan"
	"github.com/iwvelando/finance-guide/pkg/finance"
)

// FindGoal finds a goal by name in the goals phase of a plan.
// Returns a pointer to the goal if found, nil otherwise.
func FindGoal(goals []plan.GoalPlan, name string) *plan.GoalPlan {
	for i := range goals {
		if goals[i].Name == name {
			return &goals[i]
		}
	}
	return nil
}

// FindSlice finds the investment slice for an asset class, nil if absent.
func FindSlice(slices []plan.AssetSlice, asset finance.Asset) *plan.AssetSlice {
	for i := range slices {
		if slices[i].Asset == asset {
			return &slices[i]
		}
	}
	return nil
}
