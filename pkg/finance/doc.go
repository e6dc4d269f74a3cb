// Package finance implements the three-phase planning calculations: the
// emergency fund, monthly accumulation plans (PAC) for savings goals, the
// split of surplus capital between goals and investment, and the
// percentage-based investment allocation by risk profile and horizon.
//
// Every function in this package is pure. Amounts are float64 currency
// values; callers round for display.
package finance
