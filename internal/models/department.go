// Package models contains the core data structures for AgentLens.
package models

// Department is a spend snapshot for one organizational unit.
// Snapshots are immutable once generated; mutation happens only through
// a full dataset regeneration pass.
type Department struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	WeeklyBudget       float64   `json:"weekly_budget"`
	CurrentSpend       float64   `json:"current_spend"`
	ProjectedSpend     float64   `json:"projected_spend"`
	WeekOverWeekChange float64   `json:"week_over_week_change"` // percent
	ActiveUsers        int       `json:"active_users"`
	TotalUsers         int       `json:"total_users"`
	CostPerUser        float64   `json:"cost_per_user"`
	Projects           []Project `json:"projects"`
}

// BudgetUtilization returns currentSpend/weeklyBudget as a percentage,
// or 0 when the budget is zero.
func (d *Department) BudgetUtilization() float64 {
	if d.WeeklyBudget == 0 {
		return 0
	}
	return d.CurrentSpend / d.WeeklyBudget * 100
}

// OverBudget reports whether current spend exceeds the weekly budget.
func (d *Department) OverBudget() bool {
	return d.CurrentSpend > d.WeeklyBudget
}

// Project is a spend bucket owned by a department.
type Project struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DepartmentID string  `json:"department_id"`
	WeeklySpend  float64 `json:"weekly_spend"`
	UserCount    int     `json:"user_count"`
	AgentCount   int     `json:"agent_count"`
}
