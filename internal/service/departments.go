package service

import (
	"context"
	"fmt"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

// DepartmentSummary is the top-of-dashboard rollup across all departments.
type DepartmentSummary struct {
	TotalSpend        float64             `json:"total_spend"`
	TotalBudget       float64             `json:"total_budget"`
	BudgetUtilization float64             `json:"budget_utilization"` // percent
	DepartmentCount   int                 `json:"department_count"`
	OverBudgetCount   int                 `json:"over_budget_count"`
	AlertCount        int                 `json:"alert_count"`
	Departments       []models.Department `json:"departments"`
}

// GetDepartmentSummary aggregates spend, budget, and alert counts across
// every department.
func (s *Service) GetDepartmentSummary(ctx context.Context, tr models.TimeRange) (*DepartmentSummary, error) {
	defer s.observe("department_summary")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	departments := s.store.Departments()
	alerts := s.store.Alerts()

	summary := &DepartmentSummary{
		DepartmentCount: len(departments),
		Departments:     departments,
	}

	known := make(map[string]bool, len(departments))
	for _, d := range departments {
		known[d.ID] = true
		summary.TotalSpend += d.CurrentSpend
		summary.TotalBudget += d.WeeklyBudget
		if d.OverBudget() {
			summary.OverBudgetCount++
		}
	}
	// AlertCount is the number of alerts, not of alerted departments.
	for _, a := range alerts {
		if known[a.DepartmentID] {
			summary.AlertCount++
		}
	}
	if summary.TotalBudget > 0 {
		summary.BudgetUtilization = summary.TotalSpend / summary.TotalBudget * 100
	}

	return summary, nil
}

// GetDepartmentComparison returns all departments ordered for side-by-side
// budget comparison, descending by current spend unless the caller sorts.
func (s *Service) GetDepartmentComparison(ctx context.Context, tr models.TimeRange, page *PageRequest) (Page[models.Department], error) {
	defer s.observe("department_comparison")()
	if err := s.guard(ctx); err != nil {
		return Page[models.Department]{}, err
	}

	departments := s.store.Departments()

	req := page.normalized()
	if req.SortBy == "" {
		req.SortBy = "currentSpend"
		req.SortOrder = "desc"
	}

	return paginate(departments, &req, departmentSortKey)
}

func departmentSortKey(d models.Department, field string) (any, bool) {
	switch field {
	case "name":
		return d.Name, true
	case "currentspend", "spend":
		return d.CurrentSpend, true
	case "weeklybudget", "budget":
		return d.WeeklyBudget, true
	case "projectedspend":
		return d.ProjectedSpend, true
	case "budgetutilization", "utilization":
		return d.BudgetUtilization(), true
	case "activeusers":
		return d.ActiveUsers, true
	case "totalusers":
		return d.TotalUsers, true
	case "costperuser":
		return d.CostPerUser, true
	default:
		return nil, false
	}
}

func (s *Service) departmentOr404(id string) (models.Department, error) {
	d, ok := s.store.FindDepartment(id)
	if !ok {
		return models.Department{}, NewNotFound(fmt.Sprintf("department not found: %s", id))
	}
	return d, nil
}
