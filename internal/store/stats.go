package store

import "github.com/raja-kanniappa/agentlens/internal/models"

// BudgetStats summarizes budget utilization across all departments.
type BudgetStats struct {
	TotalBudget     float64 `json:"total_budget"`
	TotalSpend      float64 `json:"total_spend"`
	Utilization     float64 `json:"utilization"` // percent
	OverBudget      int     `json:"over_budget"`
	DepartmentCount int     `json:"department_count"`
}

// BudgetUtilization aggregates spend against budget for the whole dataset.
func (s *Store) BudgetUtilization() BudgetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := BudgetStats{DepartmentCount: len(s.data.Departments)}
	for _, d := range s.data.Departments {
		stats.TotalBudget += d.WeeklyBudget
		stats.TotalSpend += d.CurrentSpend
		if d.OverBudget() {
			stats.OverBudget++
		}
	}
	if stats.TotalBudget > 0 {
		stats.Utilization = stats.TotalSpend / stats.TotalBudget * 100
	}
	return stats
}

// ActivityBuckets counts users by the generator's usage-profile tiers.
type ActivityBuckets struct {
	Zero     int `json:"zero"`
	Light    int `json:"light"`    // under $20/week
	Moderate int `json:"moderate"` // $20-100/week
	Heavy    int `json:"heavy"`    // over $100/week
}

// UserActivityBuckets classifies every user by weekly spend.
func (s *Store) UserActivityBuckets() ActivityBuckets {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b ActivityBuckets
	for _, u := range s.data.Users {
		switch {
		case u.WeeklySpend == 0:
			b.Zero++
		case u.WeeklySpend < 20:
			b.Light++
		case u.WeeklySpend < 100:
			b.Moderate++
		default:
			b.Heavy++
		}
	}
	return b
}

// AgentTypeStats aggregates spend and volume for one agent type.
type AgentTypeStats struct {
	Type         models.AgentType `json:"type"`
	AgentCount   int              `json:"agent_count"`
	WeeklySpend  float64          `json:"weekly_spend"`
	RequestCount int              `json:"request_count"`
}

// AgentTypeBreakdown aggregates agents per type, in display order.
func (s *Store) AgentTypeBreakdown() []AgentTypeStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byType := make(map[models.AgentType]*AgentTypeStats)
	for _, typ := range models.AgentTypes {
		byType[typ] = &AgentTypeStats{Type: typ}
	}

	for _, a := range s.data.Agents {
		st := byType[a.Type]
		st.AgentCount++
		st.WeeklySpend += a.WeeklySpend
		st.RequestCount += a.RequestCount
	}

	out := make([]AgentTypeStats, 0, len(models.AgentTypes))
	for _, typ := range models.AgentTypes {
		out = append(out, *byType[typ])
	}
	return out
}

// Summary is a headline count of the current dataset, used by health
// reporting and the filter-options endpoint.
type Summary struct {
	Departments int `json:"departments"`
	Users       int `json:"users"`
	Agents      int `json:"agents"`
	Sessions    int `json:"sessions"`
	Alerts      int `json:"alerts"`
}

// DataSummary returns entity counts for the current pass.
func (s *Store) DataSummary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Summary{
		Departments: len(s.data.Departments),
		Users:       len(s.data.Users),
		Agents:      len(s.data.Agents),
		Sessions:    len(s.data.Sessions),
		Alerts:      len(s.data.Alerts),
	}
}
