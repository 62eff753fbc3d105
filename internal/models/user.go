package models

import "time"

// User is a usage snapshot for one person.
//
// DepartmentID is the canonical link to the owning department; Department
// carries the display name and is derived from it at generation time.
type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	DepartmentID string  `json:"department_id"`
	Department   string  `json:"department"`
	Role         string  `json:"role"`
	WeeklySpend  float64 `json:"weekly_spend"`
	RequestCount int     `json:"request_count"`
	AgentCount   int     `json:"agent_count"`

	// TrendData always holds exactly 7 entries, oldest first.
	TrendData []DailyUsage `json:"trend_data"`

	// AgentBreakdown percentages sum to 100 (±0.1) when WeeklySpend > 0
	// and the slice is empty when WeeklySpend == 0.
	AgentBreakdown []AgentUsage `json:"agent_breakdown"`

	// RecentSessions holds at most 10 sessions, most recent first.
	RecentSessions []Session `json:"recent_sessions"`
}

// IsActive reports whether the user had any spend this week.
func (u *User) IsActive() bool {
	return u.WeeklySpend > 0
}

// DailyUsage is one day of a user's 7-day trend.
type DailyUsage struct {
	Date         time.Time `json:"date"`
	Cost         float64   `json:"cost"`
	RequestCount int       `json:"request_count"`
}

// AgentUsage is one slice of a user's per-agent spend allocation.
type AgentUsage struct {
	AgentID      string  `json:"agent_id"`
	AgentName    string  `json:"agent_name"`
	Cost         float64 `json:"cost"`
	RequestCount int     `json:"request_count"`
	Percentage   float64 `json:"percentage"` // of the user's weekly spend
}
