package service

import (
	"context"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/models"
	"github.com/raja-kanniappa/agentlens/internal/store"
)

// EntityOption is one selectable entry in a filter dropdown.
type EntityOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
}

// RangePreset is one canned time-range choice.
type RangePreset struct {
	Label       string             `json:"label"`
	Days        int                `json:"days"`
	Granularity models.Granularity `json:"granularity"`
}

// FilterOptions feeds the dashboard's filter controls: every selectable
// entity plus the fixed time-range presets.
type FilterOptions struct {
	Departments []EntityOption `json:"departments"`
	Users       []EntityOption `json:"users"`
	Agents      []EntityOption `json:"agents"`
	Statuses    []string       `json:"statuses"`
	Presets     []RangePreset  `json:"presets"`
}

// HealthStatus is the liveness report.
type HealthStatus struct {
	Status      string        `json:"status"`
	GeneratedAt time.Time     `json:"generated_at"`
	Data        store.Summary `json:"data"`
}

// GetFilterOptions returns the selectable entities and range presets.
func (s *Service) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	defer s.observe("filter_options")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	opts := &FilterOptions{
		Statuses: []string{
			string(models.SessionSuccess),
			string(models.SessionError),
			string(models.SessionTimeout),
		},
		Presets: []RangePreset{
			{Label: "Last 7 days", Days: 7, Granularity: models.GranularityDaily},
			{Label: "Last 30 days", Days: 30, Granularity: models.GranularityDaily},
			{Label: "Last 90 days", Days: 90, Granularity: models.GranularityWeekly},
		},
	}

	for _, d := range s.store.Departments() {
		opts.Departments = append(opts.Departments, EntityOption{ID: d.ID, Label: d.Name})
	}
	for _, u := range s.store.Users() {
		opts.Users = append(opts.Users, EntityOption{ID: u.ID, Label: u.Name, Group: u.Department})
	}
	for _, a := range s.store.Agents() {
		opts.Agents = append(opts.Agents, EntityOption{ID: a.ID, Label: a.Name, Group: string(a.Type)})
	}

	return opts, nil
}

// HealthCheck reports liveness plus the current dataset's entity counts.
// It bypasses the resilience layer so probes stay dependable while
// failure injection is active.
func (s *Service) HealthCheck(ctx context.Context) *HealthStatus {
	return &HealthStatus{
		Status:      "healthy",
		GeneratedAt: s.store.GeneratedAt(),
		Data:        s.store.DataSummary(),
	}
}
