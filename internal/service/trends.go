package service

import (
	"context"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/generator"
	"github.com/raja-kanniappa/agentlens/internal/models"
)

// TrendSummary is the headline math over one trend series.
type TrendSummary struct {
	TotalCost             float64   `json:"total_cost"`
	TotalRequests         int       `json:"total_requests"`
	AverageCostPerRequest float64   `json:"average_cost_per_request"`
	PeakUsageDate         time.Time `json:"peak_usage_date"`
}

// Trends is a bucketed usage series plus its summary.
type Trends struct {
	Points  []models.TimeSeriesPoint `json:"points"`
	Summary TrendSummary             `json:"summary"`
}

// GetUsageTrends re-aggregates the session set under the filter state.
// Entity dimensions intersect (AND), then the surviving sessions are
// bucketed at the requested granularity.
func (s *Service) GetUsageTrends(ctx context.Context, filters models.FilterState) (*Trends, error) {
	defer s.observe("usage_trends")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	sessions := s.filterSessions(filters)

	g := filters.TimeRange.Granularity
	if g == "" {
		g = models.GranularityDaily
	}
	points := generator.AggregateBuckets(sessions, g)

	summary := TrendSummary{}
	var peak float64
	for _, p := range points {
		summary.TotalCost += p.Cost
		summary.TotalRequests += p.RequestCount
		if p.Cost > peak {
			peak = p.Cost
			summary.PeakUsageDate = p.Timestamp
		}
	}
	if summary.TotalRequests > 0 {
		summary.AverageCostPerRequest = summary.TotalCost / float64(summary.TotalRequests)
	}

	return &Trends{Points: points, Summary: summary}, nil
}

// filterSessions applies the time range and every entity dimension of
// the filter state to the full session set.
func (s *Service) filterSessions(filters models.FilterState) []models.Session {
	userSet := s.resolveUserSet(filters)
	agentSet := stringSet(filters.Agents)

	var out []models.Session
	for _, sess := range s.store.Sessions() {
		if !filters.TimeRange.Contains(sess.Timestamp) {
			continue
		}
		if userSet != nil && !userSet[sess.UserID] {
			continue
		}
		if agentSet != nil && !agentSet[sess.AgentID] && !agentSet[sess.AgentName] {
			continue
		}
		if filters.CostThreshold != nil && sess.Cost < *filters.CostThreshold {
			continue
		}
		out = append(out, sess)
	}
	return out
}

// resolveUserSet folds the department and user dimensions into one set
// of admissible user ids. Nil means unrestricted.
func (s *Service) resolveUserSet(filters models.FilterState) map[string]bool {
	if len(filters.Departments) == 0 && len(filters.Users) == 0 {
		return nil
	}

	set := make(map[string]bool)
	if len(filters.Departments) > 0 {
		for _, deptID := range filters.Departments {
			for _, u := range s.store.UsersByDepartment(deptID) {
				set[u.ID] = true
			}
		}
		if len(filters.Users) > 0 {
			// Both dimensions set: intersect.
			want := stringSet(filters.Users)
			for id := range set {
				if !want[id] {
					delete(set, id)
				}
			}
		}
		return set
	}

	for _, id := range filters.Users {
		set[id] = true
	}
	return set
}

func stringSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
