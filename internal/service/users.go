package service

import (
	"context"
	"fmt"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

// UserDetails is the drill-down view for one user: the snapshot itself
// plus a trend series shaped like the dashboard's time-series charts and
// the most recent activity inside the requested window.
type UserDetails struct {
	User           models.User              `json:"user"`
	CostTrend      []models.TimeSeriesPoint `json:"cost_trend"`
	TopAgents      []models.AgentUsage      `json:"top_agents"`
	RecentActivity []models.Session         `json:"recent_activity"`
}

const recentActivityLimit = 20

// GetUsersByDepartment returns the member users of one department,
// paginated. Unknown department ids are an error, not an empty page.
func (s *Service) GetUsersByDepartment(ctx context.Context, departmentID string, tr models.TimeRange, page *PageRequest) (Page[models.User], error) {
	defer s.observe("users_by_department")()
	if err := s.guard(ctx); err != nil {
		return Page[models.User]{}, err
	}

	if _, err := s.departmentOr404(departmentID); err != nil {
		return Page[models.User]{}, err
	}

	users := s.store.UsersByDepartment(departmentID)

	req := page.normalized()
	if req.SortBy == "" {
		req.SortBy = "weeklySpend"
		req.SortOrder = "desc"
	}

	return paginate(users, &req, userSortKey)
}

// GetUserDetails assembles the drill-down view for one user.
func (s *Service) GetUserDetails(ctx context.Context, userID string, tr models.TimeRange) (*UserDetails, error) {
	defer s.observe("user_details")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	user, err := s.userOr404(userID)
	if err != nil {
		return nil, err
	}

	// The 7-day trend reshaped as series points so every chart in the
	// dashboard consumes one shape. UserCount is 1 by construction.
	trend := make([]models.TimeSeriesPoint, 0, len(user.TrendData))
	for _, day := range user.TrendData {
		trend = append(trend, models.TimeSeriesPoint{
			Timestamp:    day.Date,
			Cost:         day.Cost,
			RequestCount: day.RequestCount,
			UserCount:    1,
		})
	}

	var activity []models.Session
	for _, sess := range s.store.SessionsByUser(userID) {
		if !tr.Contains(sess.Timestamp) {
			continue
		}
		activity = append(activity, sess)
		if len(activity) == recentActivityLimit {
			break
		}
	}

	return &UserDetails{
		User:           user,
		CostTrend:      trend,
		TopAgents:      user.AgentBreakdown,
		RecentActivity: activity,
	}, nil
}

// GetAgentUsageByUser returns the user's per-agent spend allocation.
func (s *Service) GetAgentUsageByUser(ctx context.Context, userID string, tr models.TimeRange) ([]models.AgentUsage, error) {
	defer s.observe("agent_usage_by_user")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	user, err := s.userOr404(userID)
	if err != nil {
		return nil, err
	}
	return user.AgentBreakdown, nil
}

func userSortKey(u models.User, field string) (any, bool) {
	switch field {
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "weeklyspend", "spend":
		return u.WeeklySpend, true
	case "requestcount", "requests":
		return u.RequestCount, true
	case "agentcount":
		return u.AgentCount, true
	default:
		return nil, false
	}
}

func (s *Service) userOr404(id string) (models.User, error) {
	u, ok := s.store.FindUser(id)
	if !ok {
		return models.User{}, NewNotFound(fmt.Sprintf("user not found: %s", id))
	}
	return u, nil
}
