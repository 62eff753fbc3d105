package service

import (
	"context"
	"sort"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

const defaultLeaderboardLimit = 10

// GetAgentLeaderboard returns the top agents by weekly spend. The limit
// truncates the ranked set before pagination so page math reflects the
// leaderboard size, not the whole agent population.
func (s *Service) GetAgentLeaderboard(ctx context.Context, tr models.TimeRange, limit int, page *PageRequest) (Page[models.Agent], error) {
	defer s.observe("agent_leaderboard")()
	if err := s.guard(ctx); err != nil {
		return Page[models.Agent]{}, err
	}

	agents := s.store.Agents()
	sort.SliceStable(agents, func(i, j int) bool {
		return agents[i].WeeklySpend > agents[j].WeeklySpend
	})

	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit < len(agents) {
		agents = agents[:limit]
	}

	return paginate(agents, page, agentSortKey)
}

func agentSortKey(a models.Agent, field string) (any, bool) {
	switch field {
	case "name":
		return a.Name, true
	case "type":
		return string(a.Type), true
	case "weeklyspend", "spend":
		return a.WeeklySpend, true
	case "requestcount", "requests":
		return a.RequestCount, true
	case "averagecost":
		return a.AverageCost, true
	case "popularityrank", "rank":
		return a.PopularityRank, true
	default:
		return nil, false
	}
}
