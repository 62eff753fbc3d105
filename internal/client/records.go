package client

import (
	"fmt"
	"sort"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

// UsageRecord is one flat usage row from the backend. Field names are
// canonical; the strict decoder rejects responses that drift from them.
type UsageRecord struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	AgentName    string  `json:"agent_name"`
	AgentType    string  `json:"agent_type,omitempty"`
	Environment  string  `json:"environment,omitempty"`
	UserEmail    string  `json:"user_email,omitempty"`
	TotalCost    float64 `json:"total_cost"`
	TotalTokens  int     `json:"total_tokens"`
	RequestCount int     `json:"request_count"`
}

// Validate checks the fields a record cannot be used without.
func (r UsageRecord) Validate() error {
	if r.AgentName == "" {
		return fmt.Errorf("missing agent_name")
	}
	if r.Date == "" {
		return fmt.Errorf("missing date")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	if r.TotalCost < 0 {
		return fmt.Errorf("negative total_cost %v", r.TotalCost)
	}
	return nil
}

// Day returns the record's date as a UTC midnight timestamp. Validate
// must have passed first.
func (r UsageRecord) Day() time.Time {
	ts, _ := time.Parse("2006-01-02", r.Date)
	return ts.UTC()
}

// MapAgents folds usage records into per-agent snapshots, ranked by
// descending spend.
func MapAgents(records []UsageRecord) []models.Agent {
	type acc struct {
		agent models.Agent
		first int
	}
	byName := make(map[string]*acc)
	var order []string

	for i, rec := range records {
		a, ok := byName[rec.AgentName]
		if !ok {
			a = &acc{
				agent: models.Agent{
					ID:   fmt.Sprintf("agent-%03d", len(order)+1),
					Name: rec.AgentName,
					Type: models.ParseAgentType(rec.AgentType),
				},
				first: i,
			}
			byName[rec.AgentName] = a
			order = append(order, rec.AgentName)
		}
		a.agent.WeeklySpend += rec.TotalCost
		a.agent.RequestCount += rec.RequestCount
	}

	out := make([]models.Agent, 0, len(order))
	for _, name := range order {
		a := byName[name].agent
		if a.RequestCount > 0 {
			a.AverageCost = a.WeeklySpend / float64(a.RequestCount)
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeeklySpend > out[j].WeeklySpend
	})
	for i := range out {
		out[i].PopularityRank = i + 1
	}
	return out
}

// MapTimeSeries folds usage records into daily aggregate points,
// ascending by day. Distinct users are counted by email when present.
func MapTimeSeries(records []UsageRecord) []models.TimeSeriesPoint {
	type bucket struct {
		point models.TimeSeriesPoint
		users map[string]bool
	}
	buckets := make(map[time.Time]*bucket)

	for _, rec := range records {
		day := rec.Day()
		b, ok := buckets[day]
		if !ok {
			b = &bucket{
				point: models.TimeSeriesPoint{Timestamp: day},
				users: make(map[string]bool),
			}
			buckets[day] = b
		}
		b.point.Cost += rec.TotalCost
		b.point.RequestCount += rec.RequestCount
		if rec.UserEmail != "" {
			b.users[rec.UserEmail] = true
		}
	}

	out := make([]models.TimeSeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		b.point.UserCount = len(b.users)
		out = append(out, b.point)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
