package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

// SessionFilters narrows the session list. Every populated field is an
// AND condition; ids that resolve to nothing yield empty results rather
// than errors, matching the behavior of an empty filter match.
type SessionFilters struct {
	UserID       string               `json:"user_id,omitempty"`
	AgentID      string               `json:"agent_id,omitempty"`
	DepartmentID string               `json:"department_id,omitempty"`
	Status       models.SessionStatus `json:"status,omitempty"`
	MinCost      *float64             `json:"min_cost,omitempty"`
	MaxCost      *float64             `json:"max_cost,omitempty"`
	TimeRange    models.TimeRange     `json:"time_range"`
}

// SessionDetails is one session with its surrounding context: who ran
// it, on which agent, and the nearest sessions from the same pairing.
type SessionDetails struct {
	Session         models.Session   `json:"session"`
	UserInfo        models.User      `json:"user_info"`
	AgentInfo       models.Agent     `json:"agent_info"`
	RelatedSessions []models.Session `json:"related_sessions"`
}

const (
	relatedSessionLimit  = 5
	relatedSessionWindow = 24 * time.Hour
)

// GetRecentSessions lists sessions matching the filters, newest first
// unless the caller picks another sort.
func (s *Service) GetRecentSessions(ctx context.Context, filters SessionFilters, page *PageRequest) (Page[models.Session], error) {
	defer s.observe("recent_sessions")()
	if err := s.guard(ctx); err != nil {
		return Page[models.Session]{}, err
	}

	// DepartmentID narrows to the member users; an unknown department
	// has no members, so the set is empty.
	var memberIDs map[string]bool
	if filters.DepartmentID != "" {
		memberIDs = make(map[string]bool)
		for _, u := range s.store.UsersByDepartment(filters.DepartmentID) {
			memberIDs[u.ID] = true
		}
	}

	var agentName string
	if filters.AgentID != "" {
		if agent, ok := s.store.FindAgent(filters.AgentID); ok {
			agentName = agent.Name
		} else {
			agentName = "\x00" // matches nothing
		}
	}

	var matched []models.Session
	for _, sess := range s.store.Sessions() {
		if filters.UserID != "" && sess.UserID != filters.UserID {
			continue
		}
		if agentName != "" && sess.AgentID != filters.AgentID && sess.AgentName != agentName {
			continue
		}
		if memberIDs != nil && !memberIDs[sess.UserID] {
			continue
		}
		if filters.Status != "" && sess.Status != filters.Status {
			continue
		}
		if filters.MinCost != nil && sess.Cost < *filters.MinCost {
			continue
		}
		if filters.MaxCost != nil && sess.Cost > *filters.MaxCost {
			continue
		}
		if !filters.TimeRange.Contains(sess.Timestamp) {
			continue
		}
		matched = append(matched, sess)
	}

	// Store order is already descending by timestamp, which doubles as
	// the default sort.
	return paginate(matched, page, sessionSortKey)
}

// GetSessionDetails resolves one session and its full context block.
// A session whose user or agent cannot be resolved is treated as not
// found; the dataset guarantees both links within one generation pass.
func (s *Service) GetSessionDetails(ctx context.Context, sessionID string) (*SessionDetails, error) {
	defer s.observe("session_details")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	sess, ok := s.store.FindSession(sessionID)
	if !ok {
		return nil, NewNotFound(fmt.Sprintf("session not found: %s", sessionID))
	}

	user, ok := s.store.FindUser(sess.UserID)
	if !ok {
		return nil, NewNotFound(fmt.Sprintf("user not found for session: %s", sessionID))
	}

	agent, ok := s.store.FindAgent(sess.AgentID)
	if !ok {
		return nil, NewNotFound(fmt.Sprintf("agent not found for session: %s", sessionID))
	}

	var related []models.Session
	for _, other := range s.store.SessionsByUser(sess.UserID) {
		if other.ID == sess.ID || other.AgentID != sess.AgentID {
			continue
		}
		gap := other.Timestamp.Sub(sess.Timestamp)
		if gap < 0 {
			gap = -gap
		}
		if gap > relatedSessionWindow {
			continue
		}
		related = append(related, other)
	}
	sort.SliceStable(related, func(i, j int) bool {
		return related[i].Timestamp.After(related[j].Timestamp)
	})
	if len(related) > relatedSessionLimit {
		related = related[:relatedSessionLimit]
	}

	return &SessionDetails{
		Session:         sess,
		UserInfo:        user,
		AgentInfo:       agent,
		RelatedSessions: related,
	}, nil
}

func sessionSortKey(x models.Session, field string) (any, bool) {
	switch field {
	case "timestamp":
		return x.Timestamp, true
	case "cost":
		return x.Cost, true
	case "tokencount", "tokens":
		return x.TokenCount, true
	case "duration":
		return x.Duration, true
	case "status":
		return string(x.Status), true
	case "agentname", "agent":
		return x.AgentName, true
	default:
		return nil, false
	}
}
