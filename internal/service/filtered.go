package service

import (
	"context"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

// FilteredData is the multi-entity query result: four independently
// paginated sets narrowed by one shared filter state.
type FilteredData struct {
	Departments Page[models.Department] `json:"departments"`
	Users       Page[models.User]       `json:"users"`
	Agents      Page[models.Agent]      `json:"agents"`
	Sessions    Page[models.Session]    `json:"sessions"`
}

// GetFilteredData narrows every entity set under one filter state with
// cascading AND semantics: the department dimension restricts users, and
// the resulting user set restricts sessions along with the agent,
// time-range, and cost dimensions. Each set paginates independently;
// sort selection is per-entity, so the shared page request carries only
// page/limit here.
func (s *Service) GetFilteredData(ctx context.Context, filters models.FilterState, page *PageRequest) (*FilteredData, error) {
	defer s.observe("filtered_data")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}

	req := page.normalized()
	req.SortBy = ""
	req.SortOrder = ""

	deptSet := stringSet(filters.Departments)
	var departments []models.Department
	for _, d := range s.store.Departments() {
		if deptSet != nil && !deptSet[d.ID] {
			continue
		}
		departments = append(departments, d)
	}

	userSet := s.resolveUserSet(filters)
	var users []models.User
	for _, u := range s.store.Users() {
		if deptSet != nil && !deptSet[u.DepartmentID] {
			continue
		}
		if userSet != nil && !userSet[u.ID] {
			continue
		}
		users = append(users, u)
	}

	agentSet := stringSet(filters.Agents)
	var agents []models.Agent
	for _, a := range s.store.Agents() {
		if agentSet != nil && !agentSet[a.ID] && !agentSet[a.Name] {
			continue
		}
		agents = append(agents, a)
	}

	sessions := s.filterSessions(filters)

	deptPage, err := paginate(departments, &req, departmentSortKey)
	if err != nil {
		return nil, err
	}
	userPage, err := paginate(users, &req, userSortKey)
	if err != nil {
		return nil, err
	}
	agentPage, err := paginate(agents, &req, agentSortKey)
	if err != nil {
		return nil, err
	}
	sessionPage, err := paginate(sessions, &req, sessionSortKey)
	if err != nil {
		return nil, err
	}

	return &FilteredData{
		Departments: deptPage,
		Users:       userPage,
		Agents:      agentPage,
		Sessions:    sessionPage,
	}, nil
}
