package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raja-kanniappa/agentlens/internal/metrics"
	"github.com/raja-kanniappa/agentlens/internal/models"
	"github.com/raja-kanniappa/agentlens/internal/service"
)

func (s *Server) handleDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	tr, err := parseTimeRange(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	summary, err := s.service.GetDepartmentSummary(r.Context(), tr)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, summary)
}

func (s *Server) handleDepartmentComparison(w http.ResponseWriter, r *http.Request) {
	tr, page, err := parseListParams(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	result, err := s.service.GetDepartmentComparison(r.Context(), tr, page)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, result)
}

func (s *Server) handleUsersByDepartment(w http.ResponseWriter, r *http.Request) {
	tr, page, err := parseListParams(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	result, err := s.service.GetUsersByDepartment(r.Context(), chi.URLParam(r, "id"), tr, page)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, result)
}

func (s *Server) handleUserDetails(w http.ResponseWriter, r *http.Request) {
	tr, err := parseTimeRange(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	details, err := s.service.GetUserDetails(r.Context(), chi.URLParam(r, "id"), tr)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, details)
}

func (s *Server) handleAgentUsageByUser(w http.ResponseWriter, r *http.Request) {
	tr, err := parseTimeRange(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	usage, err := s.service.GetAgentUsageByUser(r.Context(), chi.URLParam(r, "id"), tr)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, usage)
}

func (s *Server) handleAgentLeaderboard(w http.ResponseWriter, r *http.Request) {
	tr, page, err := parseListParams(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}
	limit, err := parseIntParam(r.URL.Query().Get("top"))
	if err != nil {
		JSONError(w, NewBadRequest(fmt.Sprintf("invalid top: %v", err)))
		return
	}

	result, err := s.service.GetAgentLeaderboard(r.Context(), tr, limit, page)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, result)
}

func (s *Server) handleRecentSessions(w http.ResponseWriter, r *http.Request) {
	tr, page, err := parseListParams(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	q := r.URL.Query()
	filters := service.SessionFilters{
		UserID:       q.Get("user_id"),
		AgentID:      q.Get("agent_id"),
		DepartmentID: q.Get("department_id"),
		TimeRange:    tr,
	}
	if v := q.Get("status"); v != "" {
		filters.Status = models.ParseSessionStatus(v)
	}
	if v := q.Get("min_cost"); v != "" {
		cost, err := parseFloatParam(v)
		if err != nil {
			JSONError(w, NewBadRequest(fmt.Sprintf("invalid min_cost: %v", err)))
			return
		}
		filters.MinCost = &cost
	}
	if v := q.Get("max_cost"); v != "" {
		cost, err := parseFloatParam(v)
		if err != nil {
			JSONError(w, NewBadRequest(fmt.Sprintf("invalid max_cost: %v", err)))
			return
		}
		filters.MaxCost = &cost
	}

	result, err := s.service.GetRecentSessions(r.Context(), filters, page)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, result)
}

func (s *Server) handleSessionDetails(w http.ResponseWriter, r *http.Request) {
	details, err := s.service.GetSessionDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, details)
}

func (s *Server) handleUsageTrends(w http.ResponseWriter, r *http.Request) {
	tr, err := parseTimeRange(r)
	if err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	q := r.URL.Query()
	filters := models.FilterState{
		TimeRange:   tr,
		Departments: q["department"],
		Users:       q["user"],
		Agents:      q["agent"],
	}

	trends, err := s.service.GetUsageTrends(r.Context(), filters)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, trends)
}

// exportRequest is the POST /export body.
type exportRequest struct {
	Filters models.FilterState `json:"filters"`
	Format  string             `json:"format"`
	Details bool               `json:"include_details"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	result, err := s.service.Export(r.Context(), req.Filters, service.ExportOptions{
		Format:         service.ParseExportFormat(req.Format),
		IncludeDetails: req.Details,
	})
	if err != nil {
		JSONError(w, fromService(err))
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// queryRequest is the POST /query body.
type queryRequest struct {
	Filters models.FilterState   `json:"filters"`
	Page    *service.PageRequest `json:"page,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(r, &req); err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	data, err := s.service.GetFilteredData(r.Context(), req.Filters, req.Page)
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, data)
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.GetFilterOptions(r.Context())
	if err != nil {
		JSONError(w, fromService(err))
		return
	}
	OK(w, opts)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	st := s.service.Store()
	st.Regenerate()
	metrics.DatasetRegenerations.Inc()

	counts := st.DataSummary()
	metrics.DatasetEntities.WithLabelValues("departments").Set(float64(counts.Departments))
	metrics.DatasetEntities.WithLabelValues("users").Set(float64(counts.Users))
	metrics.DatasetEntities.WithLabelValues("agents").Set(float64(counts.Agents))
	metrics.DatasetEntities.WithLabelValues("sessions").Set(float64(counts.Sessions))

	OK(w, counts)
}

// simulationRequest is the POST /dataset/simulation body.
type simulationRequest struct {
	Enabled bool    `json:"enabled"`
	Rate    float64 `json:"rate"`
}

func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := decodeBody(r, &req); err != nil {
		JSONError(w, NewBadRequest(err.Error()))
		return
	}

	s.service.SetErrorSimulation(req.Enabled, req.Rate)
	enabled, rate := s.service.ErrorSimulation()
	OK(w, simulationRequest{Enabled: enabled, Rate: rate})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	OK(w, s.service.HealthCheck(r.Context()))
}

func parseListParams(r *http.Request) (models.TimeRange, *service.PageRequest, error) {
	tr, err := parseTimeRange(r)
	if err != nil {
		return tr, nil, err
	}
	page, err := parsePage(r)
	if err != nil {
		return tr, nil, err
	}
	return tr, page, nil
}
