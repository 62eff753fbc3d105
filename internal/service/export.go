package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/metrics"
	"github.com/raja-kanniappa/agentlens/internal/models"
)

// ExportFormat selects the serialization for an export run.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat converts a string to ExportFormat. Unknown values
// default to CSV, the dashboard's download default.
func ParseExportFormat(s string) ExportFormat {
	if s == "json" {
		return ExportJSON
	}
	return ExportCSV
}

// ExportOptions tunes an export run.
type ExportOptions struct {
	Format ExportFormat `json:"format"`

	// IncludeDetails adds per-session records to entity exports. Nested
	// entity fields (agent breakdowns, trend points) are flattened to
	// JSON strings in CSV output whether or not details are requested;
	// the flag only controls the extra session rows.
	IncludeDetails bool `json:"include_details"`

	// FilenamePrefix defaults to "agentlens".
	FilenamePrefix string `json:"filename_prefix,omitempty"`
}

// ExportResult is the serialized payload plus download metadata.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
	RecordCount int    `json:"record_count"`
}

// exportRecord is one flat output row. Keys remembers first-appearance
// order so CSV columns and JSON fields come out in a stable, meaningful
// order instead of Go's randomized map iteration.
type exportRecord struct {
	keys   []string
	values map[string]any
}

func newExportRecord() *exportRecord {
	return &exportRecord{values: make(map[string]any)}
}

func (r *exportRecord) set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// MarshalJSON emits fields in insertion order.
func (r *exportRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Export serializes the filtered dataset. With entity filters set it
// emits one record per matching entity; without them it emits a single
// summary record over the whole dataset.
func (s *Service) Export(ctx context.Context, filters models.FilterState, opts ExportOptions) (*ExportResult, error) {
	defer s.observe("export")()
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if opts.Format == "" {
		opts.Format = ExportCSV
	}
	metrics.ExportsTotal.WithLabelValues(string(opts.Format)).Inc()

	var records []*exportRecord
	if filters.HasEntityFilters() {
		records = s.buildEntityRecords(filters, opts.IncludeDetails)
	} else {
		records = []*exportRecord{s.buildSummaryRecord(filters)}
	}

	prefix := opts.FilenamePrefix
	if prefix == "" {
		prefix = "agentlens"
	}
	stamp := time.Now().UnixMilli()

	switch opts.Format {
	case ExportJSON:
		data, err := marshalRecordsJSON(records)
		if err != nil {
			return nil, fmt.Errorf("encoding export: %w", err)
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s-export-%d.json", prefix, stamp),
			ContentType: "application/json",
			Data:        data,
			RecordCount: len(records),
		}, nil
	default:
		data, err := marshalRecordsCSV(records)
		if err != nil {
			return nil, fmt.Errorf("encoding export: %w", err)
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("%s-export-%d.csv", prefix, stamp),
			ContentType: "text/csv",
			Data:        data,
			RecordCount: len(records),
		}, nil
	}
}

func (s *Service) buildEntityRecords(filters models.FilterState, includeDetails bool) []*exportRecord {
	var records []*exportRecord

	deptSet := stringSet(filters.Departments)
	for _, d := range s.store.Departments() {
		if deptSet == nil || !deptSet[d.ID] {
			continue
		}
		rec := newExportRecord()
		rec.set("entity_type", "department")
		rec.set("id", d.ID)
		rec.set("name", d.Name)
		rec.set("weekly_budget", d.WeeklyBudget)
		rec.set("current_spend", d.CurrentSpend)
		rec.set("projected_spend", d.ProjectedSpend)
		rec.set("budget_utilization", d.BudgetUtilization())
		rec.set("active_users", d.ActiveUsers)
		rec.set("total_users", d.TotalUsers)
		records = append(records, rec)
	}

	userSet := s.resolveUserSet(filters)
	if userSet != nil {
		for _, u := range s.store.Users() {
			if !userSet[u.ID] {
				continue
			}
			rec := newExportRecord()
			rec.set("entity_type", "user")
			rec.set("id", u.ID)
			rec.set("name", u.Name)
			rec.set("email", u.Email)
			rec.set("department", u.Department)
			rec.set("weekly_spend", u.WeeklySpend)
			rec.set("request_count", u.RequestCount)
			rec.set("agent_breakdown", u.AgentBreakdown)
			records = append(records, rec)
		}
	}

	agentSet := stringSet(filters.Agents)
	for _, a := range s.store.Agents() {
		if agentSet == nil || (!agentSet[a.ID] && !agentSet[a.Name]) {
			continue
		}
		rec := newExportRecord()
		rec.set("entity_type", "agent")
		rec.set("id", a.ID)
		rec.set("name", a.Name)
		rec.set("type", string(a.Type))
		rec.set("weekly_spend", a.WeeklySpend)
		rec.set("request_count", a.RequestCount)
		rec.set("average_cost", a.AverageCost)
		rec.set("popularity_rank", a.PopularityRank)
		records = append(records, rec)
	}

	if includeDetails {
		for _, sess := range s.filterSessions(filters) {
			rec := newExportRecord()
			rec.set("entity_type", "session")
			rec.set("id", sess.ID)
			rec.set("timestamp", sess.Timestamp.Format(time.RFC3339))
			rec.set("user_id", sess.UserID)
			rec.set("agent_name", sess.AgentName)
			rec.set("cost", sess.Cost)
			rec.set("token_count", sess.TokenCount)
			rec.set("duration_seconds", sess.Duration)
			rec.set("status", string(sess.Status))
			records = append(records, rec)
		}
	}

	return records
}

func (s *Service) buildSummaryRecord(filters models.FilterState) *exportRecord {
	budget := s.store.BudgetUtilization()
	counts := s.store.DataSummary()
	sessions := s.filterSessions(filters)

	var totalCost float64
	var totalTokens int
	for _, sess := range sessions {
		totalCost += sess.Cost
		totalTokens += sess.TokenCount
	}

	rec := newExportRecord()
	rec.set("entity_type", "summary")
	rec.set("generated_at", s.store.GeneratedAt().Format(time.RFC3339))
	rec.set("departments", counts.Departments)
	rec.set("users", counts.Users)
	rec.set("agents", counts.Agents)
	rec.set("sessions", len(sessions))
	rec.set("total_session_cost", totalCost)
	rec.set("total_tokens", totalTokens)
	rec.set("total_budget", budget.TotalBudget)
	rec.set("total_spend", budget.TotalSpend)
	rec.set("budget_utilization", budget.Utilization)
	return rec
}

func marshalRecordsJSON(records []*exportRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalRecordsCSV writes one header row whose columns are the union of
// every record's keys in first-appearance order, then one row per
// record. encoding/csv handles quoting for values containing commas.
func marshalRecordsCSV(records []*exportRecord) ([]byte, error) {
	var header []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, key := range rec.keys {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			value, ok := rec.values[key]
			if !ok {
				row[i] = ""
				continue
			}
			row[i] = csvCell(value)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvCell flattens a value to its CSV text. Nested structures are
// JSON-stringified; nil becomes the empty cell.
func csvCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
