package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{BaseURL: server.URL, RequestsPerSecond: 1000})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestListUsageQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"records":[],"total":0}`))
	})

	q := UsageQuery{
		Environment: EnvProduction,
		StartDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC),
		Limit:       50,
		Offset:      100,
	}
	if _, _, err := c.ListUsage(context.Background(), q); err != nil {
		t.Fatalf("ListUsage: %v", err)
	}

	tests := []struct {
		param string
		want  string
	}{
		{"environment", "Production"},
		{"start_date", "2026-08-01"},
		{"end_date", "2026-08-07"},
		{"limit", "50"},
		{"offset", "100"},
	}
	for _, tt := range tests {
		if got := gotQuery[tt.param]; len(got) != 1 || got[0] != tt.want {
			t.Errorf("param %s = %v, want %s", tt.param, got, tt.want)
		}
	}
}

func TestListUsageRejectsUnknownFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[],"total":0,"surprise":true}`))
	})

	_, _, err := c.ListUsage(context.Background(), UsageQuery{})
	if err == nil {
		t.Fatal("unknown response field decoded without error")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Errorf("error = %v, want schema mismatch", err)
	}
}

func TestListUsageValidatesRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[{"date":"2026-08-01","agent_name":"","total_cost":1,"total_tokens":10,"request_count":1}],"total":1}`))
	})

	_, _, err := c.ListUsage(context.Background(), UsageQuery{})
	if err == nil || !strings.Contains(err.Error(), "agent_name") {
		t.Errorf("err = %v, want missing agent_name", err)
	}
}

func TestListUsageErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	})

	_, _, err := c.ListUsage(context.Background(), UsageQuery{})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("err = %v, want status 502", err)
	}
}

func TestFetchAllUsagePages(t *testing.T) {
	pages := []string{
		`{"records":[{"date":"2026-08-01","agent_name":"a","total_cost":1,"total_tokens":10,"request_count":1},
		             {"date":"2026-08-01","agent_name":"b","total_cost":2,"total_tokens":20,"request_count":2}],"total":3}`,
		`{"records":[{"date":"2026-08-02","agent_name":"c","total_cost":3,"total_tokens":30,"request_count":3}],"total":3}`,
	}
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pages[calls]))
		calls++
	})

	records, err := c.FetchAllUsage(context.Background(), UsageQuery{Limit: 2})
	if err != nil {
		t.Fatalf("FetchAllUsage: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
}

func TestMapAgents(t *testing.T) {
	records := []UsageRecord{
		{Date: "2026-08-01", AgentName: "code-reviewer", AgentType: "Pre-built", TotalCost: 5, RequestCount: 10},
		{Date: "2026-08-02", AgentName: "code-reviewer", AgentType: "Pre-built", TotalCost: 15, RequestCount: 30},
		{Date: "2026-08-01", AgentName: "gpt-4o", AgentType: "Foundation", TotalCost: 8, RequestCount: 100},
	}

	agents := MapAgents(records)
	if len(agents) != 2 {
		t.Fatalf("got %d agents, want 2", len(agents))
	}

	top := agents[0]
	if top.Name != "code-reviewer" || top.WeeklySpend != 20 || top.RequestCount != 40 {
		t.Errorf("top agent = %+v", top)
	}
	if top.AverageCost != 0.5 {
		t.Errorf("averageCost = %v, want 0.5", top.AverageCost)
	}
	if top.PopularityRank != 1 || agents[1].PopularityRank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", top.PopularityRank, agents[1].PopularityRank)
	}
}

func TestMapTimeSeries(t *testing.T) {
	records := []UsageRecord{
		{Date: "2026-08-02", AgentName: "a", UserEmail: "x@corp.test", TotalCost: 3, RequestCount: 5},
		{Date: "2026-08-01", AgentName: "a", UserEmail: "x@corp.test", TotalCost: 1, RequestCount: 2},
		{Date: "2026-08-01", AgentName: "b", UserEmail: "y@corp.test", TotalCost: 2, RequestCount: 3},
	}

	points := MapTimeSeries(records)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if !points[0].Timestamp.Before(points[1].Timestamp) {
		t.Error("points not ascending by day")
	}
	first := points[0]
	if first.Cost != 3 || first.RequestCount != 5 || first.UserCount != 2 {
		t.Errorf("first day = %+v", first)
	}
}
