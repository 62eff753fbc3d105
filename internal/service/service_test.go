package service

import (
	"context"
	"testing"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/generator"
	"github.com/raja-kanniappa/agentlens/internal/models"
	"github.com/raja-kanniappa/agentlens/internal/store"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

// newTestService builds a service over a fixed-seed dataset with the
// latency band disabled.
func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.NewWithSeed(42, generator.Options{DepartmentCount: 4, Now: testNow})
	return New(st, nil)
}

func TestGetDepartmentSummary(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.GetDepartmentSummary(context.Background(), models.TimeRange{})
	if err != nil {
		t.Fatalf("GetDepartmentSummary: %v", err)
	}

	if summary.DepartmentCount != 4 {
		t.Errorf("departmentCount = %d, want 4", summary.DepartmentCount)
	}
	if len(summary.Departments) != 4 {
		t.Errorf("departments len = %d, want 4", len(summary.Departments))
	}

	var wantSpend, wantBudget float64
	for _, d := range summary.Departments {
		wantSpend += d.CurrentSpend
		wantBudget += d.WeeklyBudget
	}
	if summary.TotalSpend != wantSpend {
		t.Errorf("totalSpend = %v, want %v", summary.TotalSpend, wantSpend)
	}
	if wantBudget > 0 {
		want := wantSpend / wantBudget * 100
		if summary.BudgetUtilization != want {
			t.Errorf("budgetUtilization = %v, want %v", summary.BudgetUtilization, want)
		}
	}
}

func TestGetDepartmentSummaryAlertCount(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.GetDepartmentSummary(context.Background(), models.TimeRange{})
	if err != nil {
		t.Fatalf("GetDepartmentSummary: %v", err)
	}

	known := make(map[string]bool)
	for _, d := range svc.Store().Departments() {
		known[d.ID] = true
	}
	wantAlerts := 0
	alerted := make(map[string]bool)
	for _, a := range svc.Store().Alerts() {
		if known[a.DepartmentID] {
			wantAlerts++
			alerted[a.DepartmentID] = true
		}
	}

	// The count is over alerts, not over departments carrying alerts.
	// Usage alerts make several per department, so the two disagree.
	if summary.AlertCount != wantAlerts {
		t.Errorf("alertCount = %d, want %d", summary.AlertCount, wantAlerts)
	}
	if wantAlerts > len(alerted) && summary.AlertCount == len(alerted) {
		t.Errorf("alertCount = %d counts departments, want %d alerts", summary.AlertCount, wantAlerts)
	}
}

func TestGetDepartmentComparisonDefaultSort(t *testing.T) {
	svc := newTestService(t)

	page, err := svc.GetDepartmentComparison(context.Background(), models.TimeRange{}, nil)
	if err != nil {
		t.Fatalf("GetDepartmentComparison: %v", err)
	}

	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].CurrentSpend > page.Items[i-1].CurrentSpend {
			t.Fatalf("departments not in descending spend order at %d", i)
		}
	}
}

func TestGetUsersByDepartmentUnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetUsersByDepartment(context.Background(), "nonexistent-id", models.TimeRange{}, nil)
	serr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if serr.Code != CodeNotFound {
		t.Errorf("code = %s, want %s", serr.Code, CodeNotFound)
	}
}

func TestGetUsersByDepartment(t *testing.T) {
	svc := newTestService(t)
	dept := svc.Store().Departments()[0]

	page, err := svc.GetUsersByDepartment(context.Background(), dept.ID, models.TimeRange{}, &PageRequest{Limit: 100})
	if err != nil {
		t.Fatalf("GetUsersByDepartment: %v", err)
	}

	if page.Total != dept.TotalUsers {
		t.Errorf("total = %d, want %d", page.Total, dept.TotalUsers)
	}
	for _, u := range page.Items {
		if u.DepartmentID != dept.ID {
			t.Errorf("user %s has departmentID %s, want %s", u.ID, u.DepartmentID, dept.ID)
		}
	}
}

func TestGetUserDetails(t *testing.T) {
	svc := newTestService(t)
	user := svc.Store().Users()[0]

	details, err := svc.GetUserDetails(context.Background(), user.ID, models.TimeRange{})
	if err != nil {
		t.Fatalf("GetUserDetails: %v", err)
	}

	if details.User.ID != user.ID {
		t.Errorf("user id = %s, want %s", details.User.ID, user.ID)
	}
	if len(details.CostTrend) != 7 {
		t.Errorf("costTrend len = %d, want 7", len(details.CostTrend))
	}
	for _, p := range details.CostTrend {
		if p.UserCount != 1 {
			t.Errorf("costTrend userCount = %d, want 1", p.UserCount)
		}
	}
	if len(details.RecentActivity) > recentActivityLimit {
		t.Errorf("recentActivity len = %d, over cap %d", len(details.RecentActivity), recentActivityLimit)
	}
	for _, sess := range details.RecentActivity {
		if sess.UserID != user.ID {
			t.Errorf("activity session %s belongs to %s", sess.ID, sess.UserID)
		}
	}
}

func TestGetUserDetailsUnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetUserDetails(context.Background(), "nonexistent-id", models.TimeRange{})
	serr, ok := err.(*Error)
	if !ok || serr.Code != CodeNotFound {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}

func TestGetAgentLeaderboard(t *testing.T) {
	svc := newTestService(t)

	page, err := svc.GetAgentLeaderboard(context.Background(), models.TimeRange{}, 5, nil)
	if err != nil {
		t.Fatalf("GetAgentLeaderboard: %v", err)
	}

	if page.Total != 5 {
		t.Errorf("total = %d, want leaderboard truncated to 5", page.Total)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].WeeklySpend > page.Items[i-1].WeeklySpend {
			t.Fatalf("leaderboard not descending at %d", i)
		}
	}
}

func TestGetRecentSessionsFilters(t *testing.T) {
	svc := newTestService(t)

	// Find a user with sessions to key the filters on.
	var user models.User
	for _, u := range svc.Store().Users() {
		if len(u.RecentSessions) > 0 {
			user = u
			break
		}
	}
	if user.ID == "" {
		t.Fatal("fixture has no user with sessions")
	}

	page, err := svc.GetRecentSessions(context.Background(), SessionFilters{UserID: user.ID}, &PageRequest{Limit: 500})
	if err != nil {
		t.Fatalf("GetRecentSessions: %v", err)
	}
	if page.Total == 0 {
		t.Fatal("user filter matched no sessions")
	}
	for i, sess := range page.Items {
		if sess.UserID != user.ID {
			t.Errorf("session %s belongs to %s, want %s", sess.ID, sess.UserID, user.ID)
		}
		if i > 0 && sess.Timestamp.After(page.Items[i-1].Timestamp) {
			t.Fatalf("sessions not descending at %d", i)
		}
	}

	minCost := 0.05
	costPage, err := svc.GetRecentSessions(context.Background(), SessionFilters{MinCost: &minCost}, &PageRequest{Limit: 500})
	if err != nil {
		t.Fatalf("GetRecentSessions: %v", err)
	}
	for _, sess := range costPage.Items {
		if sess.Cost < minCost {
			t.Errorf("session %s cost %v under minCost %v", sess.ID, sess.Cost, minCost)
		}
	}

	statusPage, err := svc.GetRecentSessions(context.Background(), SessionFilters{Status: models.SessionError}, &PageRequest{Limit: 500})
	if err != nil {
		t.Fatalf("GetRecentSessions: %v", err)
	}
	for _, sess := range statusPage.Items {
		if sess.Status != models.SessionError {
			t.Errorf("session %s status %s, want error", sess.ID, sess.Status)
		}
	}
}

func TestGetRecentSessionsUnknownEntityIsEmpty(t *testing.T) {
	svc := newTestService(t)

	page, err := svc.GetRecentSessions(context.Background(), SessionFilters{UserID: "nonexistent-id"}, nil)
	if err != nil {
		t.Fatalf("GetRecentSessions: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("total = %d, want 0 for unknown user", page.Total)
	}
}

func TestGetSessionDetails(t *testing.T) {
	svc := newTestService(t)
	sess := svc.Store().Sessions()[0]

	details, err := svc.GetSessionDetails(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("GetSessionDetails: %v", err)
	}

	if details.Session.ID != sess.ID {
		t.Errorf("session id = %s, want %s", details.Session.ID, sess.ID)
	}
	if details.UserInfo.ID != sess.UserID {
		t.Errorf("userInfo id = %s, want %s", details.UserInfo.ID, sess.UserID)
	}
	if details.AgentInfo.ID != sess.AgentID {
		t.Errorf("agentInfo id = %s, want %s", details.AgentInfo.ID, sess.AgentID)
	}
	if len(details.RelatedSessions) > relatedSessionLimit {
		t.Errorf("related len = %d, over cap %d", len(details.RelatedSessions), relatedSessionLimit)
	}
	for _, rel := range details.RelatedSessions {
		if rel.ID == sess.ID {
			t.Error("related sessions include the session itself")
		}
		if rel.UserID != sess.UserID || rel.AgentID != sess.AgentID {
			t.Errorf("related session %s has a different user or agent", rel.ID)
		}
		gap := rel.Timestamp.Sub(sess.Timestamp)
		if gap < 0 {
			gap = -gap
		}
		if gap > relatedSessionWindow {
			t.Errorf("related session %s is %v away", rel.ID, gap)
		}
	}
}

func TestGetUsageTrendsSummary(t *testing.T) {
	svc := newTestService(t)

	trends, err := svc.GetUsageTrends(context.Background(), models.FilterState{})
	if err != nil {
		t.Fatalf("GetUsageTrends: %v", err)
	}
	if len(trends.Points) == 0 {
		t.Fatal("no trend points over the full dataset")
	}

	var wantCost float64
	var wantRequests int
	var peak models.TimeSeriesPoint
	for _, p := range trends.Points {
		wantCost += p.Cost
		wantRequests += p.RequestCount
		if p.Cost > peak.Cost {
			peak = p
		}
	}

	if trends.Summary.TotalCost != wantCost {
		t.Errorf("totalCost = %v, want %v", trends.Summary.TotalCost, wantCost)
	}
	if trends.Summary.TotalRequests != wantRequests {
		t.Errorf("totalRequests = %d, want %d", trends.Summary.TotalRequests, wantRequests)
	}
	if wantRequests > 0 {
		want := wantCost / float64(wantRequests)
		if trends.Summary.AverageCostPerRequest != want {
			t.Errorf("averageCostPerRequest = %v, want %v", trends.Summary.AverageCostPerRequest, want)
		}
	}
	if !trends.Summary.PeakUsageDate.Equal(peak.Timestamp) {
		t.Errorf("peakUsageDate = %v, want %v", trends.Summary.PeakUsageDate, peak.Timestamp)
	}
}

func TestGetUsageTrendsDepartmentFilter(t *testing.T) {
	svc := newTestService(t)
	dept := svc.Store().Departments()[0]

	all, err := svc.GetUsageTrends(context.Background(), models.FilterState{})
	if err != nil {
		t.Fatalf("GetUsageTrends: %v", err)
	}
	filtered, err := svc.GetUsageTrends(context.Background(), models.FilterState{
		Departments: []string{dept.ID},
	})
	if err != nil {
		t.Fatalf("GetUsageTrends filtered: %v", err)
	}

	if filtered.Summary.TotalCost > all.Summary.TotalCost {
		t.Errorf("filtered cost %v exceeds unfiltered %v", filtered.Summary.TotalCost, all.Summary.TotalCost)
	}
}

func TestGetFilteredDataCascade(t *testing.T) {
	svc := newTestService(t)
	dept := svc.Store().Departments()[0]

	data, err := svc.GetFilteredData(context.Background(), models.FilterState{
		Departments: []string{dept.ID},
	}, &PageRequest{Limit: 500})
	if err != nil {
		t.Fatalf("GetFilteredData: %v", err)
	}

	if data.Departments.Total != 1 {
		t.Errorf("departments total = %d, want 1", data.Departments.Total)
	}
	for _, u := range data.Users.Items {
		if u.DepartmentID != dept.ID {
			t.Errorf("user %s leaked from department %s", u.ID, u.DepartmentID)
		}
	}

	members := make(map[string]bool)
	for _, u := range data.Users.Items {
		members[u.ID] = true
	}
	for _, sess := range data.Sessions.Items {
		if !members[sess.UserID] {
			t.Errorf("session %s belongs to non-member user %s", sess.ID, sess.UserID)
		}
	}
}

func TestGetFilterOptionsPresets(t *testing.T) {
	svc := newTestService(t)

	opts, err := svc.GetFilterOptions(context.Background())
	if err != nil {
		t.Fatalf("GetFilterOptions: %v", err)
	}

	if len(opts.Presets) != 3 {
		t.Fatalf("presets len = %d, want 3", len(opts.Presets))
	}
	wantDays := []int{7, 30, 90}
	wantGran := []models.Granularity{models.GranularityDaily, models.GranularityDaily, models.GranularityWeekly}
	for i, p := range opts.Presets {
		if p.Days != wantDays[i] || p.Granularity != wantGran[i] {
			t.Errorf("preset %d = %d days %s, want %d days %s", i, p.Days, p.Granularity, wantDays[i], wantGran[i])
		}
	}

	counts := svc.Store().DataSummary()
	if len(opts.Departments) != counts.Departments {
		t.Errorf("department options = %d, want %d", len(opts.Departments), counts.Departments)
	}
	if len(opts.Users) != counts.Users {
		t.Errorf("user options = %d, want %d", len(opts.Users), counts.Users)
	}
}

func TestHealthCheck(t *testing.T) {
	svc := newTestService(t)

	health := svc.HealthCheck(context.Background())
	if health.Status != "healthy" {
		t.Errorf("status = %s, want healthy", health.Status)
	}
	if health.Data.Departments != 4 {
		t.Errorf("data.departments = %d, want 4", health.Data.Departments)
	}
}
