package store

import (
	"testing"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/generator"
	"github.com/raja-kanniappa/agentlens/internal/models"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewWithSeed(99, generator.Options{DepartmentCount: 3, Now: testNow})
}

func TestGettersReturnDefensiveCopies(t *testing.T) {
	s := testStore(t)

	depts := s.Departments()
	if len(depts) == 0 {
		t.Fatal("no departments generated")
	}
	original := depts[0].Name

	depts[0].Name = "mutated"
	if got := s.Departments()[0].Name; got != original {
		t.Errorf("store observed external mutation: %q", got)
	}

	sessions := s.Sessions()
	if len(sessions) == 0 {
		t.Fatal("no sessions generated")
	}
	sessions[0].Cost = -1
	if got := s.Sessions()[0].Cost; got < 0 {
		t.Error("store observed session mutation")
	}
}

func TestRepeatedReadsAreConsistent(t *testing.T) {
	s := testStore(t)

	first := s.Sessions()
	second := s.Sessions()
	if len(first) != len(second) {
		t.Fatalf("read sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("session order differs at %d without regeneration", i)
		}
	}
}

func TestRegenerateReplacesDataset(t *testing.T) {
	s := testStore(t)

	before := s.Sessions()
	s.Regenerate()
	after := s.Sessions()

	// A fresh pass draws new random values; identical outputs would mean
	// the dataset was not actually replaced.
	if len(before) == len(after) {
		same := true
		for i := range before {
			if before[i].Cost != after[i].Cost {
				same = false
				break
			}
		}
		if same {
			t.Error("regeneration produced an identical session set")
		}
	}

	// Indexes must be rebuilt against the new pass.
	for _, d := range s.Departments() {
		if _, ok := s.FindDepartment(d.ID); !ok {
			t.Errorf("department %s missing from index after regeneration", d.ID)
		}
	}
}

func TestFindHelpers(t *testing.T) {
	s := testStore(t)

	u := s.Users()[0]
	found, ok := s.FindUser(u.ID)
	if !ok || found.ID != u.ID {
		t.Fatalf("FindUser(%s) = %v, %v", u.ID, found.ID, ok)
	}

	if _, ok := s.FindUser("nonexistent-id"); ok {
		t.Error("FindUser resolved a nonexistent id")
	}

	a := s.Agents()[0]
	byName, ok := s.FindAgentByName(a.Name)
	if !ok || byName.ID != a.ID {
		t.Fatalf("FindAgentByName(%s) = %v, %v", a.Name, byName.ID, ok)
	}
}

func TestUsersByDepartment(t *testing.T) {
	s := testStore(t)

	for _, d := range s.Departments() {
		users := s.UsersByDepartment(d.ID)
		if len(users) != d.TotalUsers {
			t.Errorf("department %s: %d users, declared %d", d.ID, len(users), d.TotalUsers)
		}
		for _, u := range users {
			if u.DepartmentID != d.ID {
				t.Errorf("user %s leaked into department %s", u.ID, d.ID)
			}
		}
	}
}

func TestSessionsInRange(t *testing.T) {
	s := testStore(t)

	tr := models.TimeRange{Start: testNow.Add(-24 * time.Hour), End: testNow}
	for _, sess := range s.SessionsInRange(tr) {
		if !tr.Contains(sess.Timestamp) {
			t.Fatalf("session %s at %v outside range", sess.ID, sess.Timestamp)
		}
	}
}

func TestBudgetUtilization(t *testing.T) {
	s := testStore(t)

	stats := s.BudgetUtilization()
	if stats.DepartmentCount != len(s.Departments()) {
		t.Errorf("department count %d", stats.DepartmentCount)
	}
	if stats.TotalBudget <= 0 || stats.TotalSpend <= 0 {
		t.Errorf("empty budget stats: %+v", stats)
	}
	want := stats.TotalSpend / stats.TotalBudget * 100
	if stats.Utilization != want {
		t.Errorf("utilization %.4f, want %.4f", stats.Utilization, want)
	}
}

func TestUserActivityBuckets(t *testing.T) {
	s := testStore(t)

	b := s.UserActivityBuckets()
	total := b.Zero + b.Light + b.Moderate + b.Heavy
	if total != len(s.Users()) {
		t.Errorf("buckets cover %d users, dataset has %d", total, len(s.Users()))
	}
}

func TestAgentTypeBreakdown(t *testing.T) {
	s := testStore(t)

	breakdown := s.AgentTypeBreakdown()
	if len(breakdown) != len(models.AgentTypes) {
		t.Fatalf("got %d type entries", len(breakdown))
	}

	agents := 0
	for _, st := range breakdown {
		agents += st.AgentCount
	}
	if agents != len(s.Agents()) {
		t.Errorf("breakdown covers %d agents, dataset has %d", agents, len(s.Agents()))
	}
}
