package models

import (
	"testing"
	"time"
)

func TestParseAgentType(t *testing.T) {
	tests := []struct {
		in   string
		want AgentType
	}{
		{"Pre-built", AgentTypePrebuilt},
		{"prebuilt", AgentTypePrebuilt},
		{"DIY", AgentTypeDIY},
		{"Foundation", AgentTypeFoundation},
		{"foundation", AgentTypeFoundation},
		{"garbage", AgentTypeDIY},
	}

	for _, tt := range tests {
		if got := ParseAgentType(tt.in); got != tt.want {
			t.Errorf("ParseAgentType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in   string
		want Granularity
	}{
		{"hourly", GranularityHourly},
		{"daily", GranularityDaily},
		{"weekly", GranularityWeekly},
		{"", GranularityDaily},
		{"monthly", GranularityDaily},
	}

	for _, tt := range tests {
		if got := ParseGranularity(tt.in); got != tt.want {
			t.Errorf("ParseGranularity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGranularityBucket(t *testing.T) {
	ts := time.Date(2026, 8, 26, 15, 42, 7, 0, time.UTC) // a Wednesday

	tests := []struct {
		name string
		g    Granularity
		want time.Time
	}{
		{"hourly", GranularityHourly, time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)},
		{"daily", GranularityDaily, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)},
		{"weekly starts monday", GranularityWeekly, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.Bucket(ts); !got.Equal(tt.want) {
				t.Errorf("Bucket() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeRangeContains(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 7, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name string
		tr   TimeRange
		ts   time.Time
		want bool
	}{
		{"inside", TimeRange{Start: start, End: end}, start.Add(24 * time.Hour), true},
		{"on start bound", TimeRange{Start: start, End: end}, start, true},
		{"on end bound", TimeRange{Start: start, End: end}, end, true},
		{"before", TimeRange{Start: start, End: end}, start.Add(-time.Second), false},
		{"after", TimeRange{Start: start, End: end}, end.Add(time.Second), false},
		{"open start", TimeRange{End: end}, start.AddDate(-1, 0, 0), true},
		{"open end", TimeRange{Start: start}, end.AddDate(1, 0, 0), true},
		{"zero range matches all", TimeRange{}, time.Now(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Contains(tt.ts); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestDepartmentBudgetUtilization(t *testing.T) {
	d := Department{WeeklyBudget: 500, CurrentSpend: 450}
	if got := d.BudgetUtilization(); got != 90.0 {
		t.Errorf("BudgetUtilization() = %v, want 90.0", got)
	}

	zero := Department{WeeklyBudget: 0, CurrentSpend: 100}
	if got := zero.BudgetUtilization(); got != 0 {
		t.Errorf("BudgetUtilization() with zero budget = %v, want 0", got)
	}
}
