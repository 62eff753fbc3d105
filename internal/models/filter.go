package models

import "time"

// Granularity is the time-bucket size used when grouping series data.
type Granularity string

const (
	GranularityHourly Granularity = "hourly"
	GranularityDaily  Granularity = "daily"
	GranularityWeekly Granularity = "weekly"
)

// ParseGranularity converts a string to Granularity.
// Unknown values default to daily.
func ParseGranularity(s string) Granularity {
	switch s {
	case "hourly":
		return GranularityHourly
	case "daily":
		return GranularityDaily
	case "weekly":
		return GranularityWeekly
	default:
		return GranularityDaily
	}
}

// Bucket truncates a timestamp to the granularity boundary in UTC.
// Weekly buckets start on Monday.
func (g Granularity) Bucket(ts time.Time) time.Time {
	ts = ts.UTC()
	switch g {
	case GranularityHourly:
		return ts.Truncate(time.Hour)
	case GranularityWeekly:
		day := ts.Truncate(24 * time.Hour)
		offset := (int(day.Weekday()) + 6) % 7 // days since Monday
		return day.AddDate(0, 0, -offset)
	default:
		return ts.Truncate(24 * time.Hour)
	}
}

// TimeRange bounds a query window. Both bounds are inclusive.
type TimeRange struct {
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Granularity Granularity `json:"granularity"`
}

// LastNDays returns a range covering the trailing n days ending at now.
func LastNDays(n int, g Granularity, now time.Time) TimeRange {
	return TimeRange{
		Start:       now.AddDate(0, 0, -n),
		End:         now,
		Granularity: g,
	}
}

// IsZero reports whether neither bound is set.
func (tr TimeRange) IsZero() bool {
	return tr.Start.IsZero() && tr.End.IsZero()
}

// Contains reports whether ts falls inside the range.
// Zero bounds are treated as open ends.
func (tr TimeRange) Contains(ts time.Time) bool {
	if !tr.Start.IsZero() && ts.Before(tr.Start) {
		return false
	}
	if !tr.End.IsZero() && ts.After(tr.End) {
		return false
	}
	return true
}

// FilterState is the query descriptor passed from the presentation layer.
// Empty slices mean "no restriction on that dimension".
type FilterState struct {
	TimeRange     TimeRange `json:"time_range"`
	Departments   []string  `json:"departments"`
	Projects      []string  `json:"projects"`
	Users         []string  `json:"users"`
	Agents        []string  `json:"agents"`
	CostThreshold *float64  `json:"cost_threshold,omitempty"`
}

// HasEntityFilters reports whether any entity dimension is restricted.
func (f FilterState) HasEntityFilters() bool {
	return len(f.Departments) > 0 || len(f.Users) > 0 || len(f.Agents) > 0
}
