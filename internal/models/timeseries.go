package models

import "time"

// TimeSeriesPoint is a materialized daily aggregate over the session set.
// It is recomputable at any time and never hand-edited.
type TimeSeriesPoint struct {
	// Timestamp is truncated to the bucket boundary (UTC).
	Timestamp    time.Time `json:"timestamp"`
	Cost         float64   `json:"cost"`
	RequestCount int       `json:"request_count"`

	// UserCount is the number of distinct session users in the bucket.
	UserCount int `json:"user_count"`
}
