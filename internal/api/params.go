package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/models"
	"github.com/raja-kanniappa/agentlens/internal/service"
)

// parseTimeRange reads start/end/granularity query params. Timestamps
// accept RFC3339 or bare YYYY-MM-DD dates; an end date without a time
// component extends to the end of that day.
func parseTimeRange(r *http.Request) (models.TimeRange, error) {
	q := r.URL.Query()

	tr := models.TimeRange{
		Granularity: models.ParseGranularity(q.Get("granularity")),
	}

	if v := q.Get("start"); v != "" {
		ts, _, err := parseTimestamp(v)
		if err != nil {
			return tr, fmt.Errorf("invalid start: %w", err)
		}
		tr.Start = ts
	}
	if v := q.Get("end"); v != "" {
		ts, dateOnly, err := parseTimestamp(v)
		if err != nil {
			return tr, fmt.Errorf("invalid end: %w", err)
		}
		if dateOnly {
			ts = ts.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		tr.End = ts
	}

	return tr, nil
}

func parseTimestamp(v string) (ts time.Time, dateOnly bool, err error) {
	if ts, err = time.Parse(time.RFC3339, v); err == nil {
		return ts, false, nil
	}
	if ts, err = time.Parse("2006-01-02", v); err == nil {
		return ts, true, nil
	}
	return time.Time{}, false, fmt.Errorf("want RFC3339 or YYYY-MM-DD, got %q", v)
}

// parsePage reads page/limit/sort_by/sort_order query params.
func parsePage(r *http.Request) (*service.PageRequest, error) {
	q := r.URL.Query()
	req := &service.PageRequest{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	var err error
	if req.Page, err = parseIntParam(q.Get("page")); err != nil {
		return nil, fmt.Errorf("invalid page: %w", err)
	}
	if req.Limit, err = parseIntParam(q.Get("limit")); err != nil {
		return nil, fmt.Errorf("invalid limit: %w", err)
	}
	return req, nil
}

func parseIntParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("want an integer, got %q", v)
	}
	return n, nil
}

func parseFloatParam(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("want a number, got %q", v)
	}
	return f, nil
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
