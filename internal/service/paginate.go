package service

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Default and maximum page sizes shared by every paginated operation.
const (
	defaultPageSize = 20
	maxPageSize     = 500
)

// PageRequest selects a page and an optional stable sort.
type PageRequest struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"` // "asc" (default) or "desc"
}

func (r *PageRequest) normalized() PageRequest {
	out := PageRequest{Page: 1, Limit: defaultPageSize}
	if r != nil {
		out = *r
	}
	if out.Page < 1 {
		out.Page = 1
	}
	if out.Limit < 1 {
		out.Limit = defaultPageSize
	}
	if out.Limit > maxPageSize {
		out.Limit = maxPageSize
	}
	return out
}

// Page is a paginated result set.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// sortKeyFunc resolves a named sort field to a comparable value.
// The second return is false for unknown fields.
type sortKeyFunc[T any] func(item T, field string) (any, bool)

// paginate applies the shared pagination algorithm: optional stable sort
// by a named field, then the [(page-1)*limit, page*limit) slice.
func paginate[T any](items []T, req *PageRequest, key sortKeyFunc[T]) (Page[T], error) {
	r := req.normalized()

	if r.SortBy != "" && key != nil {
		field := normalizeField(r.SortBy)
		// Field names resolve against the zero value so a bad field is
		// rejected the same way on empty and non-empty result sets.
		var zero T
		if _, ok := key(zero, field); !ok {
			return Page[T]{}, NewBadRequest(fmt.Sprintf("unknown sort field: %s", r.SortBy))
		}
		desc := strings.EqualFold(r.SortOrder, "desc")
		sort.SliceStable(items, func(i, j int) bool {
			a, _ := key(items[i], field)
			b, _ := key(items[j], field)
			if desc {
				return compareValues(b, a)
			}
			return compareValues(a, b)
		})
	}

	total := len(items)
	totalPages := (total + r.Limit - 1) / r.Limit

	start := (r.Page - 1) * r.Limit
	end := start + r.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: totalPages,
		HasNext:    r.Page < totalPages,
		HasPrev:    r.Page > 1,
	}, nil
}

// normalizeField folds case and underscores so callers can pass either
// camelCase ("currentSpend") or snake_case ("current_spend") names.
func normalizeField(field string) string {
	return strings.ReplaceAll(strings.ToLower(field), "_", "")
}

// compareValues reports a < b for the value kinds sort fields produce:
// numbers, times, and case-insensitive strings.
func compareValues(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		return av < bv
	case int:
		bv, _ := b.(int)
		return av < bv
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv)
	case string:
		bv, _ := b.(string)
		return strings.ToLower(av) < strings.ToLower(bv)
	default:
		return false
	}
}
