package models

import "time"

// AlertType represents the category of a derived alert.
type AlertType string

const (
	AlertTypeBudget AlertType = "budget"
	AlertTypeUsage  AlertType = "usage"
	AlertTypeError  AlertType = "error"
)

// Severity represents alert severity level.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseAlertType converts a string to AlertType.
func ParseAlertType(s string) AlertType {
	switch s {
	case "budget":
		return AlertTypeBudget
	case "usage":
		return AlertTypeUsage
	case "error":
		return AlertTypeError
	default:
		return AlertTypeUsage
	}
}

// ParseSeverity converts a string to Severity.
func ParseSeverity(s string) Severity {
	switch s {
	case "low":
		return SeverityLow
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// Alert is derived from threshold evaluation over department and user
// snapshots during a generation pass; it is never authored directly.
type Alert struct {
	ID           string    `json:"id"`
	Type         AlertType `json:"type"`
	Severity     Severity  `json:"severity"`
	Message      string    `json:"message"`
	DepartmentID string    `json:"department_id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
