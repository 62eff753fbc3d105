package models

import "time"

// SessionStatus is the terminal state of a session.
type SessionStatus string

const (
	SessionSuccess SessionStatus = "success"
	SessionError   SessionStatus = "error"
	SessionTimeout SessionStatus = "timeout"
)

// ParseSessionStatus converts a string to SessionStatus.
// Unknown values default to success.
func ParseSessionStatus(s string) SessionStatus {
	switch s {
	case "error":
		return SessionError
	case "timeout":
		return SessionTimeout
	default:
		return SessionSuccess
	}
}

// Session is one agent invocation: the base fact record every
// time-series and trend aggregate derives from.
//
// AgentID is the canonical link; AgentName is denormalized for display.
type Session struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	UserID     string        `json:"user_id"`
	AgentID    string        `json:"agent_id"`
	AgentName  string        `json:"agent_name"`
	Cost       float64       `json:"cost"`
	TokenCount int           `json:"token_count"`
	Duration   int           `json:"duration"` // seconds
	Status     SessionStatus `json:"status"`
}
