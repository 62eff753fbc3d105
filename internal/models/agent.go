package models

// AgentType classifies how an agent was built.
type AgentType string

const (
	AgentTypePrebuilt   AgentType = "Pre-built"
	AgentTypeDIY        AgentType = "DIY"
	AgentTypeFoundation AgentType = "Foundation"
)

// AgentTypes lists all agent types in display order.
var AgentTypes = []AgentType{AgentTypePrebuilt, AgentTypeDIY, AgentTypeFoundation}

// ParseAgentType converts a string to AgentType.
// Unknown values default to DIY.
func ParseAgentType(s string) AgentType {
	switch s {
	case "Pre-built", "pre-built", "prebuilt":
		return AgentTypePrebuilt
	case "DIY", "diy":
		return AgentTypeDIY
	case "Foundation", "foundation":
		return AgentTypeFoundation
	default:
		return AgentTypeDIY
	}
}

// Agent is a usage snapshot for one AI agent.
type Agent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         AgentType `json:"type"`
	WeeklySpend  float64   `json:"weekly_spend"`
	RequestCount int       `json:"request_count"`
	AverageCost  float64   `json:"average_cost"`

	// PopularityRank is 1-based and unique, assigned by descending
	// weekly spend across the whole agent set.
	PopularityRank int `json:"popularity_rank"`
}
