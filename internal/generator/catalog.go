package generator

import "github.com/raja-kanniappa/agentlens/internal/models"

// Fixed name catalogs for synthetic data. Generation draws from these so
// datasets look plausible without any external input.

var departmentNames = []string{
	"Engineering",
	"Product",
	"Data Science",
	"Marketing",
	"Sales",
	"Finance",
	"Operations",
	"Design",
	"Customer Success",
	"Legal",
	"People",
	"Security",
}

var projectNames = []string{
	"Atlas", "Beacon", "Catalyst", "Drift", "Ember", "Flux",
	"Granite", "Horizon", "Ion", "Jetstream", "Kepler", "Lumen",
	"Meridian", "Nimbus", "Orbit", "Pulse",
}

var agentCatalog = map[models.AgentType][]string{
	models.AgentTypePrebuilt: {
		"Code Review Assistant",
		"Meeting Summarizer",
		"Support Triage Bot",
		"Contract Analyzer",
		"Sales Email Writer",
		"Release Notes Drafter",
		"Onboarding Guide",
		"Incident Scribe",
	},
	models.AgentTypeDIY: {
		"Sprint Planner",
		"Churn Predictor",
		"Invoice Matcher",
		"Roadmap Critic",
		"Data Dictionary Bot",
		"QA Test Generator",
		"Docs Linter",
		"Campaign Optimizer",
	},
	models.AgentTypeFoundation: {
		"gpt-4o",
		"claude-sonnet",
		"claude-opus",
		"gemini-pro",
		"llama-70b",
		"mistral-large",
	},
}

var firstNames = []string{
	"Ava", "Ben", "Clara", "Diego", "Elena", "Felix", "Grace", "Hassan",
	"Ines", "Jonas", "Kira", "Liam", "Maya", "Noah", "Olivia", "Priya",
	"Quinn", "Ravi", "Sofia", "Tomas", "Uma", "Viktor", "Wen", "Yara", "Zane",
}

var lastNames = []string{
	"Andersson", "Bauer", "Chen", "Duarte", "Eriksen", "Fischer", "Gupta",
	"Haddad", "Ivanova", "Johnson", "Kumar", "Larsen", "Moreau", "Nakamura",
	"Okafor", "Petrov", "Quintero", "Rossi", "Singh", "Tanaka", "Ueda",
	"Vargas", "Weber", "Yilmaz", "Zhang",
}

var roles = []string{
	"Engineer", "Senior Engineer", "Staff Engineer", "Manager",
	"Analyst", "Designer", "Product Manager", "Researcher",
}
