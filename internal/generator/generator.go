// Package generator synthesizes a referentially-consistent AI-usage
// dataset: departments, agents, users, sessions, daily time series, and
// derived alerts, all produced in one ordered pass.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

// Per-type base cost per token, in dollars. Pre-built agents are the most
// expensive to run, foundation models the cheapest.
var costPerToken = map[models.AgentType]float64{
	models.AgentTypePrebuilt:   0.000032,
	models.AgentTypeDIY:        0.000018,
	models.AgentTypeFoundation: 0.000008,
}

// averageTokensPerRequest anchors an agent's average request cost to the
// same cost-per-token formula sessions use.
const averageTokensPerRequest = 2500

// Usage profile mixture. The 10/20/50/20 split across
// zero/light/moderate/heavy users is a design contract, not incidental.
type usageProfile struct {
	minSpend, maxSpend       float64
	minRequests, maxRequests int
}

var (
	profileLight    = usageProfile{1, 20, 10, 100}
	profileModerate = usageProfile{20, 100, 100, 1000}
	profileHeavy    = usageProfile{100, 500, 1000, 5000}
)

// Options configures a generation pass.
type Options struct {
	// DepartmentCount is the number of departments to synthesize
	// (default 8, capped at the name catalog size).
	DepartmentCount int

	// Now is the reference time for the trailing 7-day window
	// (default: current UTC time).
	Now time.Time
}

// Dataset is the immutable output of one generation pass. All collections
// are internally consistent: derived aggregates (time series, alerts,
// per-user trends) are computed from the same base sets.
type Dataset struct {
	Departments []models.Department
	Agents      []models.Agent
	Users       []models.User
	Sessions    []models.Session
	TimeSeries  []models.TimeSeriesPoint
	Alerts      []models.Alert
	GeneratedAt time.Time
}

// Generator produces Datasets from a caller-supplied random source, so a
// fixed seed yields a reproducible dataset.
type Generator struct {
	rng  *rand.Rand
	opts Options
}

// New creates a generator using the given random source.
func New(rng *rand.Rand, opts Options) *Generator {
	if opts.DepartmentCount <= 0 || opts.DepartmentCount > len(departmentNames) {
		opts.DepartmentCount = 8
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	return &Generator{rng: rng, opts: opts}
}

// NewSeeded creates a generator with its own source seeded from seed.
func NewSeeded(seed int64, opts Options) *Generator {
	return New(rand.New(rand.NewSource(seed)), opts)
}

// Generate runs the full five-step pipeline plus alert derivation.
// Generation is pure computation and cannot fail.
func (g *Generator) Generate() *Dataset {
	ds := &Dataset{GeneratedAt: g.opts.Now}

	ds.Departments = g.generateDepartments()
	ds.Agents = g.generateAgents()
	ds.Users = g.generateUsers(ds.Departments, ds.Agents)
	ds.Sessions = g.generateSessions(ds.Users, ds.Agents)
	attachRecentSessions(ds.Users, ds.Sessions)
	ds.TimeSeries = AggregateDaily(ds.Sessions)
	ds.Alerts = g.deriveAlerts(ds.Departments, ds.Users)

	return ds
}

// Step 1: departments with budgets, spend, and owned projects.
func (g *Generator) generateDepartments() []models.Department {
	names := make([]string, len(departmentNames))
	copy(names, departmentNames)
	g.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	projectIdx := 0
	departments := make([]models.Department, 0, g.opts.DepartmentCount)

	for i := 0; i < g.opts.DepartmentCount; i++ {
		budget := g.uniform(200, 1000)
		// Up to 1.2x budget: over-budget departments are a deliberate
		// edge case, not an error.
		spend := g.rng.Float64() * 1.2 * budget
		totalUsers := 5 + g.rng.Intn(21)
		activeUsers := 1 + g.rng.Intn(totalUsers)

		dept := models.Department{
			ID:                 fmt.Sprintf("dept-%02d", i+1),
			Name:               names[i],
			WeeklyBudget:       budget,
			CurrentSpend:       spend,
			ProjectedSpend:     projectWeeklySpend(spend, g.opts.Now),
			WeekOverWeekChange: g.uniform(-30, 50),
			ActiveUsers:        activeUsers,
			TotalUsers:         totalUsers,
			CostPerUser:        spend / float64(maxInt(activeUsers, 1)),
		}

		// Split current spend across 1-4 projects.
		projectCount := 1 + g.rng.Intn(4)
		shares := g.splitAmount(spend, projectCount)
		for p := 0; p < projectCount; p++ {
			dept.Projects = append(dept.Projects, models.Project{
				ID:           fmt.Sprintf("proj-%03d", projectIdx+1),
				Name:         projectNames[projectIdx%len(projectNames)],
				DepartmentID: dept.ID,
				WeeklySpend:  shares[p],
				UserCount:    1 + g.rng.Intn(totalUsers),
				AgentCount:   1 + g.rng.Intn(5),
			})
			projectIdx++
		}

		departments = append(departments, dept)
	}

	return departments
}

// projectWeeklySpend pro-rates current spend over the elapsed portion of
// the week. Sunday counts as a full week so the divisor never hits zero.
func projectWeeklySpend(currentSpend float64, now time.Time) float64 {
	elapsedDays := int(now.Weekday())
	if elapsedDays == 0 {
		elapsedDays = 7
	}
	return currentSpend / float64(elapsedDays) * 7
}

// Step 2: agents with type-based cost profiles and popularity ranks.
func (g *Generator) generateAgents() []models.Agent {
	var agents []models.Agent

	idx := 0
	for _, typ := range models.AgentTypes {
		for _, name := range agentCatalog[typ] {
			requests := 50 + g.rng.Intn(1951)
			avgCost := costPerToken[typ] * averageTokensPerRequest * g.jitter()
			agents = append(agents, models.Agent{
				ID:           fmt.Sprintf("agent-%02d", idx+1),
				Name:         name,
				Type:         typ,
				WeeklySpend:  float64(requests) * avgCost,
				RequestCount: requests,
				AverageCost:  avgCost,
			})
			idx++
		}
	}

	// Popularity rank: 1-based by descending weekly spend.
	ranked := make([]*models.Agent, len(agents))
	for i := range agents {
		ranked[i] = &agents[i]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeeklySpend > ranked[j].WeeklySpend
	})
	for rank, a := range ranked {
		a.PopularityRank = rank + 1
	}

	return agents
}

// Step 3: one user batch per department, sized to its TotalUsers.
func (g *Generator) generateUsers(departments []models.Department, agents []models.Agent) []models.User {
	var users []models.User
	userIdx := 0

	for _, dept := range departments {
		for i := 0; i < dept.TotalUsers; i++ {
			userIdx++
			first := firstNames[g.rng.Intn(len(firstNames))]
			last := lastNames[g.rng.Intn(len(lastNames))]

			user := models.User{
				ID:           fmt.Sprintf("user-%04d", userIdx),
				Email:        fmt.Sprintf("%s.%s%d@agentlens.dev", strings.ToLower(first), strings.ToLower(last), userIdx),
				Name:         first + " " + last,
				DepartmentID: dept.ID,
				Department:   dept.Name,
				Role:         roles[g.rng.Intn(len(roles))],
			}

			g.assignUsage(&user, agents)
			users = append(users, user)
		}
	}

	return users
}

// assignUsage draws the user's profile from the fixed mixture and fills
// spend, requests, daily trend, and per-agent breakdown.
func (g *Generator) assignUsage(user *models.User, agents []models.Agent) {
	var profile usageProfile
	switch r := g.rng.Float64(); {
	case r < 0.10: // zero usage
		user.TrendData = g.distributeDaily(0, 0)
		user.AgentBreakdown = []models.AgentUsage{}
		return
	case r < 0.30:
		profile = profileLight
	case r < 0.80:
		profile = profileModerate
	default:
		profile = profileHeavy
	}

	// Spend and request count are sampled independently within the
	// bucket, not derived from one another.
	user.WeeklySpend = g.uniform(profile.minSpend, profile.maxSpend)
	user.RequestCount = profile.minRequests + g.rng.Intn(profile.maxRequests-profile.minRequests+1)
	user.TrendData = g.distributeDaily(user.WeeklySpend, user.RequestCount)
	user.AgentBreakdown = g.buildAgentBreakdown(user.WeeklySpend, user.RequestCount, agents)
	user.AgentCount = len(user.AgentBreakdown)
}

// distributeDaily spreads a weekly total across 7 days. No single day
// exceeds 40% of the weekly total; the final day absorbs the remainder so
// the week sums back to the totals exactly.
func (g *Generator) distributeDaily(weeklySpend float64, requests int) []models.DailyUsage {
	days := make([]models.DailyUsage, 7)
	start := g.opts.Now.UTC().Truncate(24*time.Hour).AddDate(0, 0, -6)

	remaining := weeklySpend
	for i := 0; i < 7; i++ {
		days[i].Date = start.AddDate(0, 0, i)
		if i == 6 {
			days[i].Cost = remaining
			remaining = 0
			continue
		}
		cost := g.rng.Float64() * 0.4 * weeklySpend
		if cost > remaining {
			cost = remaining
		}
		days[i].Cost = cost
		remaining -= cost
	}

	// Requests follow the cost shape; the final day absorbs rounding.
	if weeklySpend > 0 && requests > 0 {
		assigned := 0
		for i := 0; i < 6; i++ {
			n := int(float64(requests) * days[i].Cost / weeklySpend)
			days[i].RequestCount = n
			assigned += n
		}
		days[6].RequestCount = requests - assigned
	}

	return days
}

// buildAgentBreakdown allocates the user's spend across 1-5 random
// agents. Each non-last share takes 10-60% of what remains; the last
// share absorbs the rest. Percentages are computed from the final costs.
func (g *Generator) buildAgentBreakdown(weeklySpend float64, requests int, agents []models.Agent) []models.AgentUsage {
	n := 1 + g.rng.Intn(5)
	if n > len(agents) {
		n = len(agents)
	}

	picks := g.rng.Perm(len(agents))[:n]
	breakdown := make([]models.AgentUsage, 0, n)

	remaining := weeklySpend
	remainingReqs := requests
	for i, pick := range picks {
		agent := agents[pick]
		var cost float64
		if i == n-1 {
			cost = remaining
		} else {
			cost = (0.10 + g.rng.Float64()*0.50) * remaining
		}
		remaining -= cost

		var reqs int
		if i == n-1 {
			reqs = remainingReqs
		} else if weeklySpend > 0 {
			reqs = int(float64(requests) * cost / weeklySpend)
			if reqs > remainingReqs {
				reqs = remainingReqs
			}
		}
		remainingReqs -= reqs

		breakdown = append(breakdown, models.AgentUsage{
			AgentID:      agent.ID,
			AgentName:    agent.Name,
			Cost:         cost,
			RequestCount: reqs,
			Percentage:   cost / weeklySpend * 100,
		})
	}

	return breakdown
}

// Step 4: sessions for every active user, drawn against the agents in the
// user's breakdown so session facts and breakdown allocations agree.
func (g *Generator) generateSessions(users []models.User, agents []models.Agent) []models.Session {
	byID := make(map[string]models.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}

	window := 7 * 24 * time.Hour
	var sessions []models.Session
	sessionIdx := 0

	for _, user := range users {
		if user.WeeklySpend == 0 || len(user.AgentBreakdown) == 0 {
			continue
		}

		count := int(float64(user.RequestCount) * (0.8 + g.rng.Float64()*0.4))
		for i := 0; i < count; i++ {
			usage := user.AgentBreakdown[g.rng.Intn(len(user.AgentBreakdown))]
			agent := byID[usage.AgentID]
			tokens := 100 + g.rng.Intn(4901)

			sessionIdx++
			sessions = append(sessions, models.Session{
				ID:         fmt.Sprintf("sess-%06d", sessionIdx),
				Timestamp:  g.opts.Now.Add(-time.Duration(g.rng.Int63n(int64(window)))),
				UserID:     user.ID,
				AgentID:    agent.ID,
				AgentName:  agent.Name,
				Cost:       float64(tokens) * costPerToken[agent.Type] * g.jitter(),
				TokenCount: tokens,
				Duration:   10 + g.rng.Intn(891),
				Status:     g.drawStatus(),
			})
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.After(sessions[j].Timestamp)
	})

	return sessions
}

// drawStatus uses cumulative thresholds: 5% error, 3% timeout.
func (g *Generator) drawStatus() models.SessionStatus {
	switch r := g.rng.Float64(); {
	case r < 0.05:
		return models.SessionError
	case r < 0.08:
		return models.SessionTimeout
	default:
		return models.SessionSuccess
	}
}

// attachRecentSessions assigns each user the first 10 of their own
// sessions in global descending-timestamp order.
func attachRecentSessions(users []models.User, sessions []models.Session) {
	byUser := make(map[string][]models.Session)
	for _, s := range sessions {
		if len(byUser[s.UserID]) < 10 {
			byUser[s.UserID] = append(byUser[s.UserID], s)
		}
	}
	for i := range users {
		users[i].RecentSessions = byUser[users[i].ID]
	}
}

// AggregateDaily groups sessions by UTC calendar day, summing cost,
// counting requests, and counting distinct users per day. The result is
// sorted ascending. Callers reuse this to recompute series over filtered
// session subsets.
func AggregateDaily(sessions []models.Session) []models.TimeSeriesPoint {
	return AggregateBuckets(sessions, models.GranularityDaily)
}

// AggregateBuckets is AggregateDaily generalized over a bucket size.
func AggregateBuckets(sessions []models.Session, g models.Granularity) []models.TimeSeriesPoint {
	type bucket struct {
		cost     float64
		requests int
		users    map[string]struct{}
	}

	buckets := make(map[time.Time]*bucket)
	for _, s := range sessions {
		key := g.Bucket(s.Timestamp)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{users: make(map[string]struct{})}
			buckets[key] = b
		}
		b.cost += s.Cost
		b.requests++
		b.users[s.UserID] = struct{}{}
	}

	points := make([]models.TimeSeriesPoint, 0, len(buckets))
	for ts, b := range buckets {
		points = append(points, models.TimeSeriesPoint{
			Timestamp:    ts,
			Cost:         b.cost,
			RequestCount: b.requests,
			UserCount:    len(b.users),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	return points
}

// Step 6: alerts from threshold sweeps over department and user snapshots.
func (g *Generator) deriveAlerts(departments []models.Department, users []models.User) []models.Alert {
	var alerts []models.Alert
	idx := 0

	newAlert := func(typ models.AlertType, sev models.Severity, msg string) models.Alert {
		idx++
		return models.Alert{
			ID:        fmt.Sprintf("alert-%03d", idx),
			Type:      typ,
			Severity:  sev,
			Message:   msg,
			Timestamp: g.opts.Now.Add(-time.Duration(g.rng.Int63n(int64(24 * time.Hour)))),
		}
	}

	for _, dept := range departments {
		if dept.WeeklyBudget <= 0 {
			continue
		}
		ratio := dept.CurrentSpend / dept.WeeklyBudget
		switch {
		case ratio > 1.0:
			a := newAlert(models.AlertTypeBudget, models.SeverityHigh,
				fmt.Sprintf("%s is over budget: $%.2f of $%.2f weekly budget", dept.Name, dept.CurrentSpend, dept.WeeklyBudget))
			a.DepartmentID = dept.ID
			alerts = append(alerts, a)
		case ratio > 0.8:
			a := newAlert(models.AlertTypeBudget, models.SeverityMedium,
				fmt.Sprintf("%s has used %.1f%% of its weekly budget", dept.Name, ratio*100))
			a.DepartmentID = dept.ID
			alerts = append(alerts, a)
		}
	}

	for _, user := range users {
		if user.WeeklySpend <= 200 {
			continue
		}
		sev := models.SeverityMedium
		if user.WeeklySpend > 400 {
			sev = models.SeverityHigh
		}
		a := newAlert(models.AlertTypeUsage, sev,
			fmt.Sprintf("%s spent $%.2f this week", user.Name, user.WeeklySpend))
		a.UserID = user.ID
		a.DepartmentID = user.DepartmentID
		alerts = append(alerts, a)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})

	return alerts
}

// uniform draws from [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// jitter draws a multiplier from [0.8, 1.2).
func (g *Generator) jitter() float64 {
	return 0.8 + g.rng.Float64()*0.4
}

// splitAmount divides total into n shares using the remainder-absorbing
// scheme: each non-last share takes 10-60% of what remains.
func (g *Generator) splitAmount(total float64, n int) []float64 {
	shares := make([]float64, n)
	remaining := total
	for i := 0; i < n-1; i++ {
		shares[i] = (0.10 + g.rng.Float64()*0.50) * remaining
		remaining -= shares[i]
	}
	shares[n-1] = remaining
	return shares
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
