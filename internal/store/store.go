// Package store owns one generated dataset for the process lifetime and
// exposes read-only accessors over it. A store is constructed explicitly
// and injected wherever it is needed; there is no package-level singleton.
package store

import (
	"sync"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/generator"
	"github.com/raja-kanniappa/agentlens/internal/models"
)

// Store caches a dataset plus id indexes built once per generation pass.
// Getters hand out copies of the backing slices so callers cannot mutate
// the cached dataset. Regenerate swaps everything atomically under the
// lock, so readers either see the old pass or the new one, never a mix.
type Store struct {
	mu  sync.RWMutex
	gen *generator.Generator

	data *generator.Dataset

	departments map[string]int
	users       map[string]int
	agents      map[string]int
	agentNames  map[string]int
	sessions    map[string]int
}

// New creates a store and runs the initial generation pass.
func New(gen *generator.Generator) *Store {
	s := &Store{gen: gen}
	s.Regenerate()
	return s
}

// NewWithSeed creates a store over a freshly seeded generator.
// Fixed seeds give reproducible datasets for tests.
func NewWithSeed(seed int64, opts generator.Options) *Store {
	return New(generator.NewSeeded(seed, opts))
}

// Regenerate produces an entirely new consistent dataset and rebuilds the
// indexes. Partial regeneration is not supported; consistency holds only
// across one full pass.
func (s *Store) Regenerate() {
	data := s.gen.Generate()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	s.departments = indexBy(data.Departments, func(d models.Department) string { return d.ID })
	s.users = indexBy(data.Users, func(u models.User) string { return u.ID })
	s.agents = indexBy(data.Agents, func(a models.Agent) string { return a.ID })
	s.agentNames = indexBy(data.Agents, func(a models.Agent) string { return a.Name })
	s.sessions = indexBy(data.Sessions, func(x models.Session) string { return x.ID })
}

func indexBy[T any](items []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(items))
	for i, item := range items {
		idx[key(item)] = i
	}
	return idx
}

// GeneratedAt returns the timestamp of the current generation pass.
func (s *Store) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.GeneratedAt
}

// Departments returns a copy of all departments.
func (s *Store) Departments() []models.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.data.Departments)
}

// Users returns a copy of all users.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.data.Users)
}

// Agents returns a copy of all agents.
func (s *Store) Agents() []models.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.data.Agents)
}

// Sessions returns a copy of all sessions, descending by timestamp.
func (s *Store) Sessions() []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.data.Sessions)
}

// TimeSeries returns a copy of the daily aggregates, ascending by day.
func (s *Store) TimeSeries() []models.TimeSeriesPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.data.TimeSeries)
}

// Alerts returns a copy of all alerts, descending by timestamp.
func (s *Store) Alerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.data.Alerts)
}

func copySlice[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// FindDepartment resolves a department by id.
func (s *Store) FindDepartment(id string) (models.Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.departments[id]
	if !ok {
		return models.Department{}, false
	}
	return s.data.Departments[i], true
}

// FindUser resolves a user by id.
func (s *Store) FindUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return s.data.Users[i], true
}

// FindAgent resolves an agent by id.
func (s *Store) FindAgent(id string) (models.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.agents[id]
	if !ok {
		return models.Agent{}, false
	}
	return s.data.Agents[i], true
}

// FindAgentByName resolves an agent by display name.
func (s *Store) FindAgentByName(name string) (models.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.agentNames[name]
	if !ok {
		return models.Agent{}, false
	}
	return s.data.Agents[i], true
}

// FindSession resolves a session by id.
func (s *Store) FindSession(id string) (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	return s.data.Sessions[i], true
}

// UsersByDepartment returns the users belonging to the department.
func (s *Store) UsersByDepartment(departmentID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.data.Users {
		if u.DepartmentID == departmentID {
			out = append(out, u)
		}
	}
	return out
}

// SessionsByUser returns the user's sessions in store order (descending).
func (s *Store) SessionsByUser(userID string) []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Session
	for _, sess := range s.data.Sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out
}

// SessionsInRange returns sessions whose timestamps fall inside tr.
func (s *Store) SessionsInRange(tr models.TimeRange) []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Session
	for _, sess := range s.data.Sessions {
		if tr.Contains(sess.Timestamp) {
			out = append(out, sess)
		}
	}
	return out
}
