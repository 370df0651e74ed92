package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-elt-dashboard/internal/elt"
	"go-elt-dashboard/internal/model"
)

// State is one dashboard session: its source binding plus the in-memory
// store that lives while the session does.
type State struct {
	ID        string
	Source    model.SourceSpec
	Store     *elt.Store
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

// Touch marks the session as recently used.
func (s *State) Touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

// LastUsed returns the last activity time.
func (s *State) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Info returns the API view of the session.
func (s *State) Info() model.SessionInfo {
	info := model.SessionInfo{
		ID:        s.ID,
		Source:    s.Source,
		Rows:      s.Store.Len(),
		CreatedAt: s.CreatedAt,
		LastUsed:  s.LastUsed(),
	}
	if lf := s.Store.LastFetch(); !lf.IsZero() {
		info.LastFetch = &lf
	}
	return info
}

// Manager tracks live sessions and evicts the ones idle past the TTL,
// mirroring browser-session expiry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
	idleTTL  time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewManager creates a session manager and starts its eviction janitor.
func NewManager(idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	m := &Manager{
		sessions: make(map[string]*State),
		idleTTL:  idleTTL,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Create registers a new session for the given source spec.
func (m *Manager) Create(spec model.SourceSpec) *State {
	now := time.Now()
	s := &State{
		ID:        uuid.New().String(),
		Source:    spec,
		Store:     elt.NewStore(),
		CreatedAt: now,
		lastUsed:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session and marks it used.
func (m *Manager) Get(id string) (*State, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	s.Touch()
	return s, nil
}

// Delete clears the session store and drops the session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	s.Store.Clear()
	return nil
}

// List returns session infos ordered by creation time, newest first.
func (m *Manager) List() []model.SessionInfo {
	m.mu.RLock()
	infos := make([]model.SessionInfo, 0, len(m.sessions))
	for _, s := range m.sessions {
		infos = append(infos, s.Info())
	}
	m.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos
}

// Close stops the janitor.
func (m *Manager) Close() {
	close(m.stop)
	<-m.done
}

func (m *Manager) janitor() {
	defer close(m.done)
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.LastUsed().Before(cutoff) {
			s.Store.Clear()
			delete(m.sessions, id)
		}
	}
}
