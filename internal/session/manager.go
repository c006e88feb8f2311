package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// Manager holds the open sessions of the HTTP editor.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	defaults Options
	lang     string
}

// NewManager creates a Manager. New sessions inherit opts; lang is the
// language used when a request does not name one.
func NewManager(opts Options, lang string) *Manager {
	if lang == "" {
		lang = i18n.DefaultLang
	}
	return &Manager{
		sessions: make(map[string]*Session),
		defaults: opts,
		lang:     lang,
	}
}

// Create opens a session. An empty kind leaves it Uninitialized; a nil
// model starts from the kind's defaults.
func (m *Manager) Create(kind diagrams.Kind, model diagrams.Model, lang string) (*Session, error) {
	if lang == "" {
		lang = m.lang
	}
	opts := m.defaults
	opts.Locale = i18n.New(lang)

	sess := New(uuid.New().String(), opts)
	if kind != "" {
		if err := sess.Load(kind, model); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess, nil
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Confirm inserts the session's diagram and forgets the session.
func (m *Manager) Confirm(ctx context.Context, id string, ins vault.Inserter) (string, error) {
	sess, err := m.Get(id)
	if err != nil {
		return "", err
	}
	text, err := sess.Confirm(ctx, ins)
	if err != nil {
		return "", err
	}
	m.remove(id)
	return text, nil
}

// Cancel discards the session.
func (m *Manager) Cancel(id string) error {
	sess, err := m.Get(id)
	if err != nil {
		return err
	}
	sess.Cancel()
	m.remove(id)
	return nil
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// IDs lists the open sessions, oldest first.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	ids := make([]string, len(all))
	for i, s := range all {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Cleanup cancels sessions idle for longer than ttl and returns how many
// were dropped.
func (m *Manager) Cleanup(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Cancel()
	}
	return len(stale)
}

// StartCleanup runs Cleanup every interval and returns a stop function.
func (m *Manager) StartCleanup(interval, ttl time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				m.Cleanup(ttl)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}

// CloseAll cancels every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range all {
		s.Cancel()
	}
}
