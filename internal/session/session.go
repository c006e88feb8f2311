// Package session coordinates one diagram being edited: it owns the live
// model, applies patches through the kind's editor, regenerates the
// Mermaid preview after edits settle and hands the final fence to a
// document inserter.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/debounce"
	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/editor"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

var (
	// ErrNotEditing is returned when an operation needs a selected kind.
	ErrNotEditing = errors.New("session is not editing")
	// ErrClosed is returned for any change after confirm or cancel.
	ErrClosed = errors.New("session is closed")
	// ErrNotFound is returned by the Manager for an unknown session id.
	ErrNotFound = errors.New("session not found")
)

// State is a step of the session lifecycle.
type State int

const (
	Uninitialized State = iota
	TypeSelected
	Editing
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case TypeSelected:
		return "type_selected"
	case Editing:
		return "editing"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Listener receives regenerated Mermaid code.
type Listener func(code string)

// Options configures a Session.
type Options struct {
	// Delay is the preview debounce; zero means debounce.DefaultDelay.
	Delay  time.Duration
	Locale *i18n.Locale
	Clock  editor.Clock
	// Defaults builds the starting model when a kind is picked without
	// one. Nil uses editor.Defaults.
	Defaults DefaultsFunc
}

// DefaultsFunc returns the starting model for kind.
type DefaultsFunc func(kind diagrams.Kind, loc *i18n.Locale, now time.Time) (diagrams.Model, error)

// Session is safe for concurrent use. Patches are applied one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	state      State
	loc        *i18n.Locale
	clock      editor.Clock
	defaults   DefaultsFunc
	ed         editor.Editor
	code       string
	lastAccess time.Time
	listeners  map[int]Listener
	nextID     int
	debouncer  *debounce.Debouncer
	done       chan struct{}
}

// New returns an Uninitialized session.
func New(id string, opts Options) *Session {
	if opts.Locale == nil {
		opts.Locale = i18n.New(i18n.DefaultLang)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	now := opts.Clock()
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		lastAccess: now,
		loc:        opts.Locale,
		clock:      opts.Clock,
		defaults:   opts.Defaults,
		listeners:  make(map[int]Listener),
		done:       make(chan struct{}),
	}
	s.debouncer = debounce.New(opts.Delay, s.regenerate)
	return s
}

// SelectKind starts editing kind from its localized defaults. Picking a
// kind again while editing discards the current model.
func (s *Session) SelectKind(kind diagrams.Kind) error {
	return s.Load(kind, nil)
}

// Load starts editing kind from m. A nil m uses the kind's defaults.
func (s *Session) Load(kind diagrams.Kind, m diagrams.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Closed {
		return ErrClosed
	}
	if _, err := diagrams.ParseKind(string(kind)); err != nil {
		return err
	}
	s.state = TypeSelected

	if m == nil && s.defaults != nil {
		dm, err := s.defaults(kind, s.loc, s.clock())
		if err != nil {
			s.state = Uninitialized
			return fmt.Errorf("building %s defaults: %w", kind, err)
		}
		m = dm
	}
	ed, err := editor.New(kind, m, s.loc, s.clock)
	if err != nil {
		s.state = Uninitialized
		return fmt.Errorf("loading %s editor: %w", kind, err)
	}
	s.ed = ed
	s.state = Editing
	s.code = diagrams.GenerateWith(kind, ed.Model(), s.loc.Fallbacks())
	s.touch()
	s.debouncer.Trigger()
	return nil
}

// Apply runs one patch against the model and schedules a preview.
func (s *Session) Apply(p editor.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editingLocked(); err != nil {
		return err
	}
	s.touch()
	if err := s.ed.UpdateData(p); err != nil {
		return err
	}
	s.debouncer.Trigger()
	return nil
}

func (s *Session) editingLocked() error {
	switch s.state {
	case Closed:
		return ErrClosed
	case Editing:
		return nil
	}
	return ErrNotEditing
}

func (s *Session) touch() { s.lastAccess = s.clock() }

// regenerate runs on the debounce goroutine.
func (s *Session) regenerate() {
	s.mu.Lock()
	if s.state != Editing {
		s.mu.Unlock()
		return
	}
	code := diagrams.GenerateWith(s.ed.Kind(), s.ed.Model(), s.loc.Fallbacks())
	s.code = code
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(code)
	}
}

// Subscribe registers l for every regenerated preview and returns a
// function that removes it.
func (s *Session) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Kind returns the selected kind, or "" before one is chosen.
func (s *Session) Kind() diagrams.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ed == nil {
		return ""
	}
	return s.ed.Kind()
}

// Model returns the live model.
func (s *Session) Model() diagrams.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ed == nil {
		return nil
	}
	return s.ed.Model()
}

// Code returns the last generated preview. It lags edits by the debounce
// delay.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Form describes the editor panel for the current model.
func (s *Session) Form() (editor.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editingLocked(); err != nil {
		return editor.Form{}, err
	}
	return s.ed.Build(), nil
}

// Locale returns the session's language.
func (s *Session) Locale() *i18n.Locale { return s.loc }

// LastAccess reports when the session was last loaded or patched.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Confirm inserts the fenced diagram through ins and closes the session.
// If the insert fails the session stays open so it can be retried.
func (s *Session) Confirm(ctx context.Context, ins vault.Inserter) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editingLocked(); err != nil {
		return "", err
	}
	code := diagrams.GenerateWith(s.ed.Kind(), s.ed.Model(), s.loc.Fallbacks())
	text := diagrams.Fence(code)
	if err := ins.Insert(ctx, text); err != nil {
		return "", fmt.Errorf("inserting diagram: %w", err)
	}
	s.code = code
	s.closeLocked()
	log.Printf("session: %s confirmed %s diagram", s.ID, s.ed.Kind())
	return text, nil
}

// Cancel discards the model without side effects.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Close is Cancel; it exists so a Session can be deferred like a file.
func (s *Session) Close() error {
	s.Cancel()
	return nil
}

func (s *Session) closeLocked() {
	if s.state == Closed {
		return
	}
	s.debouncer.Stop()
	if s.ed != nil {
		s.ed.Cleanup()
	}
	s.state = Closed
	clear(s.listeners)
	close(s.done)
}

// Done is closed once the session is confirmed, cancelled or closed.
func (s *Session) Done() <-chan struct{} { return s.done }
