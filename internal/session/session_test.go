package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/editor"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

// recordingInserter keeps what it was asked to insert.
type recordingInserter struct {
	mu   sync.Mutex
	text []string
	err  error
}

func (r *recordingInserter) Insert(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.text = append(r.text, text)
	return nil
}

func newTestSession(delay time.Duration) *Session {
	return New("test", Options{
		Delay:  delay,
		Locale: i18n.New("en"),
		Clock:  func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) },
	})
}

func TestStateTransitions(t *testing.T) {
	s := newTestSession(10 * time.Millisecond)
	if s.State() != Uninitialized {
		t.Fatalf("new session state = %s", s.State())
	}
	if err := s.Apply(editor.Patch{Op: "add_item"}); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Apply before kind: %v", err)
	}
	if _, err := s.Form(); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Form before kind: %v", err)
	}

	if err := s.SelectKind(diagrams.KindPie); err != nil {
		t.Fatal(err)
	}
	if s.State() != Editing || s.Kind() != diagrams.KindPie {
		t.Fatalf("after select: %s %s", s.State(), s.Kind())
	}
	if !strings.HasPrefix(s.Code(), "pie") {
		t.Errorf("code not generated on select: %q", s.Code())
	}

	s.Cancel()
	if s.State() != Closed {
		t.Fatalf("after cancel: %s", s.State())
	}
	if err := s.Apply(editor.Patch{Op: "add_item"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Apply after close: %v", err)
	}
	if err := s.SelectKind(diagrams.KindPie); !errors.Is(err, ErrClosed) {
		t.Errorf("SelectKind after close: %v", err)
	}
}

func TestSelectUnknownKind(t *testing.T) {
	s := newTestSession(0)
	if err := s.SelectKind("venn"); !errors.Is(err, diagrams.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if s.State() != Uninitialized {
		t.Errorf("state = %s", s.State())
	}
}

func TestDebouncedPreview(t *testing.T) {
	s := newTestSession(30 * time.Millisecond)
	if err := s.Load(diagrams.KindPie, diagrams.Pie{}); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var previews []string
	s.Subscribe(func(code string) {
		mu.Lock()
		previews = append(previews, code)
		mu.Unlock()
	})

	// Let the load's own preview fire first.
	time.Sleep(80 * time.Millisecond)
	mu.Lock()
	previews = nil
	mu.Unlock()

	for i := 0; i < 5; i++ {
		if err := s.Apply(editor.Patch{Op: "add_item"}); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(previews) != 1 {
		t.Fatalf("expected one coalesced preview, got %d", len(previews))
	}
	if !strings.Contains(previews[0], `"Category5" : 10`) {
		t.Errorf("preview missing last edit:\n%s", previews[0])
	}
	if s.Code() != previews[0] {
		t.Error("Code() does not match the last preview")
	}
}

func TestCloseStopsPreview(t *testing.T) {
	s := newTestSession(30 * time.Millisecond)
	if err := s.SelectKind(diagrams.KindPie); err != nil {
		t.Fatal(err)
	}
	called := make(chan string, 4)
	s.Subscribe(func(code string) { called <- code })
	if err := s.Apply(editor.Patch{Op: "add_item"}); err != nil {
		t.Fatal(err)
	}
	s.Cancel()
	select {
	case <-called:
		t.Error("listener ran after cancel")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDoneClosesOnce(t *testing.T) {
	s := newTestSession(10 * time.Millisecond)
	select {
	case <-s.Done():
		t.Fatal("Done closed before the session ended")
	default:
	}
	s.Cancel()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done still open after cancel")
	}
}

func TestConfirm(t *testing.T) {
	s := newTestSession(0)
	if err := s.Load(diagrams.KindPie, diagrams.Pie{Items: []diagrams.PieItem{{Label: "A", Value: 1}}}); err != nil {
		t.Fatal(err)
	}
	ins := &recordingInserter{}
	text, err := s.Confirm(context.Background(), ins)
	if err != nil {
		t.Fatal(err)
	}
	want := "```mermaid\npie\n  \"A\" : 1\n\n```\n\n"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
	if len(ins.text) != 1 || ins.text[0] != text {
		t.Errorf("inserter got %q", ins.text)
	}
	if s.State() != Closed {
		t.Errorf("state after confirm = %s", s.State())
	}
	if _, err := s.Confirm(context.Background(), ins); !errors.Is(err, ErrClosed) {
		t.Errorf("second confirm: %v", err)
	}
}

func TestConfirmFailureKeepsEditing(t *testing.T) {
	s := newTestSession(0)
	if err := s.SelectKind(diagrams.KindMindmap); err != nil {
		t.Fatal(err)
	}
	ins := &recordingInserter{err: errors.New("disk full")}
	if _, err := s.Confirm(context.Background(), ins); err == nil {
		t.Fatal("expected an error")
	}
	if s.State() != Editing {
		t.Errorf("state = %s, want editing", s.State())
	}
}

func TestManager(t *testing.T) {
	m := NewManager(Options{Delay: 10 * time.Millisecond}, "zh")
	a, err := m.Create(diagrams.KindPie, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if a.Locale().Lang() != "zh" {
		t.Errorf("default language = %s", a.Locale().Lang())
	}
	b, err := m.Create("", nil, "en")
	if err != nil {
		t.Fatal(err)
	}
	if b.State() != Uninitialized {
		t.Errorf("kindless session state = %s", b.State())
	}
	if a.ID == b.ID || m.Len() != 2 {
		t.Fatalf("ids %s %s len %d", a.ID, b.ID, m.Len())
	}
	if ids := m.IDs(); len(ids) != 2 {
		t.Errorf("IDs = %v", ids)
	}

	if _, err := m.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get unknown: %v", err)
	}

	if _, err := m.Confirm(context.Background(), a.ID, &recordingInserter{}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Error("confirmed session still listed")
	}

	if err := m.Cancel(b.ID); err != nil {
		t.Fatal(err)
	}
	if b.State() != Closed || m.Len() != 0 {
		t.Errorf("cancel: state %s len %d", b.State(), m.Len())
	}
}

func TestManagerCleanup(t *testing.T) {
	m := NewManager(Options{Clock: func() time.Time { return time.Now().Add(-time.Hour) }}, "")
	old, err := m.Create(diagrams.KindPie, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if n := m.Cleanup(time.Minute); n != 1 {
		t.Errorf("Cleanup removed %d", n)
	}
	if old.State() != Closed {
		t.Errorf("stale session state = %s", old.State())
	}
}
