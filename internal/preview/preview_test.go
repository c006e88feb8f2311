package preview

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/session"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestDiagram(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Diagram("pie\n  \"A\" : 1\n")
	if err != nil {
		t.Fatal(err)
	}
	s := string(got)
	if !strings.HasPrefix(s, `<div class="mermaid">pie`) {
		t.Errorf("diagram html = %q", s)
	}
	if !strings.Contains(s, "&quot;A&quot; : 1") {
		t.Errorf("label not escaped: %q", s)
	}
	if strings.Contains(s, "<pre>") {
		t.Errorf("code block left in place: %q", s)
	}
}

func TestModelInspector(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Model(diagrams.Pie{Title: "Pets", Items: []diagrams.PieItem{{Label: "Dogs", Value: 3}}})
	if err != nil {
		t.Fatal(err)
	}
	s := string(got)
	if !strings.Contains(s, "<pre") || !strings.Contains(s, "Pets") || !strings.Contains(s, "Dogs") {
		t.Errorf("inspector html = %q", s)
	}
	if empty, _ := r.Model(nil); empty != "" {
		t.Errorf("nil model = %q", empty)
	}
}

func TestNoteKeepsOtherFences(t *testing.T) {
	r := newRenderer(t)
	src := "# Title\n\n```mermaid\ngraph TD\n```\n\n```go\nfunc main() {}\n```\n"
	got, err := r.Note([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	s := string(got)
	if !strings.Contains(s, `<div class="mermaid">graph TD`) {
		t.Errorf("mermaid block missing: %q", s)
	}
	if !strings.Contains(s, `<code class="language-go">`) {
		t.Errorf("go block changed: %q", s)
	}
	if !strings.Contains(s, `<h1 id="title">Title</h1>`) {
		t.Errorf("heading missing: %q", s)
	}
}

func TestNoteKeepsInlineHTML(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Note([]byte("Press <kbd>Ctrl</kbd> to pan.\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "<kbd>Ctrl</kbd>") {
		t.Errorf("inline html dropped: %q", got)
	}
}

func TestPostProcessMermaid(t *testing.T) {
	in := `<p>a</p><pre><code class="language-mermaid">x</code></pre><pre><code class="language-mermaid">y</code></pre>`
	want := `<p>a</p><div class="mermaid">x</div><div class="mermaid">y</div>`
	if got := postProcessMermaid(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	unterminated := `<pre><code class="language-mermaid">x`
	if got := postProcessMermaid(unterminated); got != unterminated {
		t.Errorf("unterminated block changed: %q", got)
	}
}

func TestPage(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	if err := r.Page(&buf, PageData{Title: "Pie <chart>", Content: "<div>x</div>", SessionID: "abc"}); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if !strings.Contains(s, "<title>Pie &lt;chart&gt;</title>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(s, `/api/sessions/abc/ws`) {
		t.Error("websocket refresh missing")
	}
	if !strings.Contains(s, `<html lang="en">`) {
		t.Error("default language missing")
	}
}

func TestRoutes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "note.md"), []byte("```mermaid\npie\n```\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := vault.Open(dir, vault.Options{})
	if err != nil {
		t.Fatal(err)
	}
	mgr := session.NewManager(session.Options{}, "zh")
	t.Cleanup(mgr.CloseAll)
	sess, err := mgr.Create(diagrams.KindPie, nil, "")
	if err != nil {
		t.Fatal(err)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, newRenderer(t), mgr, v)

	get := func(url string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		return w
	}

	w := get("/sessions/" + sess.ID + "/preview")
	if w.Code != http.StatusOK {
		t.Fatalf("session preview: %d %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "<title>饼图</title>") || !strings.Contains(body, `<div class="mermaid">pie`) {
		t.Errorf("session page:\n%s", body)
	}
	if !strings.Contains(body, `lang="zh"`) {
		t.Error("page language not set")
	}

	if w := get("/sessions/missing/preview"); w.Code != http.StatusNotFound {
		t.Errorf("missing session: %d", w.Code)
	}
	if w := get("/vault/preview?path=note.md"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `<div class="mermaid">pie`) {
		t.Errorf("note preview: %d", w.Code)
	}
	if w := get("/vault/preview?path=gone.md"); w.Code != http.StatusNotFound {
		t.Errorf("missing note: %d", w.Code)
	}
	if w := get("/vault/preview?path=../x.md"); w.Code != http.StatusBadRequest {
		t.Errorf("outside vault: %d", w.Code)
	}
	if w := get("/vault/preview?path=pic.png"); w.Code != http.StatusBadRequest {
		t.Errorf("non-note: %d", w.Code)
	}
}
