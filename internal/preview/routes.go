package preview

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/mermaid-studio/internal/session"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// RegisterRoutes mounts the HTML preview pages. v may be nil, in which
// case note previews are unavailable.
func RegisterRoutes(r chi.Router, rend *Renderer, mgr *session.Manager, v *vault.Vault) {
	r.Get("/sessions/{id}/preview", handleSession(rend, mgr))
	r.Get("/vault/preview", handleNote(rend, v))
}

func handleSession(rend *Renderer, mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := mgr.Get(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		content, err := rend.Diagram(sess.Code())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		inspector, err := rend.Model(sess.Model())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		loc := sess.Locale()
		title := loc.T("kind." + string(sess.Kind()))
		if sess.Kind() == "" {
			title = loc.T("session.pick_kind")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := rend.Page(w, PageData{
			Title:     title,
			Lang:      loc.Lang(),
			Content:   content,
			Inspector: inspector,
			SessionID: sess.ID,
		}); err != nil {
			log.Printf("preview: render session %s: %v", sess.ID, err)
		}
	}
}

func handleNote(rend *Renderer, v *vault.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if v == nil {
			http.Error(w, "no vault configured", http.StatusServiceUnavailable)
			return
		}
		rel := r.URL.Query().Get("path")
		if !vault.IsMarkdown(rel) {
			http.Error(w, "path must be a markdown note", http.StatusBadRequest)
			return
		}
		abs, err := v.Abs(rel)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		src, err := os.ReadFile(abs)
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		content, err := rend.Note(src)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := rend.Page(w, PageData{Title: path.Base(rel), Content: content}); err != nil {
			log.Printf("preview: render note %s: %v", rel, err)
		}
	}
}
