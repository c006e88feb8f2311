package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/editor"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// View is the JSON form of a session.
type View struct {
	ID    string         `json:"id"`
	State string         `json:"state"`
	Kind  diagrams.Kind  `json:"kind,omitempty"`
	Model diagrams.Model `json:"model,omitempty"`
	Code  string         `json:"code,omitempty"`
	Form  *editor.Form   `json:"form,omitempty"`
}

// ViewOf snapshots s.
func ViewOf(s *Session) View {
	v := View{ID: s.ID, State: s.State().String(), Kind: s.Kind(), Model: s.Model(), Code: s.Code()}
	if f, err := s.Form(); err == nil {
		v.Form = &f
	}
	return v
}

type createRequest struct {
	Kind   diagrams.Kind   `json:"kind"`
	Model  json.RawMessage `json:"model,omitempty"`
	Locale string          `json:"locale,omitempty"`
}

type selectRequest struct {
	Kind diagrams.Kind `json:"kind"`
}

type confirmRequest struct {
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	EndLine int    `json:"end_line,omitempty"`
}

// wsMessage is exchanged over the session websocket.
type wsMessage struct {
	Type  string        `json:"type"` // "preview", "patch", "error"
	Code  string        `json:"code,omitempty"`
	Patch *editor.Patch `json:"patch,omitempty"`
	Error string        `json:"error,omitempty"`
}

// RegisterRoutes mounts the editing session API. v may be nil, in which
// case confirm is unavailable.
func RegisterRoutes(r chi.Router, mgr *Manager, v *vault.Vault) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Get("/", handleList(mgr))
		r.Post("/", handleCreate(mgr))
		r.Get("/{id}", handleGet(mgr))
		r.Post("/{id}/kind", handleSelect(mgr))
		r.Post("/{id}/patch", handlePatch(mgr))
		r.Post("/{id}/confirm", handleConfirm(mgr, v))
		r.Delete("/{id}", handleCancel(mgr))
		r.Get("/{id}/ws", handleWebSocket(mgr))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps session errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotEditing), errors.Is(err, ErrClosed):
		return http.StatusConflict
	case errors.Is(err, vault.ErrOutsideVault),
		errors.Is(err, diagrams.ErrUnknownKind),
		errors.Is(err, editor.ErrUnknownOp),
		errors.Is(err, editor.ErrUnknownField),
		errors.Is(err, editor.ErrNoDrag):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func handleList(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"sessions": mgr.IDs()})
	}
}

func handleCreate(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
				return
			}
		}
		var model diagrams.Model
		if len(req.Model) > 0 && req.Kind != "" {
			m, err := diagrams.DecodeModel(req.Kind, req.Model)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			model = m
		}
		sess, err := mgr.Create(req.Kind, model, req.Locale)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, ViewOf(sess))
	}
}

func handleGet(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := mgr.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, ViewOf(sess))
	}
}

func handleSelect(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := mgr.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		var req selectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
		if err := sess.SelectKind(req.Kind); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, ViewOf(sess))
	}
}

func handlePatch(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := mgr.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		var p editor.Patch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
		if err := sess.Apply(p); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, ViewOf(sess))
	}
}

func handleConfirm(mgr *Manager, v *vault.Vault) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if v == nil {
			writeError(w, http.StatusServiceUnavailable, errors.New("no vault configured"))
			return
		}
		var req confirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
			writeError(w, http.StatusBadRequest, errors.New("path is required"))
			return
		}
		cursor, err := v.Cursor(req.Path, req.Line, req.EndLine)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		text, err := mgr.Confirm(r.Context(), chi.URLParam(r, "id"), cursor)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"path": req.Path, "text": text})
	}
}

func handleCancel(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := mgr.Cancel(chi.URLParam(r, "id")); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleWebSocket streams debounced previews and accepts patches.
func handleWebSocket(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := mgr.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("session: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		var writeMu sync.Mutex
		send := func(msg wsMessage) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("session: websocket write: %v", err)
			}
		}

		unsubscribe := sess.Subscribe(func(code string) {
			send(wsMessage{Type: "preview", Code: code})
		})
		defer unsubscribe()
		send(wsMessage{Type: "preview", Code: sess.Code()})

		// Closing the session ends the connection, which unblocks the read
		// loop below.
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-sess.Done():
				writeMu.Lock()
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(time.Second))
				writeMu.Unlock()
				conn.Close()
			case <-stop:
			}
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("session: websocket read: %v", err)
				}
				return
			}
			var msg wsMessage
			if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "patch" || msg.Patch == nil {
				send(wsMessage{Type: "error", Error: "invalid message format"})
				continue
			}
			if err := sess.Apply(*msg.Patch); err != nil {
				send(wsMessage{Type: "error", Error: err.Error()})
			}
		}
	}
}
