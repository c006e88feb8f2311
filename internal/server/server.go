package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/mermaid-studio/internal/assets"
	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/editor"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
	"github.com/ziadkadry99/mermaid-studio/internal/preview"
	"github.com/ziadkadry99/mermaid-studio/internal/session"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool   // allow all CORS origins (dev mode)
	Locale   string // language for requests that do not name one
	// SessionTTL drops editing sessions idle for longer. Zero keeps them.
	SessionTTL time.Duration
	// Defaults builds starting models; nil uses editor.Defaults.
	Defaults session.DefaultsFunc
}

// Deps are the collaborators the server exposes over HTTP. Vault and
// Assets may be nil.
type Deps struct {
	Sessions *session.Manager
	Vault    *vault.Vault
	Assets   *assets.Checker
	Preview  *preview.Renderer
}

// Server is the local editor server.
type Server struct {
	cfg         Config
	deps        Deps
	router      chi.Router
	httpServer  *http.Server
	stopCleanup func()
}

// New creates a server with all dependencies.
func New(cfg Config, deps Deps) (*Server, error) {
	if cfg.Locale == "" {
		cfg.Locale = i18n.DefaultLang
	}
	if cfg.Defaults == nil {
		cfg.Defaults = editor.Defaults
	}
	if deps.Sessions == nil {
		deps.Sessions = session.NewManager(session.Options{Defaults: cfg.Defaults}, cfg.Locale)
	}
	if deps.Preview == nil {
		p, err := preview.New(preview.DefaultStyle)
		if err != nil {
			return nil, err
		}
		deps.Preview = p
	}
	s := &Server{cfg: cfg, deps: deps}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*", "app://obsidian.md"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/kinds", s.handleKinds)
	r.Get("/api/kinds/{kind}/defaults", s.handleDefaults)
	r.Post("/api/generate", s.handleGenerate)

	// Feature packages register their own routes.
	session.RegisterRoutes(r, s.deps.Sessions, s.deps.Vault)
	if s.deps.Assets != nil {
		assets.RegisterRoutes(r, s.deps.Assets)
	}
	preview.RegisterRoutes(r, s.deps.Preview, s.deps.Sessions, s.deps.Vault)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) locale(r *http.Request) *i18n.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return i18n.New(lang)
	}
	return i18n.New(s.cfg.Locale)
}

type kindInfo struct {
	Kind  diagrams.Kind `json:"kind"`
	Label string        `json:"label"`
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	loc := s.locale(r)
	kinds := diagrams.Kinds()
	out := make([]kindInfo, len(kinds))
	for i, k := range kinds {
		out[i] = kindInfo{Kind: k, Label: loc.T("kind." + string(k))}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	kind, err := diagrams.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	m, err := s.cfg.Defaults(kind, s.locale(r), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type generateRequest struct {
	Kind  diagrams.Kind   `json:"kind"`
	Model json.RawMessage `json:"model"`
}

type generateResponse struct {
	Code  string `json:"code"`
	Fence string `json:"fence"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	kind, err := diagrams.ParseKind(string(req.Kind))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	m, err := diagrams.DecodeModel(kind, req.Model)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	code := diagrams.GenerateWith(kind, m, s.locale(r).Fallbacks())
	writeJSON(w, http.StatusOK, generateResponse{Code: code, Fence: diagrams.Fence(code)})
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Sessions returns the editing session manager.
func (s *Server) Sessions() *session.Manager { return s.deps.Sessions }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if s.cfg.SessionTTL > 0 {
		s.stopCleanup = s.deps.Sessions.StartCleanup(s.cfg.SessionTTL/2, s.cfg.SessionTTL)
	}

	log.Printf("mermaid-studio server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and cancels open sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopCleanup != nil {
		s.stopCleanup()
	}
	s.deps.Sessions.CloseAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
