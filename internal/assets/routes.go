package assets

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// RegisterRoutes mounts the asset index API routes.
func RegisterRoutes(r chi.Router, c *Checker) {
	r.Route("/api/assets", func(r chi.Router) {
		r.Get("/", handleList(c))
		r.Get("/scan", handleLastScan(c))
		r.Post("/scan", handleScan(c))
		r.Get("/references", handleReferences(c))
		r.Get("/backlinks", handleBacklinks(c))
		r.Post("/rename", handleRename(c))
		r.Post("/trash", handleTrash(c))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotIndexed), errors.Is(err, os.ErrNotExist):
		status = http.StatusNotFound
	case errors.Is(err, ErrConfirmRequired):
		status = http.StatusPreconditionRequired
	case errors.Is(err, vault.ErrExists):
		status = http.StatusConflict
	case errors.Is(err, vault.ErrOutsideVault), errors.Is(err, vault.ErrInvalidName):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func handleList(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{}
		q := r.URL.Query()
		if v := q.Get("unused"); v != "" {
			filter.Unused, _ = strconv.ParseBool(v)
		}
		filter.Prefix = q.Get("prefix")
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Limit = n
			}
		}
		if v := q.Get("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Offset = n
			}
		}

		list, err := c.store.List(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		if list == nil {
			list = []Asset{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleLastScan(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scan, err := c.store.LastScan(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if scan == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scan yet"})
			return
		}
		writeJSON(w, http.StatusOK, scan)
	}
}

func handleScan(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scan, err := c.Scan(r.Context(), nil)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, scan)
	}
}

func handleReferences(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path is required"})
			return
		}
		if _, err := c.store.Get(r.Context(), path); err != nil {
			writeError(w, err)
			return
		}
		refs, err := c.store.References(r.Context(), path)
		if err != nil {
			writeError(w, err)
			return
		}
		if refs == nil {
			refs = []vault.Reference{}
		}
		writeJSON(w, http.StatusOK, refs)
	}
}

// handleBacklinks reads the vault directly rather than the index, so it
// also works for notes and for files added since the last scan.
func handleBacklinks(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path is required"})
			return
		}
		sources, err := c.vault.Backlinks(r.Context(), path)
		if err != nil {
			writeError(w, err)
			return
		}
		if sources == nil {
			sources = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"path": path, "sources": sources})
	}
}

type renameRequest struct {
	Path    string `json:"path"`
	NewName string `json:"new_name"`
}

func handleRename(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" || req.NewName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path and new_name are required"})
			return
		}
		to, err := c.Rename(r.Context(), req.Path, req.NewName)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"from": req.Path, "to": to})
	}
}

type trashRequest struct {
	Path    string `json:"path"`
	Confirm bool   `json:"confirm"`
}

func handleTrash(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req trashRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path is required"})
			return
		}
		dest, err := c.Trash(r.Context(), req.Path, req.Confirm)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"path": req.Path, "trashed_to": dest})
	}
}
