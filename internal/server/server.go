// Package server exposes the HTTP surface: render, theme CRUD, and
// health. All /api/* routes except health require an X-API-Key header.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	wemark "github.com/alekzhu/wemark"
	"github.com/alekzhu/wemark/internal/auth"
	"github.com/alekzhu/wemark/internal/themestore"
)

// maxThemeUploadSize limits theme uploads to 1 MB.
const maxThemeUploadSize = 1 << 20

// Renderer is the render entrypoint consumed by the HTTP layer.
type Renderer interface {
	Render(ctx context.Context, input wemark.Input) (*wemark.RenderResult, error)
}

// Pool hands out renderers for concurrent in-flight renders.
type Pool interface {
	Acquire() Renderer
	Release(Renderer)
}

// Server handles the HTTP API.
type Server struct {
	pool   Pool
	store  *themestore.Store
	keys   *auth.KeySet
	logger *log.Logger
}

// NewServer creates a Server.
func NewServer(pool Pool, store *themestore.Store, keys *auth.KeySet, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Server{
		pool:   pool,
		store:  store,
		keys:   keys,
		logger: logger,
	}
}

// Register attaches all routes to the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/api/render", s.requireKey(http.HandlerFunc(s.handleRender)))
	mux.Handle("/api/themes", s.requireKey(http.HandlerFunc(s.handleThemes)))
	mux.Handle("/api/themes/", s.requireKey(http.HandlerFunc(s.handleThemeByID)))
}

// requireKey rejects requests whose X-API-Key header is not in the key
// set. An empty key set accepts any key (development mode).
func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.keys.Allow(r.Header.Get("X-API-Key")) {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------- render ----------

type renderRequest struct {
	Markdown string                `json:"markdown"`
	ThemeID  string                `json:"themeId"`
	Format   string                `json:"format"`
	Options  *wemark.RenderOptions `json:"options"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Markdown == "" {
		writeError(w, http.StatusBadRequest, "markdown is required")
		return
	}

	format, err := wemark.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := wemark.Input{
		Markdown: req.Markdown,
		ThemeID:  req.ThemeID,
		Format:   format,
	}
	if req.Options != nil {
		input.Options = *req.Options
	}

	renderer := s.pool.Acquire()
	defer s.pool.Release(renderer)

	result, err := renderer.Render(r.Context(), input)
	if err != nil {
		s.logger.Printf("[server] render failed: %v", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	writeData(w, http.StatusOK, result)
}

// ---------- themes ----------

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := s.store.List()
		if err != nil {
			s.logger.Printf("[server] list themes failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to list themes")
			return
		}
		writeData(w, http.StatusOK, records)

	case http.MethodPost:
		s.handleThemeUpload(w, r)

	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleThemeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxThemeUploadSize)
	if err := r.ParseMultipartForm(maxThemeUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !isCSSUpload(header) {
		writeError(w, http.StatusBadRequest, "file must be a CSS stylesheet")
		return
	}

	cssText, err := io.ReadAll(io.LimitReader(file, maxThemeUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(header.Filename, ".css")
	}

	rec, err := s.store.Create(name, string(cssText))
	if err != nil {
		if errors.Is(err, themestore.ErrEmptyCSS) {
			writeError(w, http.StatusBadRequest, "theme css cannot be empty")
			return
		}
		s.logger.Printf("[server] create theme failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to store theme")
		return
	}

	writeData(w, http.StatusCreated, rec)
}

// isCSSUpload accepts files with a .css extension or a text/css mimetype.
func isCSSUpload(header *multipart.FileHeader) bool {
	if strings.HasSuffix(strings.ToLower(header.Filename), ".css") {
		return true
	}
	ct := header.Header.Get("Content-Type")
	return strings.HasPrefix(strings.ToLower(ct), "text/css")
}

func (s *Server) handleThemeByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/themes/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, css, err := s.store.Get(id)
		if err != nil {
			if errors.Is(err, themestore.ErrNotFound) {
				writeError(w, http.StatusNotFound, "theme not found")
				return
			}
			s.logger.Printf("[server] get theme failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to load theme")
			return
		}
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Name+".css"))
		_, _ = w.Write([]byte(css))

	case http.MethodDelete:
		if err := s.store.Delete(id); err != nil {
			if errors.Is(err, themestore.ErrNotFound) {
				writeError(w, http.StatusNotFound, "theme not found")
				return
			}
			s.logger.Printf("[server] delete theme failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to delete theme")
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{Success: true})

	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodDelete)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// ---------- response helpers ----------

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON error: %v", err)
	}
}
