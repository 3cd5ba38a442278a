// Package devserver is a local stand-in for the label backend. It serves the
// label catalog and accepts ticket label writes guarded by a CSRF cookie.
package devserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/thenoetrevino/labelpick/internal/database"
	"github.com/thenoetrevino/labelpick/internal/models"
)

const (
	// LabelsPath is the endpoint serving both the catalog and writes
	LabelsPath = "/labels/"

	csrfCookie = "csrftoken"
	csrfHeader = "X-CSRFToken"
)

// Server is the development label server
type Server struct {
	db         *sql.DB
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over db
func New(db *sql.DB, addr string) *Server {
	s := &Server{db: db}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/", s.handleIndex)
	r.Get(LabelsPath, s.handleListLabels)
	r.With(requireCSRF).Post(LabelsPath, s.handleSaveLabels)
	r.Get("/tickets/{id}/labels", s.handleTicketLabels)

	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	slog.Info("label dev server listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ensureCSRFCookie issues a token cookie when the client has none
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(csrfCookie); err == nil && ck.Value != "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    uuid.NewString(),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// requireCSRF rejects writes whose header token does not match the cookie
func requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(csrfCookie)
		if err != nil || ck.Value == "" || r.Header.Get(csrfHeader) != ck.Value {
			http.Error(w, "CSRF verification failed", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ensureCSRFCookie(w, r)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("labelpick dev server\n"))
}

func (s *Server) handleListLabels(w http.ResponseWriter, r *http.Request) {
	ensureCSRFCookie(w, r)

	labels, err := database.GetAllLabels(r.Context(), s.db)
	if err != nil {
		slog.Error("failed to list labels", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

func (s *Server) handleSaveLabels(w http.ResponseWriter, r *http.Request) {
	var body models.TicketLabels
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	err := database.SetTicketLabels(r.Context(), s.db, body.Ticket, body.Labels)
	switch {
	case errors.Is(err, database.ErrTicketNotFound):
		http.Error(w, "ticket not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Warn("rejected ticket labels", "ticket", body.Ticket, "labels", body.Labels, "error", err)
		http.Error(w, "invalid labels", http.StatusBadRequest)
		return
	}

	slog.Info("ticket labels updated", "ticket", body.Ticket, "labels", body.Labels)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTicketLabels(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid ticket id", http.StatusBadRequest)
		return
	}

	exists, err := database.TicketExists(r.Context(), s.db, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "ticket not found", http.StatusNotFound)
		return
	}

	labels, err := database.GetLabelsForTicket(r.Context(), s.db, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}
