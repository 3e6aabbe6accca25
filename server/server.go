// Package server exposes the statement pipeline and the analyst agent over
// HTTP: POST /api/upload parses a statement into a session, POST /api/chat
// answers questions about it.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/agent"
	"github.com/knatarajan-dev/casfolio/cas"
	"github.com/knatarajan-dev/casfolio/date"
	"github.com/knatarajan-dev/casfolio/refdata"
	"github.com/knatarajan-dev/casfolio/renderer"
	"google.golang.org/genai"
)

// sessionHeader carries the client's session identifier, minted on first
// upload.
const sessionHeader = "session_id"

const maxUploadBytes = 16 << 20 // statements are a few MB at most

// Server is the HTTP API over the portfolio pipeline.
type Server struct {
	cfg      Config
	ref      *refdata.Table
	sessions *sessionStore
	log      *slog.Logger
	genai    *genai.Client
	router   chi.Router
}

// New assembles the server: reference data is loaded once here and shared,
// read-only, by every request.
func New(cfg Config, ref *refdata.Table, client *genai.Client, log *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		ref:      ref,
		sessions: newSessionStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute),
		log:      log,
		genai:    client,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Post("/chat", s.handleChat)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s)
}

// handleUpload decodes the statement, derives the portfolio as one atomic
// unit and stores it in the caller's session.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("could not parse form or request too large (max %d MB)", maxUploadBytes>>20))
		return
	}
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "could not read file from request; use the 'file' field")
		return
	}
	defer file.Close()
	password := r.FormValue("password")

	raw, err := s.decodeStatement(file, fileHeader.Filename, fileHeader.Size, password)
	if err != nil {
		s.log.Warn("statement decode failed", "filename", fileHeader.Filename, "error", err)
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("could not decode statement: %v", err))
		return
	}

	portfolio, err := casfolio.NewPortfolio(raw, s.ref, date.Today())
	if err != nil {
		s.log.Warn("portfolio derivation failed", "filename", fileHeader.Filename, "error", err)
		s.sendError(w, http.StatusUnprocessableEntity, fmt.Sprintf("could not derive portfolio: %v", err))
		return
	}

	id := s.sessions.put(r.Header.Get(sessionHeader), &Session{Portfolio: portfolio})
	s.log.Info("statement parsed",
		"session", id,
		"transactions", len(portfolio.Transactions),
		"current", len(portfolio.CurrentHoldings),
		"past", len(portfolio.PastHoldings))

	w.Header().Set(sessionHeader, id)
	s.sendJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"reply":      renderer.HoldingsMarkdown(portfolio),
	})
}

// decodeStatement picks the decoder from the filename: the PDF statement
// itself, or a pre-exported CSV transaction table.
func (s *Server) decodeStatement(file io.Reader, filename string, size int64, password string) ([]casfolio.Transaction, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return cas.DecodeCSV(file)
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return cas.Decode(bytes.NewReader(content), int64(len(content)), password)
}

type chatRequest struct {
	Message string `json:"message"`
}

// handleChat answers one question over the session's portfolio.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		s.sendError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'message'")
		return
	}

	session := s.sessions.get(r.Header.Get(sessionHeader))
	if session == nil {
		s.sendError(w, http.StatusNotFound, "no portfolio for this session; upload a statement first")
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.analyst == nil {
		analyst := agent.NewAnalyst(session.Portfolio, s.ref)
		session.analyst = agent.New(io.Discard, strings.NewReader(""), analyst)
	}

	reply, err := session.analyst.Answer(r.Context(), s.genai, req.Message)
	if err != nil {
		s.log.Error("chat failed", "session", session.ID, "error", err)
		s.sendError(w, http.StatusBadGateway, "the analyst could not answer; try again")
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]any{"reply": reply})
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("could not encode response", "error", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"error": message})
}
