package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nvelop/pitchdrill/internal/catalog"
	"github.com/nvelop/pitchdrill/internal/roleplay"
	"github.com/nvelop/pitchdrill/internal/scriptgen"
)

// Catalog is the persona/script storage the API serves. Reads dominate;
// the only write is persisting a freshly generated script.
type Catalog interface {
	ListPersonas(ctx context.Context) ([]catalog.Persona, error)
	ListScripts(ctx context.Context, f catalog.ScriptFilter) ([]catalog.Script, error)
	GetScript(ctx context.Context, id uuid.UUID) (*catalog.Script, error)
	ScriptFilterOptions(ctx context.Context) (*catalog.FilterOptions, error)
	CreateScript(ctx context.Context, sc *catalog.Script) (*catalog.Script, error)
}

// ScriptGenerator produces a script from prospect research.
type ScriptGenerator interface {
	Generate(ctx context.Context, p scriptgen.Prospect) (*catalog.Script, error)
}

type Server struct {
	router    *chi.Mux
	engine    *roleplay.Engine
	catalog   Catalog
	generator ScriptGenerator
	logger    *slog.Logger
	port      int
}

func NewServer(engine *roleplay.Engine, cat Catalog, gen ScriptGenerator, logger *slog.Logger, port int) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		engine:    engine,
		catalog:   cat,
		generator: gen,
		logger:    logger,
		port:      port,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/personas", s.listPersonas)
		r.Get("/scripts", s.listScripts)
		r.Post("/scripts", s.generateScript)
		r.Get("/scripts/filters", s.scriptFilters)
		r.Get("/scripts/{scriptID}", s.getScript)

		r.Route("/roleplay/sessions", func(r chi.Router) {
			r.Post("/", s.startSession)
			r.Get("/", s.listSessions)
			r.Get("/{sessionID}", s.getSession)
			r.Post("/{sessionID}/messages", s.submitTurn)
			r.Patch("/{sessionID}/end", s.endSession)
		})
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps core error kinds onto HTTP statuses. Provider failures
// come through as 502 so the UI can tell "message recorded, no reply"
// apart from "message rejected".
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, roleplay.ErrSessionNotFound):
		writeDetail(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, roleplay.ErrPersonaNotFound):
		writeDetail(w, http.StatusNotFound, "Persona not found")
	case errors.Is(err, roleplay.ErrScriptNotFound):
		writeDetail(w, http.StatusNotFound, "Script not found")
	case errors.Is(err, roleplay.ErrSessionClosed):
		writeDetail(w, http.StatusBadRequest, "Session has ended")
	case errors.Is(err, roleplay.ErrAlreadyEnded):
		writeDetail(w, http.StatusBadRequest, "Session already ended")
	default:
		var upstream *roleplay.UpstreamError
		if errors.As(err, &upstream) {
			if upstream.Quota {
				writeDetail(w, http.StatusBadGateway, "OpenAI quota exceeded. Please add credits at platform.openai.com/settings/organization/billing")
			} else {
				writeDetail(w, http.StatusBadGateway, "AI service error: "+upstream.Message)
			}
			return
		}
		s.logger.Error("request failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func parseID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	return id, err == nil
}
