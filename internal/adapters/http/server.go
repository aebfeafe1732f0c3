// Package http exposes the machine registry as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	automata "github.com/GNINE11/ProjAutomata-TC"
	"github.com/GNINE11/ProjAutomata-TC/internal/logging"
	"github.com/GNINE11/ProjAutomata-TC/internal/presentation/graph"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
	"github.com/go-chi/chi/v5"
)

// Server handles the machine API routes.
type Server struct {
	registry  *registry.Registry
	logger    *slog.Logger
	metrics   *Metrics
	stepLimit int
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the structured logger used by the handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics attaches request metrics and mounts GET /metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithStepLimit caps every run dispatched through the API.
func WithStepLimit(n int) Option {
	return func(s *Server) {
		s.stepLimit = n
	}
}

// NewHandler creates the HTTP handler for the registry.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	s := &Server{
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/machines", func(r chi.Router) {
		r.Post("/", s.createMachine)
		r.Get("/", s.listMachines)
		r.Get("/{id}", s.getMachine)
		r.Delete("/{id}", s.deleteMachine)
		r.Post("/{id}/run", s.runMachine)
		r.Get("/{id}/diagram", s.getDiagram)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Automata API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

type createRequest struct {
	Kind       string          `json:"kind"`
	Definition json.RawMessage `json:"definition"`
}

type runRequest struct {
	Input string `json:"input"`
}

type runResponse struct {
	machine.Result
	Accepted bool `json:"accepted"`
}

type machineResponse struct {
	ID           string          `json:"id"`
	Kind         machine.Kind    `json:"kind"`
	States       []machine.State `json:"states"`
	InitialState machine.State   `json:"initial_state"`
	FinalStates  []machine.State `json:"final_states"`
	Edges        []machine.Edge  `json:"edges"`
}

// createMachine handles POST /machines.
func (s *Server) createMachine(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := machine.ParseKind(body.Kind)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(body.Definition) == 0 {
		s.writeError(w, http.StatusBadRequest, "definition is required")
		return
	}

	id, err := s.registry.Create(r.Context(), kind, body.Definition)
	if err != nil {
		s.logger.Warn("machine rejected", "kind", kind, "err", err)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.metrics != nil {
		s.metrics.MachineCreated(kind)
	}
	s.logger.Info("machine created", "kind", kind, "id", id)
	s.writeJSON(w, http.StatusCreated, registry.Info{ID: id, Kind: kind})
}

// listMachines handles GET /machines.
func (s *Server) listMachines(w http.ResponseWriter, r *http.Request) {
	infos, err := s.registry.Describe(r.Context())
	if err != nil {
		s.logger.Error("list failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list machines")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"machines": infos})
}

// getMachine handles GET /machines/{id}.
func (s *Server) getMachine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.registry.Get(r.Context(), id)
	if err != nil {
		s.respondLookupError(w, id, err)
		return
	}

	s.writeJSON(w, http.StatusOK, machineResponse{
		ID:           id,
		Kind:         m.Kind(),
		States:       m.States(),
		InitialState: m.InitialState(),
		FinalStates:  m.FinalStates(),
		Edges:        m.Edges(),
	})
}

// deleteMachine handles DELETE /machines/{id}.
func (s *Server) deleteMachine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.registry.Get(r.Context(), id); err != nil {
		s.respondLookupError(w, id, err)
		return
	}
	if err := s.registry.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete failed", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete machine")
		return
	}

	s.logger.Info("machine deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// runMachine handles POST /machines/{id}/run.
func (s *Server) runMachine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body runRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := s.registry.Get(r.Context(), id)
	if err != nil {
		s.respondLookupError(w, id, err)
		return
	}

	var opts []machine.RunOption
	if s.stepLimit > 0 {
		opts = append(opts, machine.WithStepLimit(s.stepLimit))
	}

	start := time.Now()
	res, err := m.Run(body.Input, opts...)
	if err != nil {
		var inputErr *machine.InputError
		if errors.As(err, &inputErr) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("run failed", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "run failed")
		return
	}

	if s.metrics != nil {
		s.metrics.RunObserved(m.Kind(), res.Verdict, time.Since(start))
	}
	s.logger.Debug("machine ran", "id", id, "verdict", res.Verdict, "steps", res.Steps)
	s.writeJSON(w, http.StatusOK, runResponse{Result: res, Accepted: res.Accepted()})
}

// getDiagram handles GET /machines/{id}/diagram.
func (s *Server) getDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.registry.Get(r.Context(), id)
	if err != nil {
		s.respondLookupError(w, id, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "dot"
	}

	switch format {
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write([]byte(graph.GenerateDOT(m)))
	case "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(graph.GenerateMermaid(m)))
	default:
		s.writeError(w, http.StatusBadRequest, "unknown diagram format: "+format)
	}
}

// getHealth handles the GET /health request.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getInfo handles the GET /info request.
func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) respondLookupError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, registry.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "machine not found")
		return
	}
	s.logger.Error("lookup failed", "id", id, "err", err)
	s.writeError(w, http.StatusInternalServerError, "failed to load machine")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
