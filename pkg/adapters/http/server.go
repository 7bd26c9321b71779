// Package http exposes the generator as a stateless JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/dto"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/recipes"
	"github.com/aretw0/arbor/pkg/scene"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is the version of the request/response shapes served here.
const APIVersion = "1"

// maxBodyBytes caps request bodies; grammar documents are small.
const maxBodyBytes = 1 << 20

// Engine defines what the server needs from the generator.
type Engine interface {
	ports.Generator
	Load(ctx context.Context, name string) (*domain.Result, error)
	Loader() ports.GrammarLoader
	Watch(ctx context.Context) (<-chan string, error)
}

// Server holds the handlers.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/recipes", server.ListRecipes)
	r.Get("/grammars", server.ListGrammars)
	r.Get("/schema", server.GetSchema)
	r.Get("/events", server.SubscribeEvents)
	r.Post("/expand", server.Expand)
	r.Post("/generate", server.Generate)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Request selects a grammar by exactly one of Recipe, Name or Grammar.
type Request struct {
	Recipe  string         `json:"recipe,omitempty"`
	Label   string         `json:"label,omitempty"`
	Name    string         `json:"name,omitempty"`
	Grammar map[string]any `json:"grammar,omitempty"`
	Format  string         `json:"format,omitempty"`
}

// ExpandResponse is the body of a successful POST /expand.
type ExpandResponse struct {
	Grammar  string `json:"grammar"`
	Expanded string `json:"expanded"`
	Length   int    `json:"length"`
}

// GenerateResponse is the body of a successful POST /generate.
type GenerateResponse struct {
	Grammar    string           `json:"grammar"`
	Segments   int              `json:"segments"`
	Cached     bool             `json:"cached"`
	DurationMS float64          `json:"duration_ms"`
	Stats      scene.Stats      `json:"stats"`
	Scene      scene.ExportNode `json:"scene"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// RecipeInfo describes one built-in recipe.
type RecipeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Expand handles the POST /expand request.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	g, err := s.resolve(r.Context(), req)
	if err != nil {
		s.fail(w, "Expand", err)
		return
	}

	expanded, err := s.Engine.Expand(r.Context(), g)
	if err != nil {
		s.fail(w, "Expand", err)
		return
	}
	writeJSON(w, http.StatusOK, ExpandResponse{Grammar: g.Name, Expanded: expanded, Length: len(expanded)})
}

// Generate handles the POST /generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	if req.Format != "" && req.Format != "json" && req.Format != "mermaid" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unsupported format %q", req.Format)})
		return
	}

	var (
		res *domain.Result
		err error
	)
	if req.Name != "" && req.Recipe == "" && req.Grammar == nil {
		res, err = s.Engine.Load(r.Context(), req.Name)
	} else {
		var g domain.Grammar
		if g, err = s.resolve(r.Context(), req); err == nil {
			res, err = s.Engine.Generate(r.Context(), g)
		}
	}
	if err != nil {
		s.fail(w, "Generate", err)
		return
	}

	if req.Format == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, graph.GenerateMermaid(res.Root, nil))
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Grammar:    res.Grammar,
		Segments:   res.Segments,
		Cached:     res.Cached,
		DurationMS: float64(res.Duration.Microseconds()) / 1000,
		Stats:      scene.Collect(res.Root),
		Scene:      scene.Export(res.Root),
	})
}

// ListRecipes handles the GET /recipes request.
func (s *Server) ListRecipes(w http.ResponseWriter, r *http.Request) {
	names := recipes.Names()
	out := make([]RecipeInfo, 0, len(names))
	for _, name := range names {
		out = append(out, RecipeInfo{Name: name, Description: recipes.Catalog[name].Description})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListGrammars handles the GET /grammars request.
func (s *Server) ListGrammars(w http.ResponseWriter, r *http.Request) {
	loader := s.Engine.Loader()
	if loader == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	names, err := loader.ListGrammars(r.Context())
	if err != nil {
		s.fail(w, "ListGrammars", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "arbor-http",
		"version":     strings.TrimSpace(arbor.Version),
		"api_version": APIVersion,
	})
}

// GetSchema handles the GET /schema request. It describes the grammar
// document accepted by /expand and /generate.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schema.Grammar)
}

// SubscribeEvents handles the GET /events request (SSE). It streams the name
// of each grammar that changes in the loader.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		writeJSON(w, http.StatusNotImplemented, ErrorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case name, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", name)
			flusher.Flush()
		}
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		return req, false
	}

	set := 0
	for _, present := range []bool{req.Recipe != "", req.Name != "", req.Grammar != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "exactly one of recipe, name or grammar is required"})
		return req, false
	}
	return req, true
}

func (s *Server) resolve(ctx context.Context, req Request) (domain.Grammar, error) {
	switch {
	case req.Recipe != "":
		return recipes.Lookup(req.Recipe, req.Label)
	case req.Name != "":
		loader := s.Engine.Loader()
		if loader == nil {
			return domain.Grammar{}, fmt.Errorf("%w: %s (no library configured)", domain.ErrGrammarNotFound, req.Name)
		}
		return loader.GetGrammar(ctx, req.Name)
	default:
		doc, err := dto.Decode(req.Grammar)
		if err != nil {
			return domain.Grammar{}, err
		}
		if req.Label != "" {
			doc.Name = req.Label
		}
		return doc.ToGrammar()
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Debug(op+" rejected", "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: domain.ErrorKind(err)})
}

// StatusFor maps generation errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedParameter),
		errors.Is(err, domain.ErrUnbalancedBranch),
		errors.Is(err, domain.ErrInvalidGrammar):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownRecipe),
		errors.Is(err, domain.ErrGrammarNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
