// Package mcp exposes the generator as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/dto"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/recipes"
	"github.com/aretw0/arbor/pkg/scene"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ExpandResponse is the structured result of the expand tool.
type ExpandResponse struct {
	Grammar  string `json:"grammar" jsonschema_description:"Name of the expanded grammar"`
	Expanded string `json:"expanded" jsonschema_description:"The rewritten symbol string"`
	Length   int    `json:"length" jsonschema_description:"Length of the expanded string"`
}

// GenerateResponse is the structured result of the generate tool.
type GenerateResponse struct {
	Grammar  string            `json:"grammar" jsonschema_description:"Label of the generated nodes"`
	Segments int               `json:"segments" jsonschema_description:"Number of segments drawn"`
	Cached   bool              `json:"cached" jsonschema_description:"Whether the expansion came from the cache"`
	Stats    scene.Stats       `json:"stats" jsonschema_description:"Node tree statistics"`
	Mermaid  string            `json:"mermaid,omitempty" jsonschema_description:"Mermaid diagram of the node tree (format=mermaid)"`
	Scene    *scene.ExportNode `json:"scene,omitempty" jsonschema_description:"Full node tree with segments (format=json)"`
}

// Engine defines the interface required by the MCP server to interact with arbor.
type Engine interface {
	ports.Generator
	Loader() ports.GrammarLoader
}

// Server wraps the Generator and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func grammarArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("recipe", mcp.Description("Name of a built-in recipe (see list_recipes)")),
		mcp.WithString("name", mcp.Description("Name of a grammar in the configured library")),
		mcp.WithString("grammar", mcp.Description("Grammar document as a JSON object: axiom, iterations, angle, width, rules, commands, data")),
		mcp.WithString("label", mcp.Description("Prefix for generated node names (optional)")),
	}
}

func (s *Server) registerTools() {
	// TOOL: list_recipes
	s.mcpServer.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List the built-in L-System recipes."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(recipeList())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: expand
	expandOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Run only the rewriting phase and return the expanded symbol string. Provide exactly one of recipe, name or grammar."),
		mcp.WithOutputSchema[ExpandResponse](),
	}, grammarArgs()...)
	s.mcpServer.AddTool(mcp.NewTool("expand", expandOpts...), mcp.NewStructuredToolHandler(s.handleExpand))

	// TOOL: generate
	generateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Expand a grammar and build its branching geometry. Provide exactly one of recipe, name or grammar."),
		mcp.WithString("format", mcp.Description("Extra output: 'mermaid' for a diagram, 'json' for the full node tree (optional)")),
		mcp.WithOutputSchema[GenerateResponse](),
	}, grammarArgs()...)
	s.mcpServer.AddTool(mcp.NewTool("generate", generateOpts...), mcp.NewStructuredToolHandler(s.handleGenerate))
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	g, err := s.resolve(ctx, args)
	if err != nil {
		return ExpandResponse{}, err
	}
	expanded, err := s.engine.Expand(ctx, g)
	if err != nil {
		s.logger.Debug("MCP expand failed", "err", err)
		return ExpandResponse{}, fmt.Errorf("expand failed: %w", err)
	}
	return ExpandResponse{Grammar: g.Name, Expanded: expanded, Length: len(expanded)}, nil
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	format, _ := args["format"].(string)
	if format != "" && format != "json" && format != "mermaid" {
		return GenerateResponse{}, fmt.Errorf("unsupported format %q", format)
	}

	g, err := s.resolve(ctx, args)
	if err != nil {
		return GenerateResponse{}, err
	}
	res, err := s.engine.Generate(ctx, g)
	if err != nil {
		s.logger.Debug("MCP generate failed", "err", err)
		return GenerateResponse{}, fmt.Errorf("generate failed: %w", err)
	}

	resp := GenerateResponse{
		Grammar:  res.Grammar,
		Segments: res.Segments,
		Cached:   res.Cached,
		Stats:    scene.Collect(res.Root),
	}
	switch format {
	case "mermaid":
		resp.Mermaid = graph.GenerateMermaid(res.Root, nil)
	case "json":
		tree := scene.Export(res.Root)
		resp.Scene = &tree
	}
	return resp, nil
}

func (s *Server) resolve(ctx context.Context, args map[string]interface{}) (domain.Grammar, error) {
	recipe, _ := args["recipe"].(string)
	name, _ := args["name"].(string)
	raw, _ := args["grammar"].(string)
	label, _ := args["label"].(string)

	set := 0
	for _, v := range []string{recipe, name, raw} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return domain.Grammar{}, errors.New("exactly one of recipe, name or grammar is required")
	}

	switch {
	case recipe != "":
		return recipes.Lookup(recipe, label)
	case name != "":
		loader := s.engine.Loader()
		if loader == nil {
			return domain.Grammar{}, fmt.Errorf("%w: %s (no library configured)", domain.ErrGrammarNotFound, name)
		}
		g, err := loader.GetGrammar(ctx, name)
		if err == nil && label != "" {
			g.Name = label
		}
		return g, err
	default:
		var doc map[string]any
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return domain.Grammar{}, fmt.Errorf("%w: grammar is not a JSON object: %w", domain.ErrInvalidGrammar, err)
		}
		gd, err := dto.Decode(doc)
		if err != nil {
			return domain.Grammar{}, err
		}
		if label != "" {
			gd.Name = label
		}
		return gd.ToGrammar()
	}
}

// RecipeInfo describes one built-in recipe.
type RecipeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func recipeList() []RecipeInfo {
	names := recipes.Names()
	out := make([]RecipeInfo, 0, len(names))
	for _, name := range names {
		out = append(out, RecipeInfo{Name: name, Description: recipes.Catalog[name].Description})
	}
	return out
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://recipes
	s.mcpServer.AddResource(mcp.NewResource("arbor://recipes", "Built-in Recipes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(recipeList())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://recipes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: arbor://grammars
	s.mcpServer.AddResource(mcp.NewResource("arbor://grammars", "Grammar Library",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names := []string{}
		if loader := s.engine.Loader(); loader != nil {
			var err error
			if names, err = loader.ListGrammars(ctx); err != nil {
				return nil, fmt.Errorf("failed to list grammars: %w", err)
			}
		}
		jsonBytes, _ := json.Marshal(names)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://grammars",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
