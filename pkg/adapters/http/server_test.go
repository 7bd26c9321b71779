package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	loader, err := memory.NewFromRecipes("grass", "algae")
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	gen := arbor.New(arbor.WithLoader(loader), arbor.WithHooks(metrics.Hooks()))
	return NewHandler(gen,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(metrics.Handler()),
	)
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "arbor-http", info["app"])
	assert.Equal(t, APIVersion, info["api_version"])
}

func TestGetSchema(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/schema", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	assert.Equal(t, "string", fields["axiom"])
	assert.Equal(t, "int?", fields["iterations"])
	assert.Equal(t, "{symbol:string}?", fields["commands"])
}

func TestListRecipes(t *testing.T) {
	w := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(w, httptest.NewRequest("GET", "/recipes", nil))

	var list []RecipeInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 4)
	assert.Equal(t, "algae", list[0].Name)
	assert.NotEmpty(t, list[0].Description)
}

func TestListGrammars(t *testing.T) {
	w := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(w, httptest.NewRequest("GET", "/grammars", nil))
	assert.JSONEq(t, `["algae","grass"]`, w.Body.String())
}

func TestExpand(t *testing.T) {
	h := newTestHandler(t)

	w := post(t, h, "/expand", `{"recipe":"algae"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp ExpandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ABAABABAABAAB", resp.Expanded)
	assert.Equal(t, 13, resp.Length)

	w = post(t, h, "/expand", `{"grammar":{"axiom":"F","iterations":2,"rules":{"F":"F+F"}}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "F+F+F+F", resp.Expanded)

	w = post(t, h, "/expand", `{"name":"grass"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 25159, resp.Length)
}

func TestGenerate(t *testing.T) {
	h := newTestHandler(t)

	w := post(t, h, "/generate", `{"recipe":"grass","label":"tuft"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tuft", resp.Grammar)
	assert.Equal(t, "tuft-wrapper", resp.Scene.Name)
	assert.Positive(t, resp.Segments)
	assert.Equal(t, resp.Segments, resp.Stats.Segments)

	w = post(t, h, "/generate", `{"name":"grass","format":"mermaid"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))

	m := httptest.NewRecorder()
	h.ServeHTTP(m, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, m.Body.String(), `arbor_generations_total{grammar="grass"} 1`)
	assert.Contains(t, m.Body.String(), `arbor_generations_total{grammar="tuft"} 1`)
}

func TestErrorStatus(t *testing.T) {
	h := newTestHandler(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		kind   string
	}{
		{"bad json", "/generate", `{`, http.StatusBadRequest, ""},
		{"no selector", "/generate", `{}`, http.StatusBadRequest, ""},
		{"two selectors", "/expand", `{"recipe":"grass","name":"grass"}`, http.StatusBadRequest, ""},
		{"bad format", "/generate", `{"recipe":"grass","format":"svg"}`, http.StatusBadRequest, ""},
		{"unknown recipe", "/generate", `{"recipe":"flower"}`, http.StatusNotFound, "unknown_recipe"},
		{"unknown grammar", "/generate", `{"name":"fern"}`, http.StatusNotFound, "grammar_not_found"},
		{"malformed", "/generate", `{"grammar":{"axiom":"F(50"}}`, http.StatusUnprocessableEntity, "malformed_parameter"},
		{"unbalanced", "/generate", `{"grammar":{"axiom":"F]"}}`, http.StatusUnprocessableEntity, "unbalanced_branch"},
		{"too many iterations", "/generate", `{"grammar":{"axiom":"F","rules":{"F":"FF"},"iterations":64}}`, http.StatusUnprocessableEntity, "invalid_grammar"},
		{"schema", "/expand", `{"grammar":{"axiom":"F","iterations":"many"}}`, http.StatusUnprocessableEntity, "invalid_grammar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.kind, resp.Kind)
		})
	}
}

type watchEngine struct {
	*arbor.Generator
	events chan string
}

func (e *watchEngine) Watch(context.Context) (<-chan string, error) {
	return e.events, nil
}

var _ Engine = (*watchEngine)(nil)

func TestSubscribeEvents(t *testing.T) {
	eng := &watchEngine{Generator: arbor.New(), events: make(chan string, 1)}
	eng.events <- "grass"
	close(eng.events)

	w := httptest.NewRecorder()
	NewHandler(eng).ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "data: grass")
}

func TestSubscribeEvents_NotSupported(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(arbor.New()).ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(&domain.BranchError{Pos: -1, Depth: 1}))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(context.Canceled))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(bytes.ErrTooLarge))
}

var _ ports.Generator = (*arbor.Generator)(nil)
