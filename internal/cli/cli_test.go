package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/recipes"
	"github.com/aretw0/arbor/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGenerator_Caches(t *testing.T) {
	logger := CreateLogger(false)

	t.Run("memory", func(t *testing.T) {
		gen, err := CreateGenerator(Options{Cache: CacheMemory}, logger)
		require.NoError(t, err)
		defer gen.Close()

		ctx := context.Background()
		_, err = gen.Recipe(ctx, "algae", "")
		require.NoError(t, err)
		res, err := gen.Recipe(ctx, "algae", "")
		require.NoError(t, err)
		assert.True(t, res.Cached)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.db")
		gen, err := CreateGenerator(Options{Cache: CacheSQLite, SQLite: path}, logger)
		require.NoError(t, err)

		_, err = gen.Recipe(context.Background(), "bush", "")
		require.NoError(t, err)
		require.NoError(t, gen.Close())

		gen, err = CreateGenerator(Options{Cache: CacheSQLite, SQLite: path}, logger)
		require.NoError(t, err)
		defer gen.Close()
		res, err := gen.Recipe(context.Background(), "bush", "")
		require.NoError(t, err)
		assert.True(t, res.Cached, "expansion survives reopening the cache")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := CreateGenerator(Options{Cache: "memcached"}, logger)
		assert.Error(t, err)
	})
}

func TestCreateGenerator_Metrics(t *testing.T) {
	gen, err := CreateGenerator(Options{Metrics: true, Debug: true}, CreateLogger(false))
	require.NoError(t, err)
	require.NotNil(t, gen.Metrics)
}

func TestCreateLoader(t *testing.T) {
	t.Run("file library", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, file.SaveGrammar(filepath.Join(dir, "grass.yaml"), recipes.Grass("grass")))

		loader, err := createLoader(dir)
		require.NoError(t, err)
		_, ok := loader.(*file.Loader)
		assert.True(t, ok)
	})

	t.Run("markdown detection", func(t *testing.T) {
		dir := t.TempDir()
		assert.False(t, hasMarkdown(dir))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stick.yaml"), []byte("axiom: F\n"), 0644))
		assert.False(t, hasMarkdown(dir))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Stick.MD"), []byte("---\naxiom: F\n---\n"), 0644))
		assert.True(t, hasMarkdown(dir))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := createLoader(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestResolveGrammar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, file.SaveGrammar(filepath.Join(dir, "bush.yaml"), recipes.Bush("bush")))
	treePath := filepath.Join(dir, "tree.json")
	require.NoError(t, file.SaveGrammar(treePath, recipes.Tree("tree")))

	gen, err := CreateGenerator(Options{Dir: dir}, CreateLogger(false))
	require.NoError(t, err)
	ctx := context.Background()

	g, err := ResolveGrammar(ctx, gen, Selection{Recipe: "grass", Iterations: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Iterations)
	assert.Equal(t, "grass", g.Name)

	g, err = ResolveGrammar(ctx, gen, Selection{Name: "bush", Label: "shrub", Iterations: -1})
	require.NoError(t, err)
	assert.Equal(t, "shrub", g.Name)
	assert.Equal(t, 6, g.Iterations)

	g, err = ResolveGrammar(ctx, gen, Selection{File: treePath, Iterations: -1})
	require.NoError(t, err)
	assert.Equal(t, "tree", g.Name)

	_, err = ResolveGrammar(ctx, gen, Selection{Iterations: -1})
	assert.Error(t, err)
	_, err = ResolveGrammar(ctx, gen, Selection{Recipe: "grass", Name: "bush", Iterations: -1})
	assert.Error(t, err)
	_, err = ResolveGrammar(ctx, gen, Selection{Name: "fern", Iterations: -1})
	assert.ErrorIs(t, err, domain.ErrGrammarNotFound)
}

func TestWriteResult(t *testing.T) {
	gen, err := CreateGenerator(Options{}, CreateLogger(false))
	require.NoError(t, err)
	g := recipes.Grass("g")
	res, err := gen.Generate(context.Background(), g)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, g, res, FormatSummary, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "# g"))

	buf.Reset()
	require.NoError(t, WriteResult(&buf, g, res, FormatJSON, nil))
	var tree scene.ExportNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &tree))
	assert.Equal(t, "g-wrapper", tree.Name)

	buf.Reset()
	require.NoError(t, WriteResult(&buf, g, res, FormatMermaid, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "graph TD"))

	buf.Reset()
	require.NoError(t, WriteResult(&buf, g, res, FormatExpanded, nil))
	assert.Len(t, strings.TrimSpace(buf.String()), 25159)

	buf.Reset()
	require.NoError(t, WriteResult(&buf, g, res, FormatStats, nil))
	var st scene.Stats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &st))
	assert.Equal(t, res.Segments, st.Segments)

	assert.Error(t, WriteResult(&buf, g, res, "obj", nil))
}

func TestRunWatch_Unsupported(t *testing.T) {
	gen, err := CreateGenerator(Options{}, CreateLogger(false))
	require.NoError(t, err)
	err = RunWatch(context.Background(), gen, Selection{Name: "x"}, &bytes.Buffer{}, FormatSummary, nil, CreateLogger(false))
	assert.Error(t, err)
}

func TestSignalContext_RecordsSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	sc.sigCh <- os.Interrupt
	<-sc.Done()
	assert.Equal(t, os.Interrupt, sc.Signal())
	assert.Equal(t, "Stopped watching (interrupt).", stopReason(sc))
}

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sc := NewSignalContext(parent)
	cancel()

	<-sc.Done()
	assert.Nil(t, sc.Signal())
	assert.Equal(t, "Stopped watching.", stopReason(sc))
	assert.Equal(t, "Stopped watching.", stopReason(parent))
}
