package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	contract "github.com/aretw0/arbor/pkg/ports/tests"
	"github.com/aretw0/arbor/pkg/recipes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grassYAML = `
name: grass
axiom: X
iterations: 6
angle: 25
width: 5
rules:
  F: FF
  X: "F-[[X]+X]+F[+FX]-X"
`

const treeJSON = `{
  "axiom": "!(1)F(200)<(45)A",
  "iterations": 6,
  "angle": 30,
  "width": 26.995,
  "rules": {
    "A": "!(1.732)F(50)[&(18.95)F(50)A]<(94.74)[&(18.95)F(50)A]<(132.63)[&(18.95)F(50)A]",
    "F": {"replace": "F", "scale_by": "elongation_rate"},
    "!": {"replace": "!", "scale_by": "width_rate"}
  },
  "data": {"elongation_rate": 1.109, "width_rate": 1.732}
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grass.yaml", grassYAML)
	writeFile(t, dir, "tree.json", treeJSON)
	writeFile(t, dir, "notes.txt", "not a grammar")

	tree := recipes.Tree("tree")
	tree.Width = 26.995
	contract.RunGrammarLoaderContract(t, file.NewLoader(dir), map[string]domain.Grammar{
		"grass": recipes.Grass("grass"),
		"tree":  tree,
	})
}

func TestLoader_TreeDocumentMatchesRecipe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tree.json", treeJSON)

	g, err := file.NewLoader(dir).GetGrammar(context.Background(), "tree")
	require.NoError(t, err)

	want, ok := recipes.Tree("tree").Fingerprint()
	require.True(t, ok)
	got, ok := g.Fingerprint()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLoader_Collision(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grass.yaml", grassYAML)
	writeFile(t, dir, "grass.json", `{"axiom":"X"}`)

	_, err := file.NewLoader(dir).ListGrammars(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoadGrammar_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "axiom: X\nrules:\n  F: 3\n")

	_, err := file.LoadGrammar(filepath.Join(dir, "bad.yaml"))
	assert.ErrorIs(t, err, domain.ErrInvalidGrammar)
}

func TestSaveGrammar_RoundTripsRecipes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range recipes.Names() {
		g, err := recipes.Lookup(name, name)
		require.NoError(t, err)

		ext := ".yaml"
		if name == "tree" {
			ext = ".json"
		}
		path := filepath.Join(dir, name+ext)
		require.NoError(t, file.SaveGrammar(path, g))

		back, err := file.LoadGrammar(path)
		require.NoError(t, err, name)
		want, _ := g.Fingerprint()
		got, _ := back.Fingerprint()
		assert.Equal(t, want, got, name)
		assert.Equal(t, len(g.Commands), len(back.Commands), name)
	}

	names, err := file.NewLoader(dir).ListGrammars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, recipes.Names(), names)
}
