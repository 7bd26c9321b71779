// Package tests provides reusable contract suites for port implementations.
package tests

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunExpansionCacheContract verifies that an ExpansionCache implementation
// adheres to the interface contract.
func RunExpansionCacheContract(t *testing.T, cache ports.ExpansionCache) {
	t.Helper()
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405.000000000")

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, "F[+F]F"))

		got, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "F[+F]F", got)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, "FF"))
		got, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "FF", got)
	})

	t.Run("Get Missing", func(t *testing.T) {
		got, ok, err := cache.Get(ctx, "missing-"+key)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("Empty Expansion", func(t *testing.T) {
		empty := key + "-empty"
		require.NoError(t, cache.Put(ctx, empty, ""))
		_, ok, err := cache.Get(ctx, empty)
		require.NoError(t, err)
		assert.True(t, ok, "an empty expansion is still a hit")
		require.NoError(t, cache.Delete(ctx, empty))
	})

	t.Run("List", func(t *testing.T) {
		k1, k2 := key+"-1", key+"-2"
		require.NoError(t, cache.Put(ctx, k1, "A"))
		require.NoError(t, cache.Put(ctx, k2, "B"))
		defer func() {
			_ = cache.Delete(ctx, k1)
			_ = cache.Delete(ctx, k2)
		}()

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key))
		_, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, cache.Delete(ctx, key), "deleting twice is not an error")

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, keys, key)
	})
}

// RunGrammarLoaderContract verifies that a GrammarLoader serves exactly the
// expected grammars. Grammars are compared on their expansion inputs and
// turtle configuration.
func RunGrammarLoaderContract(t *testing.T, loader ports.GrammarLoader, expected map[string]domain.Grammar) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetGrammar", func(t *testing.T) {
		for name, want := range expected {
			got, err := loader.GetGrammar(ctx, name)
			require.NoError(t, err, name)
			assert.Equal(t, want.Axiom, got.Axiom, name)
			assert.Equal(t, want.Iterations, got.Iterations, name)
			assert.Equal(t, want.Angle, got.Angle, name)
			assert.Equal(t, want.Width, got.Width, name)
			assert.Equal(t, len(want.Rules), len(got.Rules), name)
			for sym, rule := range want.Rules {
				assert.Equal(t, rule.Replacement, got.Rules[sym].Replacement, "%s rule %q", name, rune(sym))
			}
		}
	})

	t.Run("GetGrammar NotFound", func(t *testing.T) {
		_, err := loader.GetGrammar(ctx, "non-existent-grammar")
		assert.ErrorIs(t, err, domain.ErrGrammarNotFound)
	})

	t.Run("ListGrammars", func(t *testing.T) {
		names, err := loader.ListGrammars(ctx)
		require.NoError(t, err)

		want := make([]string, 0, len(expected))
		for name := range expected {
			want = append(want, name)
		}
		sort.Strings(want)
		sort.Strings(names)
		assert.Equal(t, want, names)
	})
}
