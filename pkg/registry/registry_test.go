package registry

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/geom"
	"github.com/aretw0/arbor/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	var calls []string
	r.Register('A', domain.CommandFunc(func(*domain.TurtleState, float64) error { calls = append(calls, "first"); return nil }))
	r.Register('A', domain.CommandFunc(func(*domain.TurtleState, float64) error { calls = append(calls, "second"); return nil }))

	require.NoError(t, r.Execute(&domain.TurtleState{}, 'A', 0))
	assert.Equal(t, []string{"second"}, calls)

	err := r.Execute(&domain.TurtleState{}, 'B', 0)
	assert.Error(t, err)
}

func TestCommon(t *testing.T) {
	syms := Common().Symbols()
	assert.Equal(t, []domain.Symbol{'!', '&', '+', '-', '<', '>', '[', ']', '^'}, syms)
}

func TestEffective(t *testing.T) {
	table := Effective(Common(), nil)
	assert.Contains(t, table, domain.SymbolForward)
	assert.Len(t, table, 10)

	override := domain.Bindings{'F': Noop, '+': Noop, 'f': Noop}
	table = Effective(Common(), override)
	assert.Len(t, table, 11)

	s := domain.NewState(domain.Grammar{Axiom: "F", Angle: 30})
	require.NoError(t, table['+'].Execute(s, 0))
	assert.Equal(t, geom.Identity(), s.Orientation)

	assert.Len(t, Effective(nil, nil), 1)
}

func TestEffectiveDoesNotMutateCommon(t *testing.T) {
	common := Common()
	_ = Effective(common, domain.Bindings{'X': Noop})
	_, ok := common.Lookup('X')
	assert.False(t, ok)
}

func TestRotationsInvert(t *testing.T) {
	s := domain.NewState(domain.Grammar{Axiom: "F", Angle: 40})
	pairs := [][2]domain.Command{{YawLeft, YawRight}, {PitchDown, PitchUp}, {RollLeft, RollRight}}
	for _, p := range pairs {
		require.NoError(t, p[0].Execute(s, 0))
		require.NoError(t, p[1].Execute(s, 0))
		assert.True(t, s.Orientation.ApproxEqual(geom.Identity(), 1e-12))
	}
}

func TestPushRequiresNodes(t *testing.T) {
	s := domain.NewState(domain.Grammar{Name: "x", Axiom: "F"})
	assert.Error(t, Push.Execute(s, 0))

	s.Current = scene.NewGeometry("x-root")
	assert.Error(t, Push.Execute(s, 0))

	s.Nodes = scene.Factory{}
	require.NoError(t, Push.Execute(s, 0))
	assert.Equal(t, "x-0", s.Current.Name())
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, 1, s.NodeCount)

	require.NoError(t, Push.Execute(s, 0))
	assert.Equal(t, "x-1", s.Current.Name())
	assert.Equal(t, 2, s.NodeCount)
}

func TestByName(t *testing.T) {
	cmd, ok := ByName("noop")
	require.True(t, ok)
	assert.NotNil(t, cmd)

	_, ok = ByName("teleport")
	assert.False(t, ok)
	assert.Contains(t, Names(), "forward")
}

func TestNameOf(t *testing.T) {
	name, ok := NameOf(Taper)
	require.True(t, ok)
	assert.Equal(t, "taper", name)

	_, ok = NameOf(domain.CommandFunc(func(*domain.TurtleState, float64) error { return nil }))
	assert.False(t, ok)

	for _, n := range Names() {
		b, ok := ByName(n)
		require.True(t, ok, n)
		assert.Equal(t, n, b.Name())
	}
}
