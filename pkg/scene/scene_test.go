package scene

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesh_ExtendChainsSegments(t *testing.T) {
	var m Mesh
	assert.Equal(t, geom.Origin, m.EndPoint())

	m.Extend(10, geom.Identity(), 5, 4)
	m.Extend(5, geom.Yaw(math.Pi/2), 4, 3)

	require.Len(t, m.Segments, 2)
	assert.Equal(t, geom.Point3{Y: 10}, m.Segments[0].End)
	assert.Equal(t, m.Segments[0].End, m.Segments[1].Start)
	assert.InDelta(t, 5, m.Segments[1].End.X, 1e-9)
	assert.InDelta(t, 10, m.Segments[1].End.Y, 1e-9)
	assert.InDelta(t, 15, m.Length(), 1e-12)
	assert.Equal(t, 4.0, m.Segments[1].WidthStart)
}

func TestMesh_NegativeLengthStillAdvances(t *testing.T) {
	var m Mesh
	m.Extend(-10, geom.Identity(), 1, 1)
	m.Extend(-4, geom.Pitch(math.Pi/2), 1, 1)

	require.Len(t, m.Segments, 2)
	assert.Equal(t, geom.Point3{Y: 10}, m.Segments[0].End)
	assert.Equal(t, -10.0, m.Segments[0].Length)
	assert.InDelta(t, 10, m.Segments[1].End.Y, 1e-9)
	assert.InDelta(t, 4, m.Segments[1].End.Z, 1e-9)
}

func buildTree() *Group {
	f := Factory{}
	wrapper := f.NewGroup("t-wrapper")
	root := f.NewGeometry("t-root")
	root.Extend(10, geom.Identity(), 1, 1)
	wrapper.AddChild(root)

	child := f.NewGeometry("t-1")
	child.Translate(geom.Vector3{Y: 10})
	child.Extend(3, geom.Identity(), 1, 1)
	child.Extend(3, geom.Identity(), 1, 1)
	root.AddChild(child)
	return wrapper.(*Group)
}

func TestCollect(t *testing.T) {
	st := Collect(buildTree())
	assert.Equal(t, Stats{Nodes: 3, Groups: 1, Geometries: 2, Segments: 3, MaxDepth: 2, TotalLength: 16}, st)
}

func TestWalk_SkipChildren(t *testing.T) {
	var names []string
	Walk(buildTree(), func(n domain.Node, depth int) bool {
		names = append(names, n.Name())
		return depth < 1
	})
	assert.Equal(t, []string{"t-wrapper", "t-root"}, names)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, buildTree(), false))

	var out ExportNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, KindGroup, out.Kind)
	require.Len(t, out.Children, 1)
	root := out.Children[0]
	assert.Equal(t, KindGeometry, root.Kind)
	require.Len(t, root.Children, 1)
	assert.Equal(t, geom.Vector3{Y: 10}, *root.Children[0].Translation)
	assert.Len(t, root.Children[0].Segments, 2)
}
