package scene

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/geom"
)

// Group is a node without geometry.
type Group struct {
	name     string
	children []domain.Node
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

func (g *Group) Name() string { return g.name }

func (g *Group) AddChild(child domain.Node) {
	g.children = append(g.children, child)
}

func (g *Group) Children() []domain.Node { return g.children }

// Geometry is a node carrying a segment chain.
type Geometry struct {
	Group
	Translation geom.Vector3
	Mesh        Mesh
}

// NewGeometry creates a geometry node at its parent's origin.
func NewGeometry(name string) *Geometry {
	return &Geometry{Group: Group{name: name}}
}

func (g *Geometry) Translate(v geom.Vector3) {
	g.Translation = g.Translation.Add(v)
}

func (g *Geometry) Extend(length float64, orientation geom.Matrix4, widthStart, widthEnd float64) {
	g.Mesh.Extend(length, orientation, widthStart, widthEnd)
}

func (g *Geometry) EndPoint() geom.Point3 {
	return g.Mesh.EndPoint()
}

// Factory creates Group and Geometry nodes.
type Factory struct{}

func (Factory) NewGroup(name string) domain.Node {
	return NewGroup(name)
}

func (Factory) NewGeometry(name string) domain.GeometryNode {
	return NewGeometry(name)
}

var (
	_ domain.Node         = (*Group)(nil)
	_ domain.GeometryNode = (*Geometry)(nil)
	_ domain.NodeFactory  = Factory{}
)
