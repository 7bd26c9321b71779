package domain

import "github.com/aretw0/arbor/pkg/geom"

// Node is an element of the host scene graph. A parent exclusively owns its
// children; AddChild transfers ownership.
type Node interface {
	Name() string
	AddChild(child Node)
	Children() []Node
}

// GeometryNode is a scene node carrying an extrudable segment chain.
type GeometryNode interface {
	Node

	// Translate moves the node relative to its parent.
	Translate(v geom.Vector3)

	// Extend appends a segment of the given length starting at the current
	// end point, heading along orientation, tapering from widthStart to widthEnd.
	Extend(length float64, orientation geom.Matrix4, widthStart, widthEnd float64)

	// EndPoint is the free end of the chain in node-local coordinates.
	EndPoint() geom.Point3
}

// NodeFactory creates the nodes the interpreter attaches geometry to.
type NodeFactory interface {
	NewGroup(name string) Node
	NewGeometry(name string) GeometryNode
}
