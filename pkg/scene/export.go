package scene

import (
	"encoding/json"
	"io"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/geom"
)

// Node kinds used in exports.
const (
	KindGroup    = "group"
	KindGeometry = "geometry"
)

// ExportNode is the serializable form of a node tree.
type ExportNode struct {
	Name        string        `json:"name"`
	Kind        string        `json:"kind"`
	Translation *geom.Vector3 `json:"translation,omitempty"`
	Segments    []Segment     `json:"segments,omitempty"`
	Children    []ExportNode  `json:"children,omitempty"`
}

// Export converts the tree under n.
func Export(n domain.Node) ExportNode {
	out := ExportNode{Name: n.Name(), Kind: KindGroup}
	switch g := n.(type) {
	case *Geometry:
		out.Kind = KindGeometry
		t := g.Translation
		out.Translation = &t
		out.Segments = g.Mesh.Segments
	case domain.GeometryNode:
		out.Kind = KindGeometry
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, Export(c))
	}
	return out
}

// WriteJSON writes the export of n to w.
func WriteJSON(w io.Writer, n domain.Node, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(Export(n))
}
