package scene

import "github.com/aretw0/arbor/pkg/domain"

// Stats summarizes a node tree.
type Stats struct {
	Nodes       int     `json:"nodes"`
	Groups      int     `json:"groups"`
	Geometries  int     `json:"geometries"`
	Segments    int     `json:"segments"`
	MaxDepth    int     `json:"max_depth"`
	TotalLength float64 `json:"total_length"`
}

// Walk visits root and its descendants depth-first, parents before
// children. depth is zero for root. Returning false skips the children.
func Walk(root domain.Node, visit func(n domain.Node, depth int) bool) {
	walk(root, 0, visit)
}

func walk(n domain.Node, depth int, visit func(domain.Node, int) bool) {
	if n == nil || !visit(n, depth) {
		return
	}
	for _, c := range n.Children() {
		walk(c, depth+1, visit)
	}
}

// Collect computes Stats for the tree under root. Segment figures are only
// available for *Geometry nodes.
func Collect(root domain.Node) Stats {
	var st Stats
	Walk(root, func(n domain.Node, depth int) bool {
		st.Nodes++
		if depth > st.MaxDepth {
			st.MaxDepth = depth
		}
		switch g := n.(type) {
		case *Geometry:
			st.Geometries++
			st.Segments += len(g.Mesh.Segments)
			st.TotalLength += g.Mesh.Length()
		case domain.GeometryNode:
			st.Geometries++
		default:
			st.Groups++
		}
		return true
	})
	return st
}
