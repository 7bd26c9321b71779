package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/scene"
)

// GraphOverlay contains display options layered over the node tree.
type GraphOverlay struct {
	// MaxDepth stops the walk below this depth; zero means unlimited.
	// Each cut subtree is drawn as a single summary node.
	MaxDepth int

	// Highlight lists node names to emphasize.
	Highlight []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a node tree.
// It applies semantic styling:
// - Group: ((Circle))
// - Geometry: [Rectangle], annotated with its segment count
// - Truncated subtree: [/Parallelogram/]
// It also applies overlay styles (Highlight) if provided.
func GenerateMermaid(root domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	maxDepth := 0
	if overlay != nil {
		maxDepth = overlay.MaxDepth
	}

	scene.Walk(root, func(n domain.Node, depth int) bool {
		safeID := sanitizeMermaidID(n.Name())
		sb.WriteString("    " + safeID + label(n) + "\n")

		children := n.Children()
		if maxDepth > 0 && depth >= maxDepth && len(children) > 0 {
			hidden := 0
			for _, c := range children {
				scene.Walk(c, func(domain.Node, int) bool {
					hidden++
					return true
				})
			}
			moreID := safeID + "_more"
			sb.WriteString(fmt.Sprintf("    %s[/\"+%d nodes\"/]\n", moreID, hidden))
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", safeID, moreID))
			return false
		}

		for _, c := range children {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(c.Name())))
		}
		return true
	})

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Highlight {
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s highlight;\n", safeID))
			}
		}
	}

	return sb.String()
}

func label(n domain.Node) string {
	switch g := n.(type) {
	case *scene.Geometry:
		if len(g.Mesh.Segments) == 0 {
			return fmt.Sprintf("[\"%s\"]", n.Name())
		}
		return fmt.Sprintf("[\"%s <br/> %d seg\"]", n.Name(), len(g.Mesh.Segments))
	case domain.GeometryNode:
		return fmt.Sprintf("[\"%s\"]", n.Name())
	default:
		return fmt.Sprintf("((\"%s\"))", n.Name())
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
