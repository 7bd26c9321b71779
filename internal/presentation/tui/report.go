package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/scene"
)

// previewLength bounds the expanded-string excerpt in reports.
const previewLength = 120

// Report renders a generation summary as Markdown.
func Report(g domain.Grammar, res *domain.Result) string {
	st := scene.Collect(res.Root)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", res.Grammar)
	if g.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", g.Description)
	}

	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Axiom | `%s` |\n", g.Axiom)
	fmt.Fprintf(&sb, "| Iterations | %d |\n", g.Iterations)
	fmt.Fprintf(&sb, "| Angle | %g° |\n", g.Angle)
	fmt.Fprintf(&sb, "| Rules | %d |\n", len(g.Rules))
	fmt.Fprintf(&sb, "| Expanded length | %d |\n", len(res.Expanded))
	fmt.Fprintf(&sb, "| Cached | %t |\n", res.Cached)
	fmt.Fprintf(&sb, "| Nodes | %d (%d geometry) |\n", st.Nodes, st.Geometries)
	fmt.Fprintf(&sb, "| Segments | %d |\n", res.Segments)
	fmt.Fprintf(&sb, "| Max depth | %d |\n", st.MaxDepth)
	fmt.Fprintf(&sb, "| Total length | %.2f |\n", st.TotalLength)
	fmt.Fprintf(&sb, "| Duration | %s |\n", res.Duration)

	preview := res.Expanded
	if len(preview) > previewLength {
		preview = preview[:previewLength] + "…"
	}
	fmt.Fprintf(&sb, "\n## Expansion\n\n```\n%s\n```\n", preview)
	return sb.String()
}
