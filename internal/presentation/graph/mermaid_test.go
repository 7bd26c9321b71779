package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/turtle"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/scene"
)

func build(t *testing.T, expanded string) domain.Node {
	t.Helper()
	state := domain.NewState(domain.Grammar{Name: "p", Axiom: expanded, Angle: 30, Width: 2})
	root, err := turtle.Interpret(expanded, nil, state, scene.Factory{})
	if err != nil {
		t.Fatalf("Interpret() failed: %v", err)
	}
	return root
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		expanded string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name:     "Wrapper And Root Shapes",
			expanded: "FF",
			contains: []string{
				"graph TD",
				"p_wrapper((\"p-wrapper\"))",
				"p_root[\"p-root <br/> 2 seg\"]",
				"p_wrapper --> p_root",
			},
		},
		{
			name:     "Branches",
			expanded: "F[+F][-F]",
			contains: []string{
				"p_root --> p_0",
				"p_root --> p_1",
				"p_0[\"p-0 <br/> 1 seg\"]",
			},
		},
		{
			name:     "Empty Geometry",
			expanded: "[+]",
			contains: []string{"p_0[\"p-0\"]"},
		},
		{
			name:     "Depth Truncation",
			expanded: "F[F[F[F]]]",
			overlay:  &graph.GraphOverlay{MaxDepth: 2},
			contains: []string{
				"p_0[/\"+2 nodes\"/]",
				"p_0 -.-> p_0_more",
			},
			excludes: []string{"p_1[\""},
		},
		{
			name:     "Highlight",
			expanded: "F[F]",
			overlay:  &graph.GraphOverlay{Highlight: []string{"p-0", "p-0"}},
			contains: []string{
				"classDef highlight",
				"class p_0 highlight;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(build(t, tt.expanded), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\ngot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q\ngot:\n%s", unwanted, got)
				}
			}
			if strings.Count(got, "class p_1 highlight;") > 1 {
				t.Error("highlight must be deduplicated")
			}
		})
	}
}
