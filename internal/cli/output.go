package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/scene"
)

// Output formats accepted by --format.
const (
	FormatSummary  = "summary"
	FormatJSON     = "json"
	FormatMermaid  = "mermaid"
	FormatExpanded = "expanded"
	FormatStats    = "stats"
)

// Formats lists the output formats in help order.
var Formats = []string{FormatSummary, FormatJSON, FormatMermaid, FormatExpanded, FormatStats}

// WriteResult writes res to w in the given format. render converts the
// Markdown summary for display.
func WriteResult(w io.Writer, g domain.Grammar, res *domain.Result, format string, render func(string) (string, error)) error {
	switch format {
	case FormatSummary, "":
		if render == nil {
			render = tui.Plain
		}
		out, err := render(tui.Report(g, res))
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatJSON:
		return scene.WriteJSON(w, res.Root, true)
	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(res.Root, nil))
		return err
	case FormatExpanded:
		_, err := fmt.Fprintln(w, res.Expanded)
		return err
	case FormatStats:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(scene.Collect(res.Root))
	default:
		return fmt.Errorf("unknown format %q (supported: %v)", format, Formats)
	}
}
