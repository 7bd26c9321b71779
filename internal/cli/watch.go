package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// RunWatch regenerates the selected library grammar whenever its document
// changes, until ctx is done. Failures are reported and the loop keeps
// waiting for a fix.
func RunWatch(ctx context.Context, gen *Generator, sel Selection, w io.Writer, format string, render func(string) (string, error), logger *slog.Logger) error {
	events, err := gen.Watch(ctx)
	if err != nil {
		return err
	}

	runOnce := func() {
		g, err := ResolveGrammar(ctx, gen, sel)
		if err != nil {
			logger.Error("Grammar load failed", "name", sel.Name, "err", err)
			PrintSystemMessage("Error: %v", err)
			return
		}
		res, err := gen.Generate(ctx, g)
		if err != nil {
			logger.Error("Generation failed", "name", sel.Name, "err", err)
			PrintSystemMessage("Error: %v", err)
			return
		}
		if err := WriteResult(w, g, res, format, render); err != nil {
			logger.Error("Output failed", "err", err)
		}
	}

	PrintSystemMessage("Watching '%s' for changes.", sel.Name)
	runOnce()
	for {
		select {
		case <-ctx.Done():
			PrintSystemMessage("%s", stopReason(ctx))
			return nil
		case name, ok := <-events:
			if !ok {
				return nil
			}
			if name != sel.Name {
				logger.Debug("Ignoring change", "name", name)
				continue
			}
			PrintSystemMessage("'%s' changed, regenerating.", name)
			runOnce()
		}
	}
}

// stopReason names the signal that ended a watch started under a
// SignalContext.
func stopReason(ctx context.Context) string {
	if sc, ok := ctx.(*SignalContext); ok {
		if sig := sc.Signal(); sig != nil {
			return fmt.Sprintf("Stopped watching (%v).", sig)
		}
	}
	return "Stopped watching."
}
