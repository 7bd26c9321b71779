package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for arbor.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Greens from sap to bark.
	lines := []struct{ text, color string }{
		{"                  _                ", "#bef264"},
		{"   __ _ _ __ ___ | |__   ___  _ __ ", "#a3e635"},
		{"  / _` | '__/ _ \\| '_ \\ / _ \\| '__|", "#84cc16"},
		{" | (_| | | | (_) | |_) | (_) | |   ", "#65a30d"},
		{"  \\__,_|_|  \\___/|_.__/ \\___/|_|   ", "#a16207"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
