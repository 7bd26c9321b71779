package domain

import "time"

// Result is the outcome of one generation.
type Result struct {
	// Grammar is the name the nodes were labelled with.
	Grammar string

	// Root is the wrapper group. It has no parent.
	Root Node

	// Expanded is the string that was interpreted.
	Expanded string

	// Segments is the number of forward draws.
	Segments int

	// Cached reports whether the expansion came from a cache.
	Cached bool

	Duration time.Duration
}
