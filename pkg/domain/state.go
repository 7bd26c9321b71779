package domain

import "github.com/aretw0/arbor/pkg/geom"

// Frame is the turtle context saved by a push and restored by the matching pop.
type Frame struct {
	Orientation geom.Matrix4
	Node        GeometryNode
	Width       float64
	WidthEnd    float64
}

// TurtleState is the mutable interpreter context for one generation request.
// It is threaded through expansion (parameter transforms may read Data) and
// interpretation, then discarded.
type TurtleState struct {
	// Name is the prefix for every node created during interpretation.
	Name string

	// NodeCount numbers child nodes created by pushes.
	NodeCount int

	// Segments counts forward draws.
	Segments int

	// Orientation is the composed turtle rotation. It only ever changes by
	// right-multiplying an elementary rotation, so it stays orthonormal.
	Orientation geom.Matrix4

	Angle    float64 // default angle in degrees
	Width    float64 // start width of the next segment
	WidthEnd float64 // end width of the next segment
	Length   float64 // default step length

	// Current is the geometry node being extended.
	Current GeometryNode

	// Nodes creates the child nodes opened by pushes.
	Nodes NodeFactory

	// Data is an opaque, caller-owned side channel for parameter transforms.
	Data any

	frames []Frame
}

// NewState creates the initial turtle state for g.
func NewState(g Grammar) *TurtleState {
	length := g.Length
	if length == 0 {
		length = DefaultLength
	}
	return &TurtleState{
		Name:        g.Name,
		Orientation: geom.Identity(),
		Angle:       g.Angle,
		Width:       g.Width,
		WidthEnd:    g.Width,
		Length:      length,
		Data:        g.Data,
	}
}

// Push saves the current orientation, node and widths as one frame.
func (s *TurtleState) Push() {
	s.frames = append(s.frames, Frame{
		Orientation: s.Orientation,
		Node:        s.Current,
		Width:       s.Width,
		WidthEnd:    s.WidthEnd,
	})
}

// Pop restores the most recently pushed frame.
func (s *TurtleState) Pop() error {
	if len(s.frames) == 0 {
		return ErrUnbalancedBranch
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	s.Orientation = f.Orientation
	s.Current = f.Node
	s.Width = f.Width
	s.WidthEnd = f.WidthEnd
	return nil
}

// Depth returns the number of open frames.
func (s *TurtleState) Depth() int {
	return len(s.frames)
}
