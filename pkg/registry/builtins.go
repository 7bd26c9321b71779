package registry

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/geom"
)

// angle resolves a rotation parameter. Zero selects the grammar's default
// angle, so an explicit "(0)" cannot express a zero rotation.
func angle(s *domain.TurtleState, param float64) float64 {
	if param == 0 {
		return geom.Radians(s.Angle)
	}
	return geom.Radians(param)
}

func rotate(m func(float64) geom.Matrix4, sign float64) func(*domain.TurtleState, float64) error {
	return func(s *domain.TurtleState, param float64) error {
		s.Orientation = s.Orientation.Mul(m(sign * angle(s, param)))
		return nil
	}
}

// Builtin is a named command shipped with the interpreter. Grammar documents
// refer to builtins by name.
type Builtin struct {
	name string
	run  func(s *domain.TurtleState, param float64) error
}

// Name returns the document name of b.
func (b *Builtin) Name() string { return b.name }

// Execute implements domain.Command.
func (b *Builtin) Execute(s *domain.TurtleState, param float64) error {
	return b.run(s, param)
}

// Built-in commands.
var (
	YawLeft   = &Builtin{"yaw_left", rotate(geom.Yaw, 1)}
	YawRight  = &Builtin{"yaw_right", rotate(geom.Yaw, -1)}
	PitchDown = &Builtin{"pitch_down", rotate(geom.Pitch, 1)}
	PitchUp   = &Builtin{"pitch_up", rotate(geom.Pitch, -1)}
	RollLeft  = &Builtin{"roll_left", rotate(geom.Roll, 1)}
	RollRight = &Builtin{"roll_right", rotate(geom.Roll, -1)}

	Push    = &Builtin{"push", push}
	Pop     = &Builtin{"pop", pop}
	Taper   = &Builtin{"taper", taper}
	Forward = &Builtin{"forward", forward}

	// Noop consumes a symbol without effect. Recipes bind it to symbols that
	// only carry meaning for a renderer, such as leaves and colour changes.
	Noop = &Builtin{"noop", func(*domain.TurtleState, float64) error { return nil }}
)

var builtins = []*Builtin{YawLeft, YawRight, PitchDown, PitchUp, RollLeft, RollRight, Push, Pop, Taper, Forward, Noop}

// push opens a branch: a child geometry node placed at the current end point
// becomes current, and the previous context is saved.
func push(s *domain.TurtleState, _ float64) error {
	if s.Current == nil {
		return fmt.Errorf("push: no current node")
	}
	if s.Nodes == nil {
		return fmt.Errorf("push: no node factory")
	}

	child := s.Nodes.NewGeometry(s.Name + "-" + strconv.Itoa(s.NodeCount))
	s.NodeCount++
	end := s.Current.EndPoint()
	child.Translate(geom.Vector3{X: end.X, Y: end.Y, Z: end.Z})
	s.Current.AddChild(child)

	s.Push()
	s.Current = child
	return nil
}

func pop(s *domain.TurtleState, _ float64) error {
	return s.Pop()
}

func taper(s *domain.TurtleState, param float64) error {
	if param != 0 {
		s.WidthEnd = param
	} else {
		s.WidthEnd = s.Width * domain.TaperDecay
	}
	return nil
}

func forward(s *domain.TurtleState, param float64) error {
	if s.Current == nil {
		return fmt.Errorf("forward: no current node")
	}
	length := param
	if length == 0 {
		length = s.Length
	}
	s.Current.Extend(length, s.Orientation, s.Width, s.WidthEnd)
	s.Segments++
	s.Width = s.WidthEnd
	return nil
}

// ByName returns the built-in command with the given document name.
func ByName(name string) (*Builtin, bool) {
	for _, b := range builtins {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

// NameOf returns the document name of cmd if it is a builtin.
func NameOf(cmd domain.Command) (string, bool) {
	b, ok := cmd.(*Builtin)
	if !ok {
		return "", false
	}
	return b.name, true
}

// Names lists the document names of the built-in commands.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for _, b := range builtins {
		out = append(out, b.name)
	}
	sort.Strings(out)
	return out
}
