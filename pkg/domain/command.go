package domain

// Command is the handler bound to a symbol during interpretation. The
// parameter is zero when the symbol carries no parameter group.
type Command interface {
	Execute(s *TurtleState, param float64) error
}

// CommandFunc adapts a plain function to Command.
type CommandFunc func(s *TurtleState, param float64) error

// Execute calls f.
func (f CommandFunc) Execute(s *TurtleState, param float64) error {
	return f(s, param)
}

// Bindings maps symbols to the commands they trigger.
type Bindings map[Symbol]Command
