package domain

const (
	// DefaultLength is the step length used by the forward command when a
	// grammar does not configure one and the symbol carries no parameter.
	DefaultLength = 30.0

	// TaperDecay is the factor applied to the start width by a parameterless taper.
	TaperDecay = 0.99

	// MaxIterations is the largest iteration count a grammar may request.
	MaxIterations = 32

	// WrapperSuffix and RootSuffix name the two nodes every generation creates.
	WrapperSuffix = "-wrapper"
	RootSuffix    = "-root"
)

// Phase names used in errors and events.
const (
	PhaseValidate  = "validate"
	PhaseLookup    = "lookup"
	PhaseExpand    = "expand"
	PhaseInterpret = "interpret"
)
