package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventExpand   EventType = "expand"
	EventGenerate EventType = "generate"
	EventError    EventType = "error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Grammar   string    `json:"grammar"`
}

// ExpandEvent is emitted after the rewriting phase.
type ExpandEvent struct {
	EventBase
	Iterations int           `json:"iterations"`
	Length     int           `json:"length"`
	Rewrites   int           `json:"rewrites"`
	Transforms int           `json:"transforms"`
	Cached     bool          `json:"cached"`
	Duration   time.Duration `json:"duration"`
}

// GenerateEvent is emitted after a geometry tree has been built.
type GenerateEvent struct {
	EventBase
	Nodes    int           `json:"nodes"`
	Segments int           `json:"segments"`
	MaxDepth int           `json:"max_depth"`
	Duration time.Duration `json:"duration"`
}

// ErrorEvent is emitted when either phase fails.
type ErrorEvent struct {
	EventBase
	Phase string `json:"phase"`
	Kind  string `json:"kind"`
	Err   error  `json:"-"`
}

// Hooks defines callbacks for generator observability.
type Hooks struct {
	OnExpand   func(context.Context, *ExpandEvent)
	OnGenerate func(context.Context, *GenerateEvent)
	OnError    func(context.Context, *ErrorEvent)
}

// MergeHooks returns hooks that call every non-nil callback of hs in order.
func MergeHooks(hs ...Hooks) Hooks {
	return Hooks{
		OnExpand: func(ctx context.Context, e *ExpandEvent) {
			for _, h := range hs {
				if h.OnExpand != nil {
					h.OnExpand(ctx, e)
				}
			}
		},
		OnGenerate: func(ctx context.Context, e *GenerateEvent) {
			for _, h := range hs {
				if h.OnGenerate != nil {
					h.OnGenerate(ctx, e)
				}
			}
		},
		OnError: func(ctx context.Context, e *ErrorEvent) {
			for _, h := range hs {
				if h.OnError != nil {
					h.OnError(ctx, e)
				}
			}
		},
	}
}
