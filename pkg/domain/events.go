package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventCase        EventType = "case"
	EventCaseFailure EventType = "case_failure"
	EventRunComplete EventType = "run_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// RunEvent represents the start or the end of a strategy run.
type RunEvent struct {
	EventBase
	Strategy  Strategy      `json:"strategy"`
	Cases     int           `json:"cases"`
	Failures  int           `json:"failures"`
	Redundant int           `json:"redundant"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// CaseEvent represents one generated or failed case.
type CaseEvent struct {
	EventBase
	Strategy Strategy `json:"strategy"`
	Name     string   `json:"name"`
	Length   int      `json:"length"`
	Message  string   `json:"message,omitempty"`
}

// GenerationHooks defines callbacks for engine observability.
type GenerationHooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnCase        func(context.Context, *CaseEvent)
	OnCaseFailure func(context.Context, *CaseEvent)
	OnRunComplete func(context.Context, *RunEvent)
}
