// Package model defines the records persisted by the run-history store.
package model

import "time"

// Stage identifies a pipeline stage.
type Stage string

const (
	StageExtract Stage = "extract"
	StageMerge   Stage = "merge"
)

// RunStatus is the terminal state of a stage invocation. Stages run to
// completion or fail deterministically; there is no in-flight state worth
// recording.
type RunStatus string

const (
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records a single pipeline stage invocation: what it consumed, what it
// produced, and the resulting table shape.
type Run struct {
	ID        string        `json:"id"`
	Stage     Stage         `json:"stage"`
	Inputs    []string      `json:"inputs"`
	Output    string        `json:"output,omitempty"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Status    RunStatus     `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
