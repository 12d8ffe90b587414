package models

import "time"

// ProgressLevel is the tone of the progress panel
type ProgressLevel string

const (
	LevelInfo    ProgressLevel = "info"
	LevelSuccess ProgressLevel = "success"
	LevelError   ProgressLevel = "error"
)

// ProgressState is recomputed every cycle and never persisted
type ProgressState struct {
	Percent int
	Message string
	ETA     *time.Duration
	Level   ProgressLevel
}
