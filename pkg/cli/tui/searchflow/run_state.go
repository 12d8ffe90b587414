package searchflow

import (
	"context"

	"mapphone-go/pkg/models"
)

// RunState holds everything the search screen shows about the current run
type RunState struct {
	Term      string
	Loading   bool
	Progress  models.ProgressState
	Rows      []models.Business
	Downloads models.DownloadLinks
	Error     string
	Run       *models.JobRun

	// Pending holds an unanswered confirmation
	Pending *ConfirmRequestMsg

	Cancel context.CancelFunc
}

// Reset clears the state for a new run of term
func (s *RunState) Reset(term string) {
	*s = RunState{Term: term}
}

// Answer replies to the pending confirmation, if any
func (s *RunState) Answer(ok bool) {
	if s.Pending == nil {
		return
	}
	s.Pending.Reply <- ok
	s.Pending = nil
}
