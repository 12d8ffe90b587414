package jobs

import (
	"context"
	"errors"

	"mapphone-go/pkg/models"
	"mapphone-go/pkg/utils"
)

var (
	ErrEmptySearchTerm  = utils.ErrEmptySearchTerm
	ErrJobActive        = errors.New("a scraping job is already running")
	ErrPollTimeout      = errors.New("scraping timeout")
	ErrJobNotFound      = errors.New("scraping job not found")
	ErrJobFailed        = errors.New("scraping job failed")
	ErrUnexpectedStatus = errors.New("unexpected job status")
)

// Messages shown to the user
const (
	MsgEmptySearchTerm = "Please enter a search term (e.g., dental clinics in Lahore)."
	MsgPollTimeout     = "Scraping timeout. Please try again."
	MsgJobNotFound     = "Scraping job not found. Please try again."
	MsgJobFailed       = "Scraping job failed. Please check the logs."
	MsgCancelled       = "Scraping was cancelled."
)

// JobError is a failure the backend reported, either in an error field or as a failed status.
type JobError struct {
	Status  models.JobStatus
	Message string
}

func (e *JobError) Error() string {
	return e.Message
}

func (e *JobError) Is(target error) bool {
	return target == ErrJobFailed
}

type userMessager interface {
	UserMessage() string
}

// userMessage picks the text the view shows for err
func userMessage(err error) string {
	var jobErr *JobError
	var um userMessager
	switch {
	case errors.As(err, &jobErr):
		return jobErr.Message
	case errors.Is(err, ErrPollTimeout):
		return MsgPollTimeout
	case errors.Is(err, ErrJobNotFound):
		return MsgJobNotFound
	case errors.Is(err, context.Canceled):
		return MsgCancelled
	case errors.As(err, &um):
		return um.UserMessage()
	}
	return err.Error()
}
