package models

import "time"

// JobStatus is the backend-reported state of a scraping job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusComplete  JobStatus = "complete"
	StatusFailed    JobStatus = "failed"
	StatusNotFound  JobStatus = "not_found"
	StatusCancelled JobStatus = "cancelled"

	// Batch protocol statuses reported before the job completes
	StatusReady         JobStatus = "ready"
	StatusBatchComplete JobStatus = "batch_complete"
)

// IsTerminal reports whether no further requests follow this status
func (s JobStatus) IsTerminal() bool {
	switch s {
	case StatusComplete, StatusFailed, StatusNotFound, StatusCancelled:
		return true
	}
	return false
}

// Job is a backend-tracked scraping task
type Job struct {
	ID     string    `json:"job_id"`
	Status JobStatus `json:"status"`
}

// Protocol selects how the client drives a job to completion
type Protocol string

const (
	ProtocolBatch Protocol = "batch"
	ProtocolPoll  Protocol = "poll"
)

// ParseProtocol validates a protocol name from config or flags
func ParseProtocol(s string) (Protocol, bool) {
	switch Protocol(s) {
	case ProtocolBatch, ProtocolPoll:
		return Protocol(s), true
	}
	return "", false
}

// DownloadLinks holds the CSV export URLs of a completed job
type DownloadLinks struct {
	WebsitesCSV string `json:"websites_csv,omitempty"`
	PhonesCSV   string `json:"phones_csv,omitempty"`
}

// Empty reports whether neither link is set
func (d DownloadLinks) Empty() bool {
	return d.WebsitesCSV == "" && d.PhonesCSV == ""
}

// JobRun is the outcome of one submitted search, from confirmation to a terminal state
type JobRun struct {
	ID         int64         `db:"id" json:"id,omitempty"`
	SearchTerm string        `db:"search_term" json:"search_term"`
	Protocol   Protocol      `db:"protocol" json:"protocol"`
	JobID      string        `db:"job_id" json:"job_id,omitempty"`
	Status     JobStatus     `db:"status" json:"status"`
	Results    []Business    `db:"-" json:"results,omitempty"`
	ResultRows int           `db:"result_rows" json:"result_rows"`
	Batches    int           `db:"batches" json:"batches"`
	Downloads  DownloadLinks `db:"-" json:"downloads"`
	Error      string        `db:"error" json:"error,omitempty"`
	StartedAt  time.Time     `db:"started_at" json:"started_at"`
	FinishedAt time.Time     `db:"finished_at" json:"finished_at"`
}

// Duration is the wall time between submission and the terminal state
func (r *JobRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
