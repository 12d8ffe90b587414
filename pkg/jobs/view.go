package jobs

import (
	"context"

	"mapphone-go/pkg/models"
)

// View is the UI capability the controller drives. Implementations own
// rendering; the controller only decides what to show and when.
type View interface {
	// Alert shows a blocking-free notice, used for local validation failures.
	Alert(message string)
	// Confirm asks the user to accept or decline and blocks until they choose.
	// A non-nil error is treated as a decline.
	Confirm(ctx context.Context, title, message string) (bool, error)
	SetControlsEnabled(enabled bool)
	SetLoading(loading bool)
	ClearResults()
	SetProgress(p models.ProgressState)
	RenderResults(rows []models.Business)
	ShowDownloads(links models.DownloadLinks)
	ShowError(message string)
}

// Backend is the job API the controller talks to
type Backend interface {
	StartScrape(ctx context.Context, term string) (*models.StartResponse, error)
	ScrapeStatus(ctx context.Context, jobID string) (*models.StatusResponse, error)
	ScrapeBatch(ctx context.Context) (*models.BatchResponse, error)
}

// Recorder persists finished runs
type Recorder interface {
	RecordRun(ctx context.Context, run *models.JobRun) error
}
