package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mapphone-go/pkg/cli/logger"
	"mapphone-go/pkg/models"
	"mapphone-go/pkg/utils"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultPollTimeout  = 10 * time.Minute
	DefaultBatchSize    = 30

	recordTimeout = 5 * time.Second
)

// Options configures a Controller
type Options struct {
	Protocol       models.Protocol
	PollInterval   time.Duration
	PollTimeout    time.Duration
	BatchSize      int
	RequestTimeout time.Duration // per status or batch request, 0 disables
	Recorder       Recorder      // optional
}

// Controller drives one scraping job at a time from the user's search term
// to a terminal state, rendering everything through its View.
type Controller struct {
	backend Backend
	view    View
	opts    Options

	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error

	mu     sync.Mutex
	active bool
}

// NewController creates a controller bound to one backend and one view
func NewController(backend Backend, view View, opts Options) *Controller {
	if opts.Protocol == "" {
		opts.Protocol = models.ProtocolBatch
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	return &Controller{
		backend: backend,
		view:    view,
		opts:    opts,
		now:     time.Now,
		wait:    sleep,
	}
}

// Protocol returns the protocol this controller speaks
func (c *Controller) Protocol() models.Protocol {
	return c.opts.Protocol
}

// Active reports whether a job is in flight
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SubmitSearch runs the whole flow for term. It returns a nil run and nil
// error when the user declines the initial confirmation. Every path past
// the confirmation re-enables the controls and clears the loading indicator.
func (c *Controller) SubmitSearch(ctx context.Context, term string) (*models.JobRun, error) {
	if !c.acquire() {
		return nil, ErrJobActive
	}
	defer c.release()

	term, err := utils.ValidateSearchTerm(term)
	if err != nil {
		c.view.Alert(MsgEmptySearchTerm)
		return nil, err
	}

	proceed, err := c.view.Confirm(ctx, "Start Scraping?",
		fmt.Sprintf("Do you want to start scraping phone numbers for \"%s\"? This might take a few minutes.", term))
	if err != nil {
		logger.LogError(err, "start confirmation for %q", term)
	}
	if err != nil || !proceed {
		return nil, nil
	}

	run := &models.JobRun{
		SearchTerm: term,
		Protocol:   c.opts.Protocol,
		StartedAt:  c.now(),
	}

	c.view.SetControlsEnabled(false)
	c.view.ClearResults()
	c.view.SetLoading(true)
	defer func() {
		c.view.SetLoading(false)
		c.view.SetControlsEnabled(true)
	}()

	c.view.SetProgress(models.ProgressState{
		Percent: 0,
		Message: fmt.Sprintf("Scraping for \"%s\" has started. Please wait...", term),
		Level:   models.LevelInfo,
	})

	logger.Log("starting %s job for %q", c.opts.Protocol, term)
	err = c.run(ctx, run)
	run.FinishedAt = c.now()
	run.ResultRows = len(run.Results)

	if err != nil {
		if !run.Status.IsTerminal() || run.Status == models.StatusComplete {
			run.Status = models.StatusFailed
		}
		run.Error = userMessage(err)
		logger.LogError(err, "job %q for %q ended as %s", run.JobID, term, run.Status)
		c.fail(run.Error)
	} else {
		logger.Log("job %q for %q ended as %s with %d rows in %s",
			run.JobID, term, run.Status, run.ResultRows, run.Duration())
	}

	c.record(ctx, run)
	return run, err
}

func (c *Controller) run(ctx context.Context, run *models.JobRun) error {
	start, err := c.backend.StartScrape(ctx, run.SearchTerm)
	if err != nil {
		return fmt.Errorf("start scrape: %w", err)
	}
	if start.Error != "" {
		return &JobError{Status: models.StatusFailed, Message: start.Error}
	}
	run.JobID = start.JobID

	switch c.opts.Protocol {
	case models.ProtocolPoll:
		if start.JobID == "" {
			return fmt.Errorf("start scrape: %w: response carries no job_id", ErrUnexpectedStatus)
		}
		return c.poll(ctx, run)
	default:
		return c.runBatches(ctx, run, start)
	}
}

// complete renders the success state for a finished run
func (c *Controller) complete(run *models.JobRun, message string) {
	run.Status = models.StatusComplete
	if message == "" {
		message = "Scraping complete!"
	}
	c.view.SetProgress(models.ProgressState{
		Percent: 100,
		Message: message,
		Level:   models.LevelSuccess,
	})
	c.view.RenderResults(run.Results)
	c.view.ShowDownloads(run.Downloads)
}

// fail renders the error state
func (c *Controller) fail(message string) {
	c.view.SetProgress(models.ProgressState{
		Percent: 100,
		Message: "Error: " + message,
		Level:   models.LevelError,
	})
	c.view.ShowError(message)
}

func (c *Controller) record(ctx context.Context, run *models.JobRun) {
	if c.opts.Recorder == nil {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := c.opts.Recorder.RecordRun(rctx, run); err != nil {
		logger.LogError(err, "record run for %q", run.SearchTerm)
	}
}

// requestContext bounds a single backend round trip
func (c *Controller) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.RequestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.opts.RequestTimeout)
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return false
	}
	c.active = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
