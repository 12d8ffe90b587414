package jobs

import (
	"context"
	"fmt"

	"mapphone-go/pkg/cli/logger"
	"mapphone-go/pkg/models"
)

// poll repeats status requests every PollInterval until the job reaches a
// terminal status or PollTimeout has elapsed since the first poll.
func (c *Controller) poll(ctx context.Context, run *models.JobRun) error {
	startedAt := c.now()
	percent := 0

	for polls := 1; ; polls++ {
		if c.now().Sub(startedAt) > c.opts.PollTimeout {
			return ErrPollTimeout
		}

		resp, err := c.status(ctx, run.JobID)
		if err != nil {
			return fmt.Errorf("scrape status: %w", err)
		}

		switch resp.Status {
		case models.StatusRunning, models.StatusPending:
			percent = nextSyntheticPercent(percent)
			c.view.SetProgress(models.ProgressState{
				Percent: percent,
				Message: "Scraping is in progress, please wait...",
				Level:   models.LevelInfo,
			})
			if err := c.wait(ctx, c.opts.PollInterval); err != nil {
				return err
			}

		case models.StatusComplete:
			logger.Log("job %s complete after %d polls", run.JobID, polls)
			run.Results = resp.Result
			run.Downloads = resp.Downloads()
			c.complete(run, "Scraping complete!")
			return nil

		case models.StatusFailed:
			msg := resp.Error
			if msg == "" {
				msg = MsgJobFailed
			}
			run.Status = models.StatusFailed
			return &JobError{Status: models.StatusFailed, Message: msg}

		case models.StatusNotFound:
			run.Status = models.StatusNotFound
			return ErrJobNotFound

		default:
			if resp.Error != "" {
				return &JobError{Status: models.StatusFailed, Message: resp.Error}
			}
			return fmt.Errorf("%w: %q", ErrUnexpectedStatus, resp.Status)
		}
	}
}

func (c *Controller) status(ctx context.Context, jobID string) (*models.StatusResponse, error) {
	rctx, cancel := c.requestContext(ctx)
	defer cancel()
	return c.backend.ScrapeStatus(rctx, jobID)
}
