package jobs

import (
	"context"
	"fmt"
	"time"

	"mapphone-go/pkg/cli/logger"
	"mapphone-go/pkg/models"
)

// runBatches drives the explicit batch protocol. Every batch is gated by a
// user confirmation; declining stops locally without telling the backend.
// Rows accumulate across batches; a non-empty final result set replaces them.
func (c *Controller) runBatches(ctx context.Context, run *models.JobRun, start *models.StartResponse) error {
	total := start.BusinessCount
	remaining := total
	if start.Remaining != nil {
		remaining = max(*start.Remaining, 0)
	}

	rows := append([]models.Business(nil), start.Results...)
	if start.Status == models.StatusComplete {
		run.Results = rows
		run.Downloads = models.DownloadLinks{WebsitesCSV: start.WebsitesCSV, PhonesCSV: start.PhonesCSV}
		c.complete(run, start.Message)
		return nil
	}

	percent := batchPercent(total, remaining)
	if start.Message != "" {
		c.view.SetProgress(models.ProgressState{Percent: percent, Message: start.Message, Level: models.LevelInfo})
	}
	if len(rows) > 0 {
		c.view.RenderResults(rows)
	}

	var last time.Duration
	for batch := 1; ; batch++ {
		// Nothing left to process: the next request only collects the final payload.
		if remaining > 0 {
			proceed, err := c.view.Confirm(ctx, fmt.Sprintf("Process batch %d?", batch), batchPrompt(remaining, c.opts.BatchSize, last))
			if err != nil {
				logger.LogError(err, "batch %d confirmation", batch)
			}
			if err != nil || !proceed {
				run.Status = models.StatusCancelled
				run.Results = rows
				c.view.SetProgress(models.ProgressState{
					Percent: percent,
					Message: fmt.Sprintf("Scraping cancelled after %d batch(es).", batch-1),
					Level:   models.LevelInfo,
				})
				return nil
			}
		}

		resp, elapsed, err := c.nextBatch(ctx)
		if err != nil {
			run.Results = rows
			return fmt.Errorf("scrape batch %d: %w", batch, err)
		}
		if resp.Error != "" {
			run.Results = rows
			return &JobError{Status: models.StatusFailed, Message: resp.Error}
		}
		if resp.Status == models.StatusFailed {
			run.Results = rows
			return &JobError{Status: models.StatusFailed, Message: MsgJobFailed}
		}
		last = elapsed
		logger.Log("batch %d returned %s with %d rows, %d remaining in %s",
			batch, resp.Status, len(resp.Results), resp.Remaining, elapsed)

		if resp.Status == models.StatusComplete {
			if len(resp.Results) > 0 {
				rows = resp.Results
			}
			run.Results = rows
			run.Downloads = resp.Downloads()
			c.complete(run, resp.Message)
			return nil
		}

		if remaining == 0 {
			run.Results = rows
			return fmt.Errorf("%w: %q with no businesses remaining", ErrUnexpectedStatus, resp.Status)
		}

		run.Batches = batch
		rows = append(rows, resp.Results...)
		remaining = max(resp.Remaining, 0)
		percent = batchPercent(total, remaining)
		c.view.RenderResults(rows)

		msg := resp.Message
		if msg == "" {
			msg = fmt.Sprintf("Batch %d complete. %d businesses remaining.", batch, remaining)
		}
		p := models.ProgressState{Percent: percent, Message: msg, Level: models.LevelInfo}
		if eta, ok := EstimateETA(remaining, c.opts.BatchSize, last); ok && remaining > 0 {
			p.ETA = &eta
		}
		c.view.SetProgress(p)
	}
}

// nextBatch issues one batch request and measures its round trip
func (c *Controller) nextBatch(ctx context.Context) (*models.BatchResponse, time.Duration, error) {
	rctx, cancel := c.requestContext(ctx)
	defer cancel()

	started := c.now()
	resp, err := c.backend.ScrapeBatch(rctx)
	return resp, c.now().Sub(started), err
}

func batchPrompt(remaining, batchSize int, last time.Duration) string {
	msg := fmt.Sprintf("%d businesses remaining (about %d batch(es) of %d).",
		remaining, batchesLeft(remaining, batchSize), batchSize)
	if eta, ok := EstimateETA(remaining, batchSize, last); ok {
		msg += " Estimated time: " + FormatETA(eta) + "."
	}
	return msg + " Continue?"
}
