package client

import (
	"context"
	"net/http"
	"net/url"

	"mapphone-go/pkg/models"
)

// StartScrape creates a scraping job for the search term
func (c *Client) StartScrape(ctx context.Context, term string) (*models.StartResponse, error) {
	var resp models.StartResponse
	payload := models.SearchRequest{SearchTerm: term}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/start_scrape", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScrapeStatus fetches the current status of a job
func (c *Client) ScrapeStatus(ctx context.Context, jobID string) (*models.StatusResponse, error) {
	var resp models.StatusResponse
	if err := c.doGetRequest(ctx, "/scrape_status/"+url.PathEscape(jobID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScrapeBatch asks the backend to process the next batch of the current job
func (c *Client) ScrapeBatch(ctx context.Context) (*models.BatchResponse, error) {
	var resp models.BatchResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/scrape_batch", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckHealth verifies the server is available
func (c *Client) CheckHealth(ctx context.Context) error {
	return c.doGetRequest(ctx, "/health", nil)
}
