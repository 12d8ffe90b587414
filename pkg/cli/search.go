package cli

import (
	"context"
	"fmt"

	"mapphone-go/pkg/cli/logger"
	"mapphone-go/pkg/jobs"
	"mapphone-go/pkg/models"
	"mapphone-go/pkg/utils"
)

// SearchOptions controls a non-interactive search run
type SearchOptions struct {
	Yes      bool   // accept every confirmation
	Protocol string // overrides cli.protocol when set
	Download bool   // fetch both CSVs after a completed run
}

// Search runs one job on the terminal and prints the results
func (a *App) Search(ctx context.Context, term string, opts SearchOptions) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	ctrlOpts, err := a.controllerOptions(opts.Protocol)
	if err != nil {
		return err
	}

	// blank terms go straight to the controller, which alerts without a request
	if _, verr := utils.ValidateSearchTerm(term); verr == nil {
		if err := apiClient.CheckHealth(ctx); err != nil {
			return fmt.Errorf("scraper is not reachable at %s: %w", apiClient.BaseURL(), err)
		}
	}

	view := newConsoleView(a.in, a.out, opts.Yes, apiClient.ResolveURL)
	controller := jobs.NewController(apiClient, view, ctrlOpts)

	logger.Log("search %q via %s protocol against %s", term, ctrlOpts.Protocol, apiClient.BaseURL())
	run, err := controller.SubmitSearch(ctx, term)
	if run == nil {
		// declined or rejected before anything started
		if err == nil {
			fmt.Fprintln(a.out, "Scraping not started.")
		}
		return err
	}

	view.printResults()
	fmt.Fprintf(a.out, "Status: %s\n", run.Status)

	if err != nil {
		logger.LogError(err, "search %q", term)
		return fmt.Errorf("scraping failed: %w", err)
	}

	if opts.Download && run.Status == models.StatusComplete {
		return a.downloadCSVs(ctx, run.Downloads)
	}
	return nil
}

// downloadCSVs saves both exports into the configured download directory
func (a *App) downloadCSVs(ctx context.Context, links models.DownloadLinks) error {
	if links.Empty() {
		return fmt.Errorf("no download links available")
	}

	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	for _, link := range []string{links.WebsitesCSV, links.PhonesCSV} {
		if link == "" {
			continue
		}
		path, err := apiClient.DownloadTo(ctx, link, a.cfg.CLI.DownloadDir)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", link, err)
		}
		fmt.Fprintf(a.out, "✓ Saved %s\n", path)
	}
	return nil
}
