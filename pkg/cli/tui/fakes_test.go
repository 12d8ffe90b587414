package tui

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"sync"

	"mapphone-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeAPI replays canned batch responses and records downloads
type fakeAPI struct {
	mu         sync.Mutex
	start      *models.StartResponse
	batches    []*models.BatchResponse
	downloaded []string
}

func (f *fakeAPI) StartScrape(ctx context.Context, term string) (*models.StartResponse, error) {
	return f.start, nil
}

func (f *fakeAPI) ScrapeStatus(ctx context.Context, jobID string) (*models.StatusResponse, error) {
	return nil, errors.New("not scripted")
}

func (f *fakeAPI) ScrapeBatch(ctx context.Context) (*models.BatchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batches) == 0 {
		return nil, errors.New("no scripted batch")
	}
	resp := f.batches[0]
	f.batches = f.batches[1:]
	return resp, nil
}

func (f *fakeAPI) DownloadTo(ctx context.Context, link, dir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloaded = append(f.downloaded, link)
	return filepath.Join(dir, path.Base(link)), nil
}

func (f *fakeAPI) ResolveURL(link string) string {
	return "http://scraper.test" + link
}

type fakeHistory struct {
	runs []models.JobRun
	err  error
}

func (f *fakeHistory) ListRuns(ctx context.Context, limit int) ([]models.JobRun, error) {
	return f.runs, f.err
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func twoRowBatchAPI() *fakeAPI {
	rows := []models.Business{
		{BusinessName: "Smile Dental", Website: "https://smile.example", Phone: "+92 42 1111111"},
		{BusinessName: "Care Clinic", Website: "N/A", Phone: "+92 42 2222222"},
	}
	return &fakeAPI{
		start: &models.StartResponse{Status: models.StatusReady, BusinessCount: 2, Message: "Found 2 businesses."},
		batches: []*models.BatchResponse{
			{Status: models.StatusBatchComplete, Results: rows, Remaining: 0, NextBatch: 2},
			{Status: models.StatusComplete, Message: "Scraping complete! Found 2 phone numbers.",
				WebsitesCSV: "/download/websites.csv", PhonesCSV: "/download/phones.csv"},
		},
	}
}
