package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mapphone-go/pkg/models"
	"mapphone-go/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrNoSearchTerm = errors.New("Search term is required")
	ErrNoBusinesses = errors.New("No businesses found")
	ErrNoSession    = errors.New("No businesses available")
	ErrInvalidFile  = errors.New("Invalid file")
	ErrFileNotFound = errors.New("file not found")
)

// DownloadPrefix is the route CSV links point at
const DownloadPrefix = "/download/"

// JobService runs scraping jobs against a Source for both the poll and batch contracts
type JobService struct {
	source    Source
	batchSize int
	duration  time.Duration
	now       func() time.Time

	mu      sync.Mutex
	jobs    map[string]*pollJob
	session *batchSession
	exports map[string][]byte
}

type pollJob struct {
	rows    []models.Business
	started time.Time
}

type batchSession struct {
	rows   []models.Business
	offset int
	number int
}

// NewJobService creates a service that serves batchSize rows per batch and
// reports poll jobs complete once duration has elapsed
func NewJobService(source Source, batchSize int, duration time.Duration) *JobService {
	if batchSize <= 0 {
		batchSize = 30
	}
	return &JobService{
		source:    source,
		batchSize: batchSize,
		duration:  duration,
		now:       time.Now,
		jobs:      make(map[string]*pollJob),
		exports:   make(map[string][]byte),
	}
}

// Start resolves the search term and opens both a poll job and a fresh batch session.
// Any previous batch session is discarded.
func (s *JobService) Start(ctx context.Context, term string) (*models.StartResponse, error) {
	term, err := utils.ValidateSearchTerm(term)
	if err != nil {
		return nil, ErrNoSearchTerm
	}

	rows, err := s.source.Businesses(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to load businesses: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoBusinesses
	}
	rows = normalize(rows)

	id := uuid.New().String()
	remaining := len(rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = &pollJob{rows: rows, started: s.now()}
	s.session = &batchSession{rows: rows}

	return &models.StartResponse{
		JobID:         id,
		Status:        models.StatusReady,
		Message:       fmt.Sprintf("Found %d businesses. Ready to display phone numbers.", len(rows)),
		BusinessCount: len(rows),
		Remaining:     &remaining,
	}, nil
}

// Status reports a poll job. Unknown ids answer not_found rather than an error.
func (s *JobService) Status(ctx context.Context, jobID string) (*models.StatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return &models.StatusResponse{Status: models.StatusNotFound}, nil
	}
	if s.now().Sub(job.started) < s.duration {
		return &models.StatusResponse{Status: models.StatusRunning}, nil
	}

	if err := s.export(job.rows); err != nil {
		return &models.StatusResponse{Status: models.StatusFailed, Error: err.Error()}, nil
	}
	return &models.StatusResponse{
		Status:      models.StatusComplete,
		Result:      job.rows,
		WebsitesCSV: DownloadPrefix + WebsitesCSV,
		PhonesCSV:   DownloadPrefix + PhonesCSV,
	}, nil
}

// NextBatch returns the next slice of the open session. Once every row has been
// handed out the following call completes the session with the full result set.
func (s *JobService) NextBatch(ctx context.Context) (*models.BatchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session
	if sess == nil {
		return nil, ErrNoSession
	}

	if sess.offset < len(sess.rows) {
		end := min(sess.offset+s.batchSize, len(sess.rows))
		batch := sess.rows[sess.offset:end]
		sess.offset = end
		sess.number++

		return &models.BatchResponse{
			Status: models.StatusBatchComplete,
			Message: fmt.Sprintf("Batch %d complete. Processed %d businesses. Total phone numbers: %d.",
				sess.number, len(batch), models.CountPhones(sess.rows[:end])),
			Results:   batch,
			Remaining: len(sess.rows) - end,
			NextBatch: sess.number + 1,
		}, nil
	}

	if err := s.export(sess.rows); err != nil {
		return nil, err
	}
	s.session = nil

	return &models.BatchResponse{
		Status:      models.StatusComplete,
		Message:     fmt.Sprintf("Scraping complete! Found %d phone numbers.", models.CountPhones(sess.rows)),
		Results:     sess.rows,
		Remaining:   0,
		WebsitesCSV: DownloadPrefix + WebsitesCSV,
		PhonesCSV:   DownloadPrefix + PhonesCSV,
	}, nil
}

// Download returns the latest export for one of the two known file names
func (s *JobService) Download(name string) ([]byte, error) {
	if name != WebsitesCSV && name != PhonesCSV {
		return nil, ErrInvalidFile
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.exports[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrFileNotFound)
	}
	return data, nil
}

// export regenerates both CSV files; the caller holds mu
func (s *JobService) export(rows []models.Business) error {
	phones, err := phonesCSV(rows)
	if err != nil {
		return err
	}
	websites, err := websitesCSV(rows)
	if err != nil {
		return err
	}
	s.exports[PhonesCSV] = phones
	s.exports[WebsitesCSV] = websites
	return nil
}
