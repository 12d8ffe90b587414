package db

import (
	"context"
	"encoding/json"
	"fmt"

	"mapphone-go/pkg/models"

	"github.com/jackc/pgx/v5"
)

// RecordRun stores a finished run and sets its ID
func (db *DB) RecordRun(ctx context.Context, run *models.JobRun) error {
	results := run.Results
	if results == nil {
		results = []models.Business{}
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`INSERT INTO job_runs (search_term, protocol, job_id, status, result_rows, batches,
		                       results, websites_csv, phones_csv, error, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		run.SearchTerm,
		string(run.Protocol),
		run.JobID,
		string(run.Status),
		run.ResultRows,
		run.Batches,
		payload,
		run.Downloads.WebsitesCSV,
		run.Downloads.PhonesCSV,
		run.Error,
		run.StartedAt,
		run.FinishedAt,
	).Scan(&run.ID)

	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs first, without their result rows
func (db *DB) ListRuns(ctx context.Context, limit int) ([]models.JobRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, search_term, protocol, job_id, status, result_rows, batches,
		        websites_csv, phones_csv, error, started_at, finished_at
		 FROM job_runs
		 ORDER BY started_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.JobRun
	for rows.Next() {
		var run models.JobRun
		var protocol, status string
		if err := rows.Scan(
			&run.ID,
			&run.SearchTerm,
			&protocol,
			&run.JobID,
			&status,
			&run.ResultRows,
			&run.Batches,
			&run.Downloads.WebsitesCSV,
			&run.Downloads.PhonesCSV,
			&run.Error,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Protocol = models.Protocol(protocol)
		run.Status = models.JobStatus(status)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun loads a single run including its result rows
func (db *DB) GetRun(ctx context.Context, id int64) (*models.JobRun, error) {
	var run models.JobRun
	var protocol, status string
	var payload []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT id, search_term, protocol, job_id, status, result_rows, batches, results,
		        websites_csv, phones_csv, error, started_at, finished_at
		 FROM job_runs WHERE id = $1`,
		id,
	).Scan(
		&run.ID,
		&run.SearchTerm,
		&protocol,
		&run.JobID,
		&status,
		&run.ResultRows,
		&run.Batches,
		&payload,
		&run.Downloads.WebsitesCSV,
		&run.Downloads.PhonesCSV,
		&run.Error,
		&run.StartedAt,
		&run.FinishedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := json.Unmarshal(payload, &run.Results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	run.Protocol = models.Protocol(protocol)
	run.Status = models.JobStatus(status)

	return &run, nil
}
