package db

import (
	"context"
	"os"
	"testing"
	"time"

	"mapphone-go/pkg/jobs"
	"mapphone-go/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ jobs.Recorder = (*DB)(nil)

// openTestDB connects to MAPPHONE_TEST_DATABASE_URL or skips
func openTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("MAPPHONE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MAPPHONE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, database.EnsureSchema(ctx))
	_, err = database.Pool.Exec(ctx, `TRUNCATE job_runs`)
	require.NoError(t, err)
	return database
}

func TestRecordAndListRuns(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	older := &models.JobRun{
		SearchTerm: "cafes",
		Protocol:   models.ProtocolPoll,
		JobID:      "abc",
		Status:     models.StatusFailed,
		Error:      "Scraping timeout. Please try again.",
		StartedAt:  started,
		FinishedAt: started.Add(10 * time.Minute),
	}
	newer := &models.JobRun{
		SearchTerm: "dental clinics in Lahore",
		Protocol:   models.ProtocolBatch,
		Status:     models.StatusComplete,
		Results:    []models.Business{{BusinessName: "Smile", Website: "N/A", Phone: "123"}},
		ResultRows: 1,
		Batches:    1,
		Downloads:  models.DownloadLinks{WebsitesCSV: "/download/websites.csv", PhonesCSV: "/download/phones.csv"},
		StartedAt:  started.Add(time.Hour),
		FinishedAt: started.Add(time.Hour + time.Minute),
	}

	require.NoError(t, database.RecordRun(ctx, older))
	require.NoError(t, database.RecordRun(ctx, newer))
	assert.NotZero(t, newer.ID)

	runs, err := database.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "dental clinics in Lahore", runs[0].SearchTerm)
	assert.Equal(t, models.ProtocolBatch, runs[0].Protocol)
	assert.Equal(t, "/download/phones.csv", runs[0].Downloads.PhonesCSV)
	assert.Nil(t, runs[0].Results)
	assert.Equal(t, models.StatusFailed, runs[1].Status)
	assert.Equal(t, 10*time.Minute, runs[1].Duration())

	got, err := database.GetRun(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.Results, got.Results)

	_, err = database.GetRun(ctx, newer.ID+1000)
	assert.EqualError(t, err, "run not found")
}
