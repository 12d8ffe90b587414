package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"mapphone-go/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySearchTermNeverCallsBackend(t *testing.T) {
	for _, term := range []string{"", "   ", "\t\n "} {
		backend := &scriptedBackend{}
		view := newRecordingView(true)
		c := newTestController(backend, view, newFakeClock(), Options{})

		run, err := c.SubmitSearch(context.Background(), term)

		assert.ErrorIs(t, err, ErrEmptySearchTerm)
		assert.Nil(t, run)
		assert.Zero(t, backend.totalCalls())
		assert.Equal(t, []string{"Alert"}, view.calls)
		assert.Equal(t, []string{MsgEmptySearchTerm}, view.alerts)
	}
}

func TestDecliningStartConfirmationChangesNothing(t *testing.T) {
	backend := &scriptedBackend{start: &models.StartResponse{JobID: "abc"}}
	view := newRecordingView(false)
	c := newTestController(backend, view, newFakeClock(), Options{Protocol: models.ProtocolPoll})

	run, err := c.SubmitSearch(context.Background(), "dental clinics in Lahore")

	require.NoError(t, err)
	assert.Nil(t, run)
	assert.Zero(t, backend.totalCalls())
	assert.Equal(t, []string{"Confirm"}, view.calls)
	assert.Contains(t, view.confirms[0], `"dental clinics in Lahore"`)
	assert.True(t, view.enabled)
	assert.False(t, c.Active())
}

func TestSecondSubmissionWhileActiveIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &scriptedBackend{
		start: &models.StartResponse{Status: models.StatusReady, BusinessCount: 1},
		batches: []*models.BatchResponse{
			{Status: models.StatusComplete, Results: businesses("A", 1)},
		},
	}
	view := newRecordingView(true, true)
	c := newTestController(backend, view, newFakeClock(), Options{})
	backend.onBatch = func(ctx context.Context) error {
		close(entered)
		<-release
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitSearch(context.Background(), "cafes")
		done <- err
	}()

	<-entered
	assert.True(t, c.Active())
	_, err := c.SubmitSearch(context.Background(), "bakeries")
	assert.ErrorIs(t, err, ErrJobActive)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Active())
	assert.Equal(t, []string{"cafes"}, backend.startTerms)
}

func TestStartErrorFieldRendersFailureAndReenables(t *testing.T) {
	backend := &scriptedBackend{start: &models.StartResponse{Error: "No businesses found"}}
	view := newRecordingView(true)
	c := newTestController(backend, view, newFakeClock(), Options{})

	run, err := c.SubmitSearch(context.Background(), "unicorn farms")

	assert.ErrorIs(t, err, ErrJobFailed)
	require.NotNil(t, run)
	assert.Equal(t, models.StatusFailed, run.Status)
	assert.Equal(t, "No businesses found", run.Error)
	assert.Equal(t, []string{"No businesses found"}, view.errors)
	assert.Equal(t, models.LevelError, view.lastProgress().Level)
	assert.Equal(t, "Error: No businesses found", view.lastProgress().Message)
	assert.True(t, view.enabled)
	assert.False(t, view.loading)
	assert.Zero(t, backend.batchCalls)
}

func TestStartTransportErrorIsTerminal(t *testing.T) {
	backend := &scriptedBackend{startErr: errors.New("connection refused")}
	view := newRecordingView(true)
	c := newTestController(backend, view, newFakeClock(), Options{Protocol: models.ProtocolPoll})

	run, err := c.SubmitSearch(context.Background(), "cafes")

	require.Error(t, err)
	assert.Equal(t, models.StatusFailed, run.Status)
	assert.Equal(t, 1, backend.startCalls)
	assert.Zero(t, backend.statusCalls)
	assert.Len(t, view.errors, 1)
	assert.True(t, view.enabled)
	assert.False(t, view.loading)
}

func TestAcceptedStartPreparesView(t *testing.T) {
	backend := &scriptedBackend{start: &models.StartResponse{Status: models.StatusComplete}}
	view := newRecordingView(true)
	c := newTestController(backend, view, newFakeClock(), Options{})

	_, err := c.SubmitSearch(context.Background(), "  cafes  ")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(view.calls), 5)
	assert.Equal(t, []string{"Confirm", "SetControlsEnabled(false)", "ClearResults", "SetLoading(true)", "SetProgress"}, view.calls[:5])
	assert.Equal(t, "Scraping for \"cafes\" has started. Please wait...", view.progress[0].Message)
	assert.Equal(t, 0, view.progress[0].Percent)
	n := len(view.calls)
	assert.Equal(t, []string{"SetLoading(false)", "SetControlsEnabled(true)"}, view.calls[n-2:])
	assert.Equal(t, []string{"cafes"}, backend.startTerms)
}

func TestRecorderReceivesFinishedRun(t *testing.T) {
	backend := &scriptedBackend{
		start: &models.StartResponse{Status: models.StatusReady, BusinessCount: 2},
		batches: []*models.BatchResponse{
			{Status: models.StatusComplete, Results: businesses("A", 2), WebsitesCSV: "/download/websites.csv", PhonesCSV: "/download/phones.csv"},
		},
	}
	var recorded *models.JobRun
	rec := recorderFunc(func(ctx context.Context, run *models.JobRun) error {
		recorded = run
		return errors.New("database down")
	})
	view := newRecordingView(true, true)
	c := newTestController(backend, view, newFakeClock(), Options{Recorder: rec})

	run, err := c.SubmitSearch(context.Background(), "cafes")

	require.NoError(t, err, "recorder failures are not surfaced")
	require.NotNil(t, recorded)
	assert.Same(t, run, recorded)
	assert.Equal(t, models.StatusComplete, recorded.Status)
	assert.Equal(t, 2, recorded.ResultRows)
	assert.Empty(t, view.errors)
}

func TestCancelledContextStillCleansUp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &scriptedBackend{
		start:    &models.StartResponse{JobID: "abc"},
		statuses: []*models.StatusResponse{{Status: models.StatusRunning}},
	}
	view := newRecordingView(true)
	clock := newFakeClock()
	c := newTestController(backend, view, clock, Options{Protocol: models.ProtocolPoll})
	c.wait = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	run, err := c.SubmitSearch(ctx, "cafes")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.StatusFailed, run.Status)
	assert.Equal(t, MsgCancelled, run.Error)
	assert.True(t, view.enabled)
	assert.False(t, view.loading)
}

func TestPanicInViewStillReenablesControls(t *testing.T) {
	backend := &scriptedBackend{start: &models.StartResponse{Status: models.StatusComplete}}
	view := &panickingView{recordingView: newRecordingView(true)}
	c := newTestController(backend, view, newFakeClock(), Options{})

	assert.Panics(t, func() {
		c.SubmitSearch(context.Background(), "cafes")
	})
	assert.True(t, view.enabled)
	assert.False(t, view.loading)
	assert.False(t, c.Active())
}

type panickingView struct {
	*recordingView
}

func (v *panickingView) RenderResults(rows []models.Business) {
	panic("render failed")
}
