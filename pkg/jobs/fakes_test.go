package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mapphone-go/pkg/models"
)

// recordingView captures every call the controller makes
type recordingView struct {
	mu sync.Mutex

	answers  []bool // consumed in order; missing answers decline
	confirms []string
	calls    []string

	alerts    []string
	errors    []string
	progress  []models.ProgressState
	rendered  [][]models.Business
	downloads []models.DownloadLinks
	enabled   bool
	loading   bool
}

func newRecordingView(answers ...bool) *recordingView {
	return &recordingView{answers: answers, enabled: true}
}

func (v *recordingView) record(call string) {
	v.calls = append(v.calls, call)
}

func (v *recordingView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("Alert")
	v.alerts = append(v.alerts, message)
}

func (v *recordingView) Confirm(ctx context.Context, title, message string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("Confirm")
	v.confirms = append(v.confirms, title+" | "+message)
	if len(v.answers) == 0 {
		return false, nil
	}
	a := v.answers[0]
	v.answers = v.answers[1:]
	return a, nil
}

func (v *recordingView) SetControlsEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record(fmt.Sprintf("SetControlsEnabled(%t)", enabled))
	v.enabled = enabled
}

func (v *recordingView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record(fmt.Sprintf("SetLoading(%t)", loading))
	v.loading = loading
}

func (v *recordingView) ClearResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("ClearResults")
}

func (v *recordingView) SetProgress(p models.ProgressState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("SetProgress")
	v.progress = append(v.progress, p)
}

func (v *recordingView) RenderResults(rows []models.Business) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("RenderResults")
	v.rendered = append(v.rendered, append([]models.Business(nil), rows...))
}

func (v *recordingView) ShowDownloads(links models.DownloadLinks) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("ShowDownloads")
	v.downloads = append(v.downloads, links)
}

func (v *recordingView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record("ShowError")
	v.errors = append(v.errors, message)
}

func (v *recordingView) lastProgress() models.ProgressState {
	if len(v.progress) == 0 {
		return models.ProgressState{}
	}
	return v.progress[len(v.progress)-1]
}

func (v *recordingView) lastRendered() []models.Business {
	if len(v.rendered) == 0 {
		return nil
	}
	return v.rendered[len(v.rendered)-1]
}

// scriptedBackend replays canned responses and counts requests
type scriptedBackend struct {
	mu sync.Mutex

	start    *models.StartResponse
	startErr error

	statuses  []*models.StatusResponse // last one repeats
	statusErr error

	batches  []*models.BatchResponse
	batchErr error

	// onBatch runs before each batch response is returned
	onBatch func(ctx context.Context) error

	startCalls  int
	statusCalls int
	batchCalls  int
	startTerms  []string
}

func (b *scriptedBackend) StartScrape(ctx context.Context, term string) (*models.StartResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.startCalls++
	b.startTerms = append(b.startTerms, term)
	if b.startErr != nil {
		return nil, b.startErr
	}
	return b.start, nil
}

func (b *scriptedBackend) ScrapeStatus(ctx context.Context, jobID string) (*models.StatusResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statusCalls++
	if b.statusErr != nil {
		return nil, b.statusErr
	}
	if len(b.statuses) == 0 {
		return nil, errors.New("no scripted status")
	}
	resp := b.statuses[0]
	if len(b.statuses) > 1 {
		b.statuses = b.statuses[1:]
	}
	return resp, nil
}

func (b *scriptedBackend) ScrapeBatch(ctx context.Context) (*models.BatchResponse, error) {
	b.mu.Lock()
	b.batchCalls++
	hook := b.onBatch
	b.mu.Unlock()

	if hook != nil {
		if err := hook(ctx); err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.batchErr != nil {
		return nil, b.batchErr
	}
	if len(b.batches) == 0 {
		return nil, errors.New("no scripted batch")
	}
	resp := b.batches[0]
	b.batches = b.batches[1:]
	return resp, nil
}

func (b *scriptedBackend) totalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.startCalls + b.statusCalls + b.batchCalls
}

// fakeClock advances only when the controller waits or a batch is timed
type fakeClock struct {
	mu    sync.Mutex
	t     time.Time
	waits []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func (c *fakeClock) Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits = append(c.waits, d)
	c.t = c.t.Add(d)
	return nil
}

type recorderFunc func(ctx context.Context, run *models.JobRun) error

func (f recorderFunc) RecordRun(ctx context.Context, run *models.JobRun) error {
	return f(ctx, run)
}

func newTestController(b Backend, v View, clock *fakeClock, opts Options) *Controller {
	c := NewController(b, v, opts)
	c.now = clock.Now
	c.wait = clock.Wait
	return c
}

func intPtr(n int) *int { return &n }

func businesses(prefix string, n int) []models.Business {
	rows := make([]models.Business, n)
	for i := range rows {
		rows[i] = models.Business{
			BusinessName: fmt.Sprintf("%s %d", prefix, i+1),
			Website:      fmt.Sprintf("http://%s-%d.example", prefix, i+1),
			Phone:        fmt.Sprintf("+92300%07d", i+1),
		}
	}
	return rows
}
