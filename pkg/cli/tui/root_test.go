package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"mapphone-go/pkg/cli/tui/searchflow"
	"mapphone-go/pkg/jobs"
	"mapphone-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(history HistoryStore) *rootModel {
	return NewRootModel(context.Background(), Deps{
		Client:      twoRowBatchAPI(),
		Options:     jobs.Options{Protocol: models.ProtocolBatch},
		History:     history,
		DownloadDir: ".",
	}).(*rootModel)
}

func TestRootMenuQuits(t *testing.T) {
	m := newTestRoot(nil)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRootOpensSearchAndReturnsToMenu(t *testing.T) {
	m := newTestRoot(nil)

	m.Update(keyMsg("1"))
	require.NotNil(t, m.current)
	assert.Contains(t, m.View(), "Search:")

	// typing goes to the search box, not the shortcut handler
	m.Update(keyMsg("m"))
	m.Update(keyMsg("q"))
	wrapper := m.current.(*ViewportWrapper)
	search := wrapper.Model().(*searchModel)
	assert.Equal(t, "mq", search.input.Value())

	m.Update(MenuNavigationMsg{})
	assert.Nil(t, m.current)
	assert.Contains(t, m.View(), "New search")

	// the search screen keeps its state between visits
	m.Update(keyMsg("1"))
	assert.Same(t, wrapper, m.current)
}

func TestRootHistoryNeedsStore(t *testing.T) {
	m := newTestRoot(nil)
	m.Update(keyMsg("2"))
	assert.Nil(t, m.current)
	assert.Contains(t, m.View(), "set database.url to enable")
}

func TestHistoryScreenListsRuns(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeHistory{runs: []models.JobRun{
		{ID: 2, SearchTerm: "dental clinics in Lahore", Protocol: models.ProtocolBatch, Status: models.StatusComplete,
			ResultRows: 45, Batches: 2, StartedAt: start, FinishedAt: start.Add(time.Minute),
			Downloads: models.DownloadLinks{PhonesCSV: "/download/phones.csv"}},
		{ID: 1, SearchTerm: "cafes", Protocol: models.ProtocolPoll, Status: models.StatusFailed,
			Error: "Scraping timeout. Please try again.", StartedAt: start.Add(-time.Hour)},
	}}
	m := newHistoryModel(context.Background(), store)

	assert.Contains(t, m.View(), "Loading run history")
	m.Update(m.Init()())

	out := m.View()
	assert.Contains(t, out, "dental clinics in Lahore")
	assert.Contains(t, out, "/download/phones.csv")

	m.Update(keyMsg("j"))
	assert.Equal(t, 1, m.selected)
	assert.Contains(t, m.View(), "Scraping timeout. Please try again.")

	m.Update(keyMsg("j"))
	assert.Equal(t, 1, m.selected, "selection stops at the last run")
}

func TestHistoryScreenShowsErrors(t *testing.T) {
	m := newHistoryModel(context.Background(), &fakeHistory{err: errors.New("connection refused")})
	m.Update(m.Init()())
	assert.Contains(t, m.View(), "connection refused")

	empty := newHistoryModel(context.Background(), &fakeHistory{})
	empty.Update(empty.Init()())
	assert.Contains(t, empty.View(), "No runs recorded yet.")
}

func TestWrapperHelpOverlay(t *testing.T) {
	w := NewHistoryModel(context.Background(), &fakeHistory{}).(*ViewportWrapper)

	w.Update(keyMsg("?"))
	assert.Contains(t, w.View(), "Keyboard Shortcuts")

	w.Update(keyMsg("esc"))
	assert.NotContains(t, w.View(), "Keyboard Shortcuts")

	_, cmd := w.Update(keyMsg("m"))
	require.NotNil(t, cmd)
	assert.Equal(t, MenuNavigationMsg{}, cmd())
}

func TestWrapperConfirmModalSwallowsShortcuts(t *testing.T) {
	m := newTestSearch(t, twoRowBatchAPI())
	w := NewViewportWrapper(m, ViewportConfig{EnableMenu: true, EnableHelp: true})
	reply := make(chan bool, 1)
	m.step = searchflow.StepRunning
	m.Update(searchflow.ConfirmRequestMsg{Title: "Process batch 2?", Reply: reply})

	_, cmd := w.Update(keyMsg("n"))
	assert.Nil(t, cmd)
	assert.False(t, <-reply)
	assert.Nil(t, m.state.Pending)
}
