package tui

import (
	"context"
	"fmt"
	"strings"

	"mapphone-go/pkg/cli/format"
	"mapphone-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// HistoryStore lists recorded runs, most recent first
type HistoryStore interface {
	ListRuns(ctx context.Context, limit int) ([]models.JobRun, error)
}

const historyLimit = 50

type runsLoadedMsg struct {
	runs []models.JobRun
	err  error
}

// historyModel lists recorded runs and shows the details of the selected one
type historyModel struct {
	ctx   context.Context
	store HistoryStore

	runs     []models.JobRun
	selected int
	ready    bool
	err      error
}

func newHistoryModel(ctx context.Context, store HistoryStore) *historyModel {
	return &historyModel{ctx: ctx, store: store}
}

// NewHistoryModel creates the run history screen wrapped with scrolling
func NewHistoryModel(ctx context.Context, store HistoryStore) tea.Model {
	return NewViewportWrapper(newHistoryModel(ctx, store), ViewportConfig{
		Title:       "Run History",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: HistoryHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func (m *historyModel) Init() tea.Cmd {
	return m.load
}

func (m *historyModel) load() tea.Msg {
	runs, err := m.store.ListRuns(m.ctx, historyLimit)
	return runsLoadedMsg{runs: runs, err: err}
}

func (m *historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runsLoadedMsg:
		m.ready = true
		m.err = msg.err
		m.runs = msg.runs
		if m.selected >= len(m.runs) {
			m.selected = max(len(m.runs)-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "r" {
			m.ready = false
			return m, m.load
		}
		if sel, ok := handleListNavigation(key, m.selected, len(m.runs)); ok {
			m.selected = sel
		}
	}
	return m, nil
}

func (m *historyModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading run history...")
	}
	if m.err != nil {
		return renderErrorView(m.err)
	}
	if len(m.runs) == 0 {
		return renderEmptyState("No runs recorded yet.")
	}

	var b strings.Builder
	for i, run := range m.runs {
		marker := " "
		line := fmt.Sprintf("%-40s %-8s %-10s %4d rows  %s",
			format.Truncate(run.SearchTerm, 40), run.Protocol, run.Status, run.ResultRows, format.FormatDate(run.StartedAt))
		if i == m.selected {
			marker = selectedMarkerStyle.Render("→")
			line = selectedMarkerStyle.Render(line)
		}
		b.WriteString(marker + " " + line + "\n")
	}

	b.WriteString("\n" + renderDivider(60) + "\n")
	b.WriteString(renderRunDetails(m.runs[m.selected]))
	return b.String()
}

func renderRunDetails(run models.JobRun) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fieldLabelStyle.Render(label))
		b.WriteString(" " + value + "\n")
	}

	field("Search:", run.SearchTerm)
	field("Protocol:", string(run.Protocol))
	if run.JobID != "" {
		field("Job ID:", run.JobID)
	}
	field("Status:", progressStyle(runLevel(run.Status)).Render(string(run.Status)))
	field("Rows:", fmt.Sprintf("%d (%d batch(es))", run.ResultRows, run.Batches))
	field("Started:", format.FormatDate(run.StartedAt))
	field("Duration:", format.FormatDuration(run.Duration()))
	if run.Downloads.WebsitesCSV != "" {
		field("Websites CSV:", run.Downloads.WebsitesCSV)
	}
	if run.Downloads.PhonesCSV != "" {
		field("Phones CSV:", run.Downloads.PhonesCSV)
	}
	if run.Error != "" {
		field("Error:", errorStyle.Render(run.Error))
	}
	return b.String()
}

func runLevel(status models.JobStatus) models.ProgressLevel {
	switch status {
	case models.StatusComplete:
		return models.LevelSuccess
	case models.StatusFailed, models.StatusNotFound:
		return models.LevelError
	default:
		return models.LevelInfo
	}
}
