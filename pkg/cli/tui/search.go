package tui

import (
	"context"
	"fmt"
	"strings"

	"mapphone-go/pkg/cli/logger"
	"mapphone-go/pkg/cli/tui/searchflow"
	"mapphone-go/pkg/jobs"
	"mapphone-go/pkg/models"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// API is what the search screen needs from the job API client
type API interface {
	jobs.Backend
	DownloadTo(ctx context.Context, link, dir string) (string, error)
	ResolveURL(link string) string
}

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

// searchModel drives one Controller: a search box, the confirm modal, the
// progress panel, the results table and the CSV links.
type searchModel struct {
	ctx         context.Context
	api         API
	controller  *jobs.Controller
	view        *teaView
	downloadDir string

	step            int
	controlsEnabled bool
	state           searchflow.RunState
	alert           string
	status          string

	input   textinput.Model
	spinner spinner.Model
	bar     progress.Model
	results table.Model

	width int
}

func newSearchModel(ctx context.Context, api API, opts jobs.Options, downloadDir string) *searchModel {
	input := textinput.New()
	input.Placeholder = "dental clinics in Lahore"
	input.CharLimit = 200
	input.Width = 50
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 50

	results := table.New(
		table.WithColumns(resultColumns(searchflow.DefaultWidth)),
		table.WithHeight(searchflow.ResultsHeight),
		table.WithFocused(true),
	)
	results.SetStyles(tableStyles())

	view := newTeaView(ctx.Done())

	return &searchModel{
		ctx:             ctx,
		api:             api,
		controller:      jobs.NewController(api, view, opts),
		view:            view,
		downloadDir:     downloadDir,
		step:            searchflow.StepInput,
		controlsEnabled: true,
		input:           input,
		spinner:         sp,
		bar:             bar,
		results:         results,
		width:           searchflow.DefaultWidth,
	}
}

// NewSearchModel creates the search screen wrapped for menu and help support
func NewSearchModel(ctx context.Context, api API, opts jobs.Options, downloadDir string) tea.Model {
	return NewViewportWrapper(newSearchModel(ctx, api, opts, downloadDir), ViewportConfig{
		Title:       "MapPhone Extractor",
		ShowHeader:  true,
		ShowFooter:  true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: SearchHelpContent,
		MinWidth:    60,
		MinHeight:   20,
	})
}

func (m *searchModel) Init() tea.Cmd {
	return textinput.Blink
}

// CapturingInput reports whether keys belong to the text input or the confirm modal
func (m *searchModel) CapturingInput() bool {
	return m.step == searchflow.StepInput || m.state.Pending != nil
}

// Busy reports whether a run is in flight
func (m *searchModel) Busy() bool {
	return m.step == searchflow.StepRunning
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchflow.AlertMsg:
		m.alert = msg.Message
		return m, m.view.waitForEvent()

	case searchflow.ConfirmRequestMsg:
		req := msg
		m.state.Pending = &req
		return m, m.view.waitForEvent()

	case searchflow.ControlsMsg:
		m.controlsEnabled = msg.Enabled
		if msg.Enabled {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, m.view.waitForEvent()

	case searchflow.LoadingMsg:
		m.state.Loading = msg.Loading
		if msg.Loading {
			return m, tea.Batch(m.spinner.Tick, m.view.waitForEvent())
		}
		return m, m.view.waitForEvent()

	case searchflow.ClearResultsMsg:
		m.state.Rows = nil
		m.state.Downloads = models.DownloadLinks{}
		m.state.Error = ""
		m.results.SetRows(nil)
		return m, m.view.waitForEvent()

	case searchflow.ProgressMsg:
		m.state.Progress = msg.State
		return m, m.view.waitForEvent()

	case searchflow.ResultsMsg:
		m.state.Rows = msg.Rows
		m.results.SetRows(resultRows(msg.Rows))
		m.results.GotoBottom()
		return m, m.view.waitForEvent()

	case searchflow.DownloadsMsg:
		m.state.Downloads = msg.Links
		return m, m.view.waitForEvent()

	case searchflow.ErrorMsg:
		m.state.Error = msg.Message
		return m, m.view.waitForEvent()

	case searchflow.RunFinishedMsg:
		return m.finishRun(msg)

	case searchflow.CopyDoneMsg:
		if msg.Err != nil {
			m.status = renderInlineError(fmt.Errorf("copy failed: %w", msg.Err))
		} else {
			m.status = renderSuccess(msg.What + " link copied to clipboard")
		}
		return m, nil

	case searchflow.DownloadDoneMsg:
		if msg.Err != nil {
			m.status = renderInlineError(userFacingError(msg.Err))
		} else {
			m.status = renderSuccess("Saved " + strings.Join(msg.Paths, ", "))
		}
		return m, nil
	}

	if m.step == searchflow.StepInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *searchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.state.Answer(false)
		if m.state.Cancel != nil {
			m.state.Cancel()
		}
		return m, tea.Quit
	}

	// confirm modal
	if m.state.Pending != nil {
		switch key {
		case "y", "Y", "enter":
			m.state.Answer(true)
		case "n", "N", "esc":
			m.state.Answer(false)
		}
		return m, nil
	}

	switch m.step {
	case searchflow.StepInput:
		switch key {
		case "enter":
			if !m.controlsEnabled {
				return m, nil
			}
			return m, m.startRun(m.input.Value())
		case "esc":
			return m, func() tea.Msg { return MenuNavigationMsg{} }
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case searchflow.StepRunning:
		if key == "x" && m.state.Cancel != nil {
			m.state.Cancel()
			return m, nil
		}
		return m.updateTable(msg)

	case searchflow.StepDone:
		switch key {
		case "n", "enter":
			m.step = searchflow.StepInput
			m.alert = ""
			m.status = ""
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case "c":
			return m, m.copyLink("Phones CSV", m.state.Downloads.PhonesCSV)
		case "w":
			return m, m.copyLink("Websites CSV", m.state.Downloads.WebsitesCSV)
		case "d":
			return m, m.download()
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m *searchModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// startRun submits term on a background goroutine and starts listening for view events
func (m *searchModel) startRun(term string) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.alert = ""
	m.status = ""
	m.state.Reset(strings.TrimSpace(term))
	m.state.Cancel = cancel
	m.step = searchflow.StepRunning

	controller, view := m.controller, m.view
	run := func() tea.Msg {
		defer cancel()
		r, err := controller.SubmitSearch(ctx, term)
		if err != nil {
			logger.LogError(err, "search %q", term)
		}
		view.finish(r, err)
		return nil
	}

	return tea.Batch(run, view.waitForEvent())
}

func (m *searchModel) finishRun(msg searchflow.RunFinishedMsg) (tea.Model, tea.Cmd) {
	m.state.Cancel = nil
	m.state.Pending = nil
	m.state.Loading = false
	m.state.Run = msg.Run

	if msg.Run == nil {
		// declined, invalid or rejected: back to the search box
		m.step = searchflow.StepInput
		m.input.Focus()
		return m, textinput.Blink
	}

	m.step = searchflow.StepDone
	m.input.Blur()
	return m, nil
}

func (m *searchModel) copyLink(what, link string) tea.Cmd {
	if link == "" {
		m.status = renderInlineWarning("No " + what + " link available")
		return nil
	}
	url := m.api.ResolveURL(link)
	return func() tea.Msg {
		return searchflow.CopyDoneMsg{What: what, Err: copyToClipboard(url)}
	}
}

func (m *searchModel) download() tea.Cmd {
	links := m.state.Downloads
	if links.Empty() {
		m.status = renderInlineWarning("No download links available")
		return nil
	}
	m.status = infoStyle.Render("Downloading...")

	ctx, api, dir := m.ctx, m.api, m.downloadDir
	return func() tea.Msg {
		var paths []string
		for _, link := range []string{links.WebsitesCSV, links.PhonesCSV} {
			if link == "" {
				continue
			}
			path, err := api.DownloadTo(ctx, link, dir)
			if err != nil {
				return searchflow.DownloadDoneMsg{Paths: paths, Err: err}
			}
			paths = append(paths, path)
		}
		return searchflow.DownloadDoneMsg{Paths: paths}
	}
}

func (m *searchModel) resize(width int) {
	if width <= 0 {
		width = searchflow.DefaultWidth
	}
	m.width = width
	m.bar.Width = min(width-10, 80)
	m.input.Width = min(width-12, 80)
	m.results.SetColumns(resultColumns(width))
	m.results.SetWidth(width - 2)
}

func (m *searchModel) View() string {
	var b strings.Builder

	b.WriteString(fieldLabelStyle.Render("Search:"))
	b.WriteString(" " + m.input.View() + "\n")
	if m.alert != "" {
		b.WriteString(renderInlineWarning(m.alert) + "\n")
	}
	b.WriteString("\n")

	if m.step != searchflow.StepInput || m.state.Run != nil {
		b.WriteString(m.renderProgress())
	}

	if m.state.Pending != nil {
		b.WriteString(renderConfirmModal(m.state.Pending.Title, m.state.Pending.Message, m.width))
		b.WriteString("\n")
	}

	if len(m.state.Rows) > 0 {
		b.WriteString(m.results.View())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d business(es), %d with a phone number",
			len(m.state.Rows), models.CountPhones(m.state.Rows))))
		b.WriteString("\n")
	} else if m.step == searchflow.StepDone && m.state.Error == "" {
		b.WriteString(mutedStyle.Render("No results found.") + "\n")
	}

	if !m.state.Downloads.Empty() {
		b.WriteString("\n")
		b.WriteString(renderDownloads(m.state.Downloads, m.api.ResolveURL))
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.hint()))
	return b.String()
}

func (m *searchModel) renderProgress() string {
	var b strings.Builder
	p := m.state.Progress

	if m.state.Loading {
		b.WriteString(m.spinner.View() + " ")
	}
	b.WriteString(m.bar.ViewAs(float64(p.Percent) / 100))
	b.WriteString("\n")
	b.WriteString(progressStyle(p.Level).Render(p.Message))
	b.WriteString("\n")
	if p.ETA != nil {
		b.WriteString(mutedStyle.Render("Estimated time remaining: " + jobs.FormatETA(*p.ETA)))
		b.WriteString("\n")
	}
	if m.state.Error != "" && p.Level != models.LevelError {
		b.WriteString(renderError(m.state.Error) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m *searchModel) hint() string {
	switch {
	case m.state.Pending != nil:
		return "[y] Continue  [n] Stop"
	case m.step == searchflow.StepInput:
		return "[Enter] Start scraping  [Esc] Menu"
	case m.step == searchflow.StepRunning:
		return "[x] Cancel  [↑/↓] Scroll results"
	default:
		return "[c] Copy phones link  [w] Copy websites link  [d] Download CSVs  [n] New search"
	}
}

func resultColumns(width int) []table.Column {
	// #, phone and padding take a fixed share; name and website split the rest
	rest := max(width-4-18-10, 30)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Business Name", Width: rest / 2},
		{Title: "Website", Width: rest - rest/2},
		{Title: "Phone", Width: 18},
	}
}

func resultRows(rows []models.Business) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{fmt.Sprintf("%d", i+1), r.BusinessName, naIfEmpty(r.Website), naIfEmpty(r.Phone)}
	}
	return out
}

func naIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NotAvailable
	}
	return s
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(colorPrimary).
		Bold(false)
	return s
}
