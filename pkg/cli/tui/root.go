package tui

import (
	"context"
	"strings"

	"mapphone-go/pkg/jobs"

	tea "github.com/charmbracelet/bubbletea"
)

// MenuNavigationMsg returns control from a flow to the root menu
type MenuNavigationMsg struct{}

// Deps are the shared dependencies of every flow
type Deps struct {
	Client      API
	Options     jobs.Options
	History     HistoryStore // nil disables the history screen
	DownloadDir string
}

// rootModel is the Bubble Tea model that acts as an app shell for multiple flows.
// It presents a simple menu and then hands control to a specific flow model.
type rootModel struct {
	ctx  context.Context
	deps Deps

	// search is kept across menu visits so the last results stay on screen
	search tea.Model

	// Current active flow (when nil, we are in the main menu)
	current  tea.Model
	showHelp bool
	width    int
	height   int
}

// NewRootModel constructs the root app-shell model that can launch multiple flows.
func NewRootModel(ctx context.Context, deps Deps) tea.Model {
	return &rootModel{ctx: ctx, deps: deps}
}

func (m *rootModel) Init() tea.Cmd {
	// No async work on start; just render the menu.
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}

	if _, ok := msg.(MenuNavigationMsg); ok {
		m.current = nil
		return m, nil
	}

	// If we have an active flow, delegate all messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if handleQuitKeys(key) {
			return m, tea.Quit
		}

		switch key {
		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "1":
			if m.search == nil {
				m.search = NewSearchModel(m.ctx, m.deps.Client, m.deps.Options, m.deps.DownloadDir)
			}
			return m, m.enter(m.search)

		case "2":
			if m.deps.History == nil {
				return m, nil
			}
			return m, m.enter(NewHistoryModel(m.ctx, m.deps.History))
		}
	}

	return m, nil
}

// enter makes flow current and replays the last window size to it
func (m *rootModel) enter(flow tea.Model) tea.Cmd {
	m.current = flow
	cmds := []tea.Cmd{flow.Init()}
	if m.width > 0 {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *rootModel) View() string {
	// When a flow is active, defer to its view.
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder

	b.WriteString(renderTitle("MapPhone Extractor"))
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Select an action:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " New search\n")
	if m.deps.History != nil {
		b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Run history\n")
	} else {
		b.WriteString("  " + mutedStyle.Render("2) Run history (set database.url to enable)") + "\n")
	}
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(RootMenuHelpContent() + "\n")
	}
	b.WriteString(helpStyle.Render("Press the number of an option, '?' for help, or 'q' / Esc to quit.") + "\n")

	return b.String()
}
