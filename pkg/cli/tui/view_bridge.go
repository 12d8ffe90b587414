package tui

import (
	"context"

	"mapphone-go/pkg/cli/tui/searchflow"
	"mapphone-go/pkg/jobs"
	"mapphone-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// teaView forwards controller calls from the job goroutine to the Bubble Tea
// loop as messages. Sends are abandoned once done is closed.
type teaView struct {
	events chan tea.Msg
	done   <-chan struct{}
}

var _ jobs.View = (*teaView)(nil)

func newTeaView(done <-chan struct{}) *teaView {
	return &teaView{
		events: make(chan tea.Msg, 64),
		done:   done,
	}
}

func (v *teaView) send(msg tea.Msg) {
	select {
	case v.events <- msg:
	case <-v.done:
	}
}

// waitForEvent blocks until the job goroutine emits the next message
func (v *teaView) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-v.events:
			return msg
		case <-v.done:
			return nil
		}
	}
}

func (v *teaView) Alert(message string) {
	v.send(searchflow.AlertMsg{Message: message})
}

func (v *teaView) Confirm(ctx context.Context, title, message string) (bool, error) {
	reply := make(chan bool, 1)
	v.send(searchflow.ConfirmRequestMsg{Title: title, Message: message, Reply: reply})

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (v *teaView) SetControlsEnabled(enabled bool) {
	v.send(searchflow.ControlsMsg{Enabled: enabled})
}

func (v *teaView) SetLoading(loading bool) {
	v.send(searchflow.LoadingMsg{Loading: loading})
}

func (v *teaView) ClearResults() {
	v.send(searchflow.ClearResultsMsg{})
}

func (v *teaView) SetProgress(p models.ProgressState) {
	v.send(searchflow.ProgressMsg{State: p})
}

func (v *teaView) RenderResults(rows []models.Business) {
	v.send(searchflow.ResultsMsg{Rows: append([]models.Business(nil), rows...)})
}

func (v *teaView) ShowDownloads(links models.DownloadLinks) {
	v.send(searchflow.DownloadsMsg{Links: links})
}

func (v *teaView) ShowError(message string) {
	v.send(searchflow.ErrorMsg{Message: message})
}

// finish emits the terminal message of a run
func (v *teaView) finish(run *models.JobRun, err error) {
	v.send(searchflow.RunFinishedMsg{Run: run, Err: err})
}
