package searchflow

import "mapphone-go/pkg/models"

// AlertMsg carries a local validation message
type AlertMsg struct {
	Message string
}

// ConfirmRequestMsg asks the user a yes/no question; the answer goes to Reply
type ConfirmRequestMsg struct {
	Title   string
	Message string
	Reply   chan<- bool
}

// ControlsMsg enables or disables the search input
type ControlsMsg struct {
	Enabled bool
}

// LoadingMsg toggles the spinner
type LoadingMsg struct {
	Loading bool
}

// ClearResultsMsg empties the results table and download links
type ClearResultsMsg struct{}

// ProgressMsg replaces the progress panel
type ProgressMsg struct {
	State models.ProgressState
}

// ResultsMsg replaces the rendered result rows
type ResultsMsg struct {
	Rows []models.Business
}

// DownloadsMsg shows the CSV links of a completed job
type DownloadsMsg struct {
	Links models.DownloadLinks
}

// ErrorMsg shows a failure
type ErrorMsg struct {
	Message string
}

// RunFinishedMsg is the last message of a run
type RunFinishedMsg struct {
	Run *models.JobRun
	Err error
}

// DownloadDoneMsg is emitted when both CSVs have been saved
type DownloadDoneMsg struct {
	Paths []string
	Err   error
}

// CopyDoneMsg is emitted after a link was copied to the clipboard
type CopyDoneMsg struct {
	What string
	Err  error
}
