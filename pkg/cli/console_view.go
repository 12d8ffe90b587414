package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"mapphone-go/pkg/cli/format"
	"mapphone-go/pkg/jobs"
	"mapphone-go/pkg/models"
)

// consoleView renders a job run as plain lines and asks confirmations on the terminal
type consoleView struct {
	out     io.Writer
	lines   chan string
	yes     bool
	resolve func(string) string

	mu        sync.Mutex
	rows      []models.Business
	downloads models.DownloadLinks
	lastLine  string
}

var _ jobs.View = (*consoleView)(nil)

// newConsoleView reads answers from in. With yes set every confirmation is accepted
// without reading input.
func newConsoleView(in io.Reader, out io.Writer, yes bool, resolve func(string) string) *consoleView {
	v := &consoleView{out: out, yes: yes, resolve: resolve}
	if !yes {
		v.lines = make(chan string)
		go func() {
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				v.lines <- scanner.Text()
			}
			close(v.lines)
		}()
	}
	return v
}

func (v *consoleView) Alert(message string) {
	fmt.Fprintf(v.out, "⚠️  %s\n", message)
}

func (v *consoleView) Confirm(ctx context.Context, title, message string) (bool, error) {
	fmt.Fprintf(v.out, "\n%s\n%s\n", title, message)
	if v.yes {
		fmt.Fprintln(v.out, "Continue? [y/N]: y (auto)")
		return true, nil
	}

	fmt.Fprint(v.out, "Continue? [y/N]: ")
	select {
	case <-ctx.Done():
		fmt.Fprintln(v.out)
		return false, ctx.Err()
	case line, ok := <-v.lines:
		if !ok {
			fmt.Fprintln(v.out)
			return false, io.EOF
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}

func (v *consoleView) SetControlsEnabled(enabled bool) {}

func (v *consoleView) SetLoading(loading bool) {
	if loading {
		fmt.Fprintln(v.out, "⏳ Working...")
	}
}

func (v *consoleView) ClearResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = nil
	v.downloads = models.DownloadLinks{}
}

func (v *consoleView) SetProgress(p models.ProgressState) {
	line := fmt.Sprintf("[%3d%%] %s", p.Percent, p.Message)
	if p.ETA != nil {
		line += fmt.Sprintf(" (ETA %s)", jobs.FormatETA(*p.ETA))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// a poll capped at 95% keeps reporting the same line
	if line == v.lastLine {
		return
	}
	v.lastLine = line
	fmt.Fprintln(v.out, line)
}

func (v *consoleView) RenderResults(rows []models.Business) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = append([]models.Business(nil), rows...)
	fmt.Fprintf(v.out, "      %d result(s) so far\n", len(rows))
}

func (v *consoleView) ShowDownloads(links models.DownloadLinks) {
	v.mu.Lock()
	v.downloads = links
	v.mu.Unlock()

	fmt.Fprintln(v.out, "\nDownloads:")
	if links.WebsitesCSV != "" {
		fmt.Fprintf(v.out, "  Websites CSV: %s\n", v.resolve(links.WebsitesCSV))
	}
	if links.PhonesCSV != "" {
		fmt.Fprintf(v.out, "  Phones CSV:   %s\n", v.resolve(links.PhonesCSV))
	}
}

func (v *consoleView) ShowError(message string) {
	fmt.Fprintf(v.out, "❌ Error: %s\n", message)
}

// Results returns the last rendered rows
func (v *consoleView) Results() []models.Business {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows
}

// printResults writes the final results table
func (v *consoleView) printResults() {
	fmt.Fprintln(v.out)
	fmt.Fprint(v.out, format.FormatResultsTable(v.Results()))
}
