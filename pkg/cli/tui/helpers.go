package tui

import (
	"errors"
	"fmt"
	"strings"

	"mapphone-go/pkg/cli/client"
	"mapphone-go/pkg/models"
)

// renderErrorView renders a standard error view
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		helpStyle.Render("Press 'm' for the menu or 'q' to quit.") + "\n"
}

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n\n" +
		helpStyle.Render("Press 'm' for the menu or 'q' to quit.") + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// renderConfirmModal renders a yes/no question in a bordered box
func renderConfirmModal(title, message string, width int) string {
	inner := max(min(width-8, 72), 30)
	body := boldStyle.Render(title) + "\n\n" +
		wrapText(message, inner, "") + "\n" +
		selectedMarkerStyle.Render("[y]") + " Yes   " + selectedMarkerStyle.Render("[n]") + " No"
	return modalStyle.Render(body) + "\n"
}

// renderDownloads renders both CSV links, resolved to absolute URLs
func renderDownloads(links models.DownloadLinks, resolve func(string) string) string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("Downloads") + "\n")
	if links.WebsitesCSV != "" {
		b.WriteString(linkLabelStyle.Render("  Websites CSV: "))
		b.WriteString(linkURLStyle.Render(resolve(links.WebsitesCSV)) + "\n")
	}
	if links.PhonesCSV != "" {
		b.WriteString(linkLabelStyle.Render("  Phones CSV:   "))
		b.WriteString(linkURLStyle.Render(resolve(links.PhonesCSV)) + "\n")
	}
	return b.String()
}

// wrapText wraps text to a specified width, breaking at word boundaries
func wrapText(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + "\n"
	}

	var b strings.Builder
	line := ""
	for _, word := range words {
		if line != "" && len(line)+len(word)+1 > width {
			b.WriteString(fmt.Sprintf("%s%s\n", indent, line))
			line = word
		} else {
			if line != "" {
				line += " "
			}
			line += word
		}
	}
	if line != "" {
		b.WriteString(fmt.Sprintf("%s%s\n", indent, line))
	}
	return b.String()
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}

// handleQuitKeys checks if a key should quit the current view
func handleQuitKeys(key string) bool {
	switch key {
	case "ctrl+c", "q", "esc":
		return true
	}
	return false
}

// renderInlineError renders an error message inline (without full error view formatting)
func renderInlineError(err error) string {
	if err == nil {
		return ""
	}
	return renderError(err.Error())
}

// renderInlineWarning renders a warning message inline (without full warning view formatting)
func renderInlineWarning(message string) string {
	return renderWarning(message)
}

// userFacingError converts structured client errors into friendly messages,
// while leaving other error types unchanged.
func userFacingError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.UserMessage())
	}

	return err
}
