package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// RootMenuHelpContent returns help for root menu
func RootMenuHelpContent() string {
	items := []HelpItem{
		{"1", "New search"},
		{"2", "Run history (when a database is configured)"},
		{"q / Esc", "Quit"},
	}
	return renderHelpItems(items)
}

// SearchHelpContent returns help for the search screen
func SearchHelpContent() string {
	items := []HelpItem{
		{"Enter", "Start scraping the search term"},
		{"y / n", "Answer a confirmation"},
		{"x", "Cancel the running job"},
		{"↑ / ↓", "Scroll results"},
		{"c / w", "Copy the phones / websites CSV link"},
		{"d", "Download both CSVs"},
		{"n", "New search"},
		{"m", "Return to menu"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// HistoryHelpContent returns help for the run history screen
func HistoryHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Select a run"},
		{"r", "Reload"},
		{"m", "Return to menu"},
		{"q", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	for _, item := range items {
		keyStyle := boldStyle.Foreground(colorPrimary)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
