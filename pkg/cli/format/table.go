package format

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"mapphone-go/pkg/models"
)

// FormatResultsTable renders result rows as an aligned table
func FormatResultsTable(rows []models.Business) string {
	if len(rows) == 0 {
		return "No results found.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tBusiness Name\tWebsite\tPhone")
	fmt.Fprintln(w, strings.Repeat("─", 4)+"\t"+strings.Repeat("─", 40)+"\t"+strings.Repeat("─", 40)+"\t"+strings.Repeat("─", 16))

	for i, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i+1,
			Truncate(orNA(row.BusinessName), 40),
			Truncate(orNA(row.Website), 40),
			orNA(row.Phone),
		)
	}

	w.Flush()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d business(es), %d with a phone number\n", len(rows), models.CountPhones(rows)))

	return b.String()
}

// FormatRunsTable renders recorded runs, most recent first
func FormatRunsTable(runs []models.JobRun) string {
	if len(runs) == 0 {
		return "No runs recorded yet.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSearch\tProtocol\tStatus\tRows\tBatches\tStarted\tDuration")
	fmt.Fprintln(w, "───\t───\t───\t───\t───\t───\t───\t───")

	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			Truncate(run.SearchTerm, 40),
			run.Protocol,
			run.Status,
			run.ResultRows,
			run.Batches,
			FormatDate(run.StartedAt),
			FormatDuration(run.Duration()),
		)
	}

	w.Flush()
	b.WriteString(fmt.Sprintf("\nTotal: %d run(s)\n", len(runs)))

	return b.String()
}

// FormatErrorMessage formats an error message consistently
func FormatErrorMessage(err error) string {
	return fmt.Sprintf("❌ Error: %v\n", err)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NotAvailable
	}
	return s
}
