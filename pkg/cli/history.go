package cli

import (
	"context"
	"fmt"

	"mapphone-go/pkg/cli/format"
)

// ShowHistory prints the most recent recorded runs
func (a *App) ShowHistory(ctx context.Context, limit int) error {
	database, err := a.ConnectDB(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if database == nil {
		return fmt.Errorf("run history is disabled: set database.url or DATABASE_URL")
	}

	runs, err := database.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, format.FormatRunsTable(runs))
	return nil
}
