package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"mapphone-go/pkg/cli/client"
	"mapphone-go/pkg/cli/logger"
	"mapphone-go/pkg/cli/tui"
	"mapphone-go/pkg/config"
	"mapphone-go/pkg/db"
	"mapphone-go/pkg/jobs"
	"mapphone-go/pkg/models"
	"mapphone-go/pkg/utils"

	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	cfg    *config.Config
	client *client.Client
	db     *db.DB

	in  io.Reader
	out io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
		in:  os.Stdin,
		out: os.Stdout,
	}
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	baseURL, err := utils.ValidateBaseURL(a.cfg.CLI.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("API base URL not configured: %w", err)
	}

	a.client = client.NewClient(baseURL)
	return a.client, nil
}

// ConnectDB opens the run history database. It returns nil without error
// when no database URL is configured.
func (a *App) ConnectDB(ctx context.Context) (*db.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.cfg.Database.URL == "" {
		return nil, nil
	}

	database, err := db.New(ctx, a.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	a.db = database
	return a.db, nil
}

// Close releases the database connection if one was opened
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

// controllerOptions builds controller options from config, with protocol
// overriding the configured one when set
func (a *App) controllerOptions(protocol string) (jobs.Options, error) {
	if protocol == "" {
		protocol = a.cfg.CLI.Protocol
	}
	p, ok := models.ParseProtocol(protocol)
	if !ok {
		return jobs.Options{}, fmt.Errorf("unknown protocol %q (expected batch or poll)", protocol)
	}

	opts := jobs.Options{
		Protocol:       p,
		PollInterval:   a.cfg.PollInterval(),
		PollTimeout:    a.cfg.PollTimeout(),
		BatchSize:      a.cfg.CLI.BatchSize,
		RequestTimeout: a.cfg.RequestTimeout(),
	}
	if a.db != nil {
		opts.Recorder = a.db
	}
	return opts, nil
}

// Run launches the interactive TUI. protocol overrides cli.protocol when set.
func (a *App) Run(ctx context.Context, protocol string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	opts, err := a.controllerOptions(protocol)
	if err != nil {
		return err
	}

	if err := logger.Init(a.cfg.CLI.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer logger.CloseLog()

	var history tui.HistoryStore
	if a.db != nil {
		history = a.db
	}

	root := tui.NewRootModel(ctx, tui.Deps{
		Client:      apiClient,
		Options:     opts,
		History:     history,
		DownloadDir: a.cfg.CLI.DownloadDir,
	})
	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
