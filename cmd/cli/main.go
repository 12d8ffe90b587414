package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mapphone-go/pkg/cli"
	"mapphone-go/pkg/cli/logger"
	"mapphone-go/pkg/config"
)

func main() {
	var (
		searchTerm = flag.String("search", "", "Run a search on the terminal without the TUI")
		yes        = flag.Bool("yes", false, "Accept every confirmation (with --search)")
		protocol   = flag.String("protocol", "", "Override the job protocol: batch or poll")
		download   = flag.Bool("download", false, "Download both CSVs after a completed search")
		history    = flag.Bool("history", false, "List recorded runs")
		limit      = flag.Int("limit", 20, "Number of runs to list (with --history)")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := cli.NewApp(cfg)
	defer app.Close()

	// Handle config commands first (don't need database)
	if *configShow {
		app.ShowConfig()
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			log.Fatalf("failed to set config: %v", err)
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *history {
		if err := app.ShowHistory(ctx, *limit); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Run history is optional: a bad database URL only disables recording
	if _, err := app.ConnectDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history disabled: %v\n", err)
	}

	if *searchTerm != "" || *yes || *download {
		if err := logger.Init(cfg.CLI.LogDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		defer logger.CloseLog()

		err := app.Search(ctx, *searchTerm, cli.SearchOptions{
			Yes:      *yes,
			Protocol: *protocol,
			Download: *download,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive TUI mode
	if err := app.Run(ctx, *protocol); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
