package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/schoolreg/internal/api"
	"github.com/jask/schoolreg/internal/config"
	"github.com/jask/schoolreg/internal/logging"
	"github.com/jask/schoolreg/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client := api.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout, logger)

	p := tea.NewProgram(tui.New(ctx, cfg, client, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
