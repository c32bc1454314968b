package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"briefing/internal/config"
	"briefing/internal/datasource"
	"briefing/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	static := flag.Bool("static", cfg.StaticMode, "read from the snapshot instead of the live backend")
	flag.Parse()
	cfg.StaticMode = *static

	// The terminal is owned by the TUI; logs would corrupt the screen.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := datasource.NewFromConfig(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create data source: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(tui.NewModel(ctx, src), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
