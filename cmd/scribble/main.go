package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"scribble/internal/adapters/editor"
	"scribble/internal/adapters/export"
	"scribble/internal/adapters/storage"
	"scribble/internal/adapters/tui"
	"scribble/internal/app"
	"scribble/internal/config"
)

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New(store, export.NewExchange(), editor.NewOpener(cfg.Editor))
	model := tui.NewModel(a, cfg.Preview)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Best-effort save at shutdown: report failures but still exit.
	if err := a.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save notebook: %v\n", err)
	}
}
