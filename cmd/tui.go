package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/desertthunder/replay/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive replay browser.
//
// Logging is redirected to a file so structured output does not corrupt
// the alternate screen.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureAuthorized(ctx, cmd); err != nil {
		return err
	}

	logger, err := shared.NewFileLogger("replay_tui.log")
	if err != nil {
		return err
	}
	r.SetLogger(logger)

	model := ui.NewModel(ctx, r.engine)
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err = program.Run()
	return err
}
