package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the session in the terminal until the user quits. The session's
// view must be ctrl.
func Run(ctx context.Context, actions Actions, ctrl *Controller, opts Options, programOpts ...tea.ProgramOption) error {
	defer ctrl.Close()
	model := NewModel(ctx, ctrl.Events(), actions, opts)
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	_, err := tea.NewProgram(model, programOpts...).Run()
	return err
}
