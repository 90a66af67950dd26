package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	timer    lipgloss.Style
	prompt   lipgloss.Style
	cursor   lipgloss.Style
	chosen   lipgloss.Style
	muted    lipgloss.Style
	result   lipgloss.Style
	errorMsg lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		timer:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		prompt:   lipgloss.NewStyle().Bold(true),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		chosen:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		result:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")).Padding(1, 2),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
