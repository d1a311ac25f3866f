package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	project lipgloss.Style
	detail  lipgloss.Style
	meta    lipgloss.Style
	pushed  lipgloss.Style
	skipped lipgloss.Style
	dryRun  lipgloss.Style
	empty   lipgloss.Style
	section lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		project: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		pushed:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		skipped: lipgloss.NewStyle().Faint(true),
		dryRun:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		empty:   lipgloss.NewStyle().Faint(true),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}
