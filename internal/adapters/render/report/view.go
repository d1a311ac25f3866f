// Package report renders the outcome of an export run for the terminal.
package report

import (
	"fmt"
	"time"

	"github.com/bnema/wakasync/internal/application"
	"github.com/bnema/wakasync/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	DryRun bool
}

func Render(result application.ExportResult, opts RenderOptions) string {
	return renderView(result, opts, newStyles())
}

func renderView(result application.ExportResult, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Wakapi → Solidtime export"),
		s.header.Render(fmt.Sprintf("window: %s", result.Input.TimeRange.Format())),
		s.header.Render(fmt.Sprintf("sessions: %d tracked, %d already exported, %d %s",
			len(result.Input.Entries), len(result.Skipped), len(result.Pushed), pushedLabel(opts))),
	}

	if opts.DryRun {
		lines = append(lines, s.dryRun.Render("dry run: no changes were made"))
	}

	if len(result.Input.Entries) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No sessions found in the export window.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	body := make([]string, 0, len(result.Input.Entries)+2)
	for _, session := range result.Input.Sessions() {
		body = append(body, renderSession(session, result, s))
	}
	body = append(body, s.meta.Render(fmt.Sprintf("total tracked: %s", formatDuration(result.Input.TotalDuration()))))
	if len(result.CreatedProjects) > 0 {
		body = append(body, s.meta.Render(fmt.Sprintf("projects created: %d", len(result.CreatedProjects))))
	}

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session domain.Session, result application.ExportResult, s styles) string {
	marker := s.pushed.Render("+")
	if _, exported := result.Remote.Entries[session.Identifier]; exported {
		marker = s.skipped.Render("=")
	}

	return fmt.Sprintf("%s %s %s %s %s",
		marker,
		s.detail.Render(session.TimeRange.Format()),
		s.meta.Render(session.TimeRange.RoundToQuarterHour().FormatDuration()),
		s.project.Render(session.Project.DisplayName),
		s.meta.Render("["+session.Identifier+"]"),
	)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func pushedLabel(opts RenderOptions) string {
	if opts.DryRun {
		return "to create"
	}

	return "created"
}
