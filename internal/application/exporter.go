package application

import (
	"context"
	"fmt"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/bnema/wakasync/internal/ports"
)

// Exporter runs one export pass: aggregate local heartbeats into sessions,
// diff them against the remote system's entries for the same window, and push
// whatever is missing. Re-running over the same data is a no-op because
// session identifiers round-trip through the remote entry descriptions.
type Exporter struct {
	source  ports.HeartbeatSource
	remote  ports.RemoteQuery
	mutator ports.RemoteMutator
	options domain.AggregateOptions
}

func NewExporter(source ports.HeartbeatSource, remote ports.RemoteQuery, mutator ports.RemoteMutator, options domain.AggregateOptions) *Exporter {
	return &Exporter{
		source:  source,
		remote:  remote,
		mutator: mutator,
		options: options,
	}
}

// ExportResult captures what one run saw and did. With a dry-run mutator
// wired in, Pushed lists what would have been created.
type ExportResult struct {
	Input           domain.Report
	Remote          domain.Report
	Pushed          []domain.Session
	Skipped         []domain.Session
	CreatedProjects []domain.Project
}

// Run executes the full export. Input aggregation completes before any output
// reconciliation; pending entries are created one at a time in chronological
// order. Any failure aborts the run with the error surfaced.
func (e *Exporter) Run(ctx context.Context, timeRange domain.TimeRange) (ExportResult, error) {
	heartbeats, err := e.source.Heartbeats(ctx, timeRange)
	if err != nil {
		return ExportResult{}, fmt.Errorf("read heartbeats: %w", err)
	}

	sessions, err := domain.AggregateSessions(heartbeats, e.options)
	if err != nil {
		return ExportResult{}, fmt.Errorf("aggregate heartbeats: %w", err)
	}

	input, err := domain.NewReport(timeRange, sessions)
	if err != nil {
		return ExportResult{}, fmt.Errorf("build input report: %w", err)
	}

	remoteSessions, err := e.remote.Entries(ctx, timeRange)
	if err != nil {
		return ExportResult{}, fmt.Errorf("fetch remote entries: %w", err)
	}

	remote, err := domain.NewObservedReport(timeRange, remoteSessions)
	if err != nil {
		return ExportResult{}, fmt.Errorf("build remote report: %w", err)
	}

	result := ExportResult{Input: input, Remote: remote}

	var pending []domain.Session
	for _, session := range input.Sessions() {
		if _, exported := remote.Entries[session.Identifier]; exported {
			result.Skipped = append(result.Skipped, session)
			continue
		}
		pending = append(pending, session)
	}

	if len(pending) == 0 {
		return result, nil
	}

	// Project existence cache for this run only; seeded from the remote
	// source of truth, extended as projects get created.
	remoteProjects, err := e.remote.Projects(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list remote projects: %w", err)
	}

	projectsByIdentifier := make(map[string]domain.RemoteProject, len(remoteProjects))
	for _, project := range remoteProjects {
		projectsByIdentifier[project.Identifier] = project
	}

	for _, session := range pending {
		project, found := projectsByIdentifier[session.Project.Identifier]
		if !found {
			project, err = e.mutator.CreateProject(ctx, session.Project)
			if err != nil {
				return ExportResult{}, fmt.Errorf("create project %q: %w", session.Project.DisplayName, err)
			}
			projectsByIdentifier[session.Project.Identifier] = project
			result.CreatedProjects = append(result.CreatedProjects, session.Project)
		}

		if err := e.mutator.CreateEntry(ctx, session, project.ID); err != nil {
			return ExportResult{}, fmt.Errorf("create entry %q for project %q: %w", session.Identifier, session.Project.DisplayName, err)
		}
		result.Pushed = append(result.Pushed, session)
	}

	return result, nil
}
