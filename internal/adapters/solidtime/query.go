package solidtime

import (
	"context"
	"fmt"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/bnema/wakasync/internal/ports"
)

// Query reads managed projects and entries from Solidtime. Projects and
// entries without a bracketed identifier tag belong to somebody else and are
// skipped, as are in-progress entries (end == null).
type Query struct {
	client *Client

	// memoized for the lifetime of one run; the query side is consulted
	// before any project gets created, so this never goes stale mid-run.
	projects []domain.RemoteProject
}

var _ ports.RemoteQuery = (*Query)(nil)

func NewQuery(client *Client) *Query {
	return &Query{client: client}
}

func (q *Query) Projects(ctx context.Context) ([]domain.RemoteProject, error) {
	if q.projects != nil {
		return q.projects, nil
	}

	apiProjects, err := q.client.listProjects(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.RemoteProject, 0, len(apiProjects))
	for _, p := range apiProjects {
		identifier, name, ok := domain.ParseTag(p.Name)
		if !ok {
			continue
		}
		projects = append(projects, domain.RemoteProject{
			ID:      p.ID,
			Project: domain.Project{Identifier: identifier, DisplayName: name},
		})
	}

	q.projects = projects

	return projects, nil
}

func (q *Query) Entries(ctx context.Context, timeRange domain.TimeRange) ([]domain.Session, error) {
	apiEntries, err := q.client.listTimeEntries(ctx, timeRange)
	if err != nil {
		return nil, err
	}

	projects, err := q.Projects(ctx)
	if err != nil {
		return nil, err
	}
	projectsByID := make(map[string]domain.RemoteProject, len(projects))
	for _, p := range projects {
		projectsByID[p.ID] = p
	}

	sessions := make([]domain.Session, 0, len(apiEntries))
	for _, entry := range apiEntries {
		session, ok, err := sessionFromEntry(entry, projectsByID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func sessionFromEntry(entry apiEntry, projectsByID map[string]domain.RemoteProject) (domain.Session, bool, error) {
	if entry.End == nil {
		return domain.Session{}, false, nil
	}
	if entry.ProjectID == nil {
		return domain.Session{}, false, nil
	}
	project, managed := projectsByID[*entry.ProjectID]
	if !managed {
		return domain.Session{}, false, nil
	}

	description := ""
	if entry.Description != nil {
		description = *entry.Description
	}
	identifier, name, ok := domain.ParseTag(description)
	if !ok {
		return domain.Session{}, false, nil
	}

	start, err := parseAPITime(entry.Start)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("entry %s: parse start: %w", entry.ID, err)
	}
	end, err := parseAPITime(*entry.End)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("entry %s: parse end: %w", entry.ID, err)
	}

	timeRange, err := domain.NewTimeRange(start, end)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("entry %s: %w", entry.ID, err)
	}

	return domain.Session{
		Project:     project.Project,
		TimeRange:   timeRange,
		Identifier:  identifier,
		DisplayName: name,
	}, true, nil
}
