package solidtime

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/bnema/wakasync/internal/ports"
)

// Mutator creates projects and time entries in Solidtime. Created names and
// descriptions carry the bracketed identifier tag so later runs can recognize
// them.
type Mutator struct {
	client *Client
	out    io.Writer
}

var _ ports.RemoteMutator = (*Mutator)(nil)

func NewMutator(client *Client, out io.Writer) *Mutator {
	if out == nil {
		out = io.Discard
	}

	return &Mutator{client: client, out: out}
}

func (m *Mutator) CreateProject(ctx context.Context, project domain.Project) (domain.RemoteProject, error) {
	created, err := m.client.createProject(ctx, domain.FormatTag(project.Identifier, project.DisplayName))
	if err != nil {
		return domain.RemoteProject{}, err
	}

	fmt.Fprintf(m.out, "created project %q (%s)\n", project.DisplayName, created.ID)

	return domain.RemoteProject{ID: created.ID, Project: project}, nil
}

func (m *Mutator) CreateEntry(ctx context.Context, session domain.Session, projectID string) error {
	created, err := m.client.createTimeEntry(ctx,
		session.TimeRange.From,
		session.TimeRange.To,
		domain.FormatTag(session.Identifier, session.DisplayName),
		projectID,
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "created entry [%s] %s | %s (%s)\n",
		session.Identifier, session.TimeRange.Format(), session.TimeRange.FormatDuration(), created.ID)

	return nil
}
