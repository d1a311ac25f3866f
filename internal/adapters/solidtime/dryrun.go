package solidtime

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/bnema/wakasync/internal/ports"
)

// DryRunMutator logs every intended write and performs none. Project IDs are
// synthesized so the export pipeline runs end to end.
type DryRunMutator struct {
	out        io.Writer
	projectSeq int
}

var _ ports.RemoteMutator = (*DryRunMutator)(nil)

func NewDryRunMutator(out io.Writer) *DryRunMutator {
	if out == nil {
		out = io.Discard
	}

	return &DryRunMutator{out: out}
}

func (m *DryRunMutator) CreateProject(_ context.Context, project domain.Project) (domain.RemoteProject, error) {
	m.projectSeq++
	id := fmt.Sprintf("dry-run-project-%d", m.projectSeq)

	fmt.Fprintf(m.out, "dry-run: would create project %q\n", domain.FormatTag(project.Identifier, project.DisplayName))

	return domain.RemoteProject{ID: id, Project: project}, nil
}

func (m *DryRunMutator) CreateEntry(_ context.Context, session domain.Session, projectID string) error {
	fmt.Fprintf(m.out, "dry-run: would create entry [%s] %s | %s | %s (project %s)\n",
		session.Identifier, session.TimeRange.Format(), session.TimeRange.FormatDuration(), session.DisplayName, projectID)

	return nil
}
