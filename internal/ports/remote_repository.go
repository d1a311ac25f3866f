package ports

import (
	"context"

	"github.com/bnema/wakasync/internal/domain"
)

// RemoteQuery reads the current state of the remote time-tracking system.
// Entries without a parseable identifier tag and in-progress entries are
// filtered out by implementations; callers only ever see managed sessions.
type RemoteQuery interface {
	Projects(ctx context.Context) ([]domain.RemoteProject, error)
	Entries(ctx context.Context, timeRange domain.TimeRange) ([]domain.Session, error)
}

// RemoteMutator creates projects and entries remotely. The interface itself
// is not idempotent; idempotence is the caller's responsibility via the
// identifier mechanism.
type RemoteMutator interface {
	CreateProject(ctx context.Context, project domain.Project) (domain.RemoteProject, error)
	CreateEntry(ctx context.Context, session domain.Session, projectID string) error
}
