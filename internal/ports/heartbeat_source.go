package ports

import (
	"context"

	"github.com/bnema/wakasync/internal/domain"
)

// HeartbeatSource is the read-only query interface over the local
// time-tracking event log. It is never mutated.
type HeartbeatSource interface {
	Heartbeats(ctx context.Context, timeRange domain.TimeRange) ([]domain.Heartbeat, error)
	Projects(ctx context.Context, timeRange domain.TimeRange) ([]string, error)
	Close() error
}
