package domain

import (
	"fmt"
	"sort"
	"time"
)

// DefaultGap is the inactivity threshold that ends a session: two heartbeats
// on the same project further apart than this belong to different sessions.
const DefaultGap = 15 * time.Minute

// AggregateOptions tune the heartbeat-to-session grouping.
type AggregateOptions struct {
	// Gap is the inactivity threshold. Zero means DefaultGap.
	Gap time.Duration
	// MinDuration drops sessions shorter than this. Zero keeps everything,
	// including zero-length single-heartbeat sessions.
	MinDuration time.Duration
}

func (o AggregateOptions) gap() time.Duration {
	if o.Gap <= 0 {
		return DefaultGap
	}

	return o.Gap
}

// AggregateSessions converts a stream of heartbeats into sessions. Heartbeats
// are sorted by timestamp and walked once; a new session starts whenever the
// gap to the previous heartbeat exceeds the threshold or the project label
// changes. Each contiguous run becomes one session spanning its first to last
// heartbeat. The whole window is aggregated in one pass, so sessions may span
// day boundaries. The result is ordered by session start time.
func AggregateSessions(heartbeats []Heartbeat, opts AggregateOptions) ([]Session, error) {
	for i, hb := range heartbeats {
		if hb.Project == "" {
			return nil, fmt.Errorf("%w: heartbeat %d at %s has an empty project label", ErrInvalidHeartbeat, i, hb.Time.Format(rangeTimeLayout))
		}
		if hb.Time.IsZero() {
			return nil, fmt.Errorf("%w: heartbeat %d for project %q has a zero timestamp", ErrInvalidHeartbeat, i, hb.Project)
		}
	}

	sorted := make([]Heartbeat, len(heartbeats))
	copy(sorted, heartbeats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	gap := opts.gap()
	sessions := make([]Session, 0, len(sorted))

	var runStart, runEnd time.Time
	var runProject string

	flush := func() {
		if runProject == "" {
			return
		}

		timeRange := TimeRange{From: runStart, To: runEnd}
		if opts.MinDuration > 0 && timeRange.Duration() < opts.MinDuration {
			return
		}

		sessions = append(sessions, NewSession(ProjectFromLabel(runProject), timeRange))
	}

	for _, hb := range sorted {
		if hb.Project != runProject || hb.Time.Sub(runEnd) > gap {
			flush()
			runStart = hb.Time
			runProject = hb.Project
		}
		runEnd = hb.Time
	}
	flush()

	return sessions, nil
}
