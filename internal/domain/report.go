package domain

import (
	"fmt"
	"sort"
	"time"
)

// Report is the exchange value between the input and output sides of one
// export run: the queried time range plus the sessions found in it, keyed by
// identifier. Not persisted; it lives for one invocation only.
type Report struct {
	TimeRange TimeRange
	Entries   map[string]Session
}

// NewReport assembles sessions into a report. Two sessions sharing an
// identifier is an invariant violation and fails the build rather than
// silently dropping one. Every session must fall within the report range.
func NewReport(timeRange TimeRange, sessions []Session) (Report, error) {
	return newReport(timeRange, sessions, true)
}

// NewObservedReport indexes sessions reported back by an external system.
// Duplicate identifiers still fail the build, but a session may extend past
// the report range: an entry spanning midnight legitimately shows up in two
// adjacent export windows.
func NewObservedReport(timeRange TimeRange, sessions []Session) (Report, error) {
	return newReport(timeRange, sessions, false)
}

func newReport(timeRange TimeRange, sessions []Session, bounded bool) (Report, error) {
	entries := make(map[string]Session, len(sessions))

	for _, session := range sessions {
		if existing, found := entries[session.Identifier]; found {
			return Report{}, fmt.Errorf("%w: %q held by both %s and %s", ErrDuplicateIdentifier, session.Identifier, existing.TimeRange.Format(), session.TimeRange.Format())
		}
		if bounded && !timeRange.Contains(session.TimeRange) {
			return Report{}, fmt.Errorf("%w: session %q spans %s, report covers %s", ErrSessionOutOfRange, session.Identifier, session.TimeRange.Format(), timeRange.Format())
		}
		entries[session.Identifier] = session
	}

	return Report{TimeRange: timeRange, Entries: entries}, nil
}

// Sessions returns the report's sessions ordered by start time.
func (r Report) Sessions() []Session {
	sessions := make([]Session, 0, len(r.Entries))
	for _, session := range r.Entries {
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].TimeRange.From.Equal(sessions[j].TimeRange.From) {
			return sessions[i].TimeRange.From.Before(sessions[j].TimeRange.From)
		}
		return sessions[i].Identifier < sessions[j].Identifier
	})

	return sessions
}

// TotalDuration sums the durations of all sessions in the report.
func (r Report) TotalDuration() time.Duration {
	var total time.Duration
	for _, session := range r.Entries {
		total += session.TimeRange.Duration()
	}

	return total
}
