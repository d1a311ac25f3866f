package domain

import (
	"crypto/sha256"
	"encoding/base32"
	"strings"
	"time"
)

const fingerprintLength = 10

// Heartbeat is a single timestamped activity event on one project.
type Heartbeat struct {
	Time    time.Time
	Project string
}

// Session is a contiguous range of activity on one project, derived from a
// run of heartbeats. Immutable after creation; the Identifier substitutes for
// a persisted cross-system ID mapping.
type Session struct {
	Project     Project
	TimeRange   TimeRange
	Identifier  string
	DisplayName string
}

// NewSession builds a session for a project over a time range and assigns its
// content-derived identifier.
func NewSession(project Project, timeRange TimeRange) Session {
	return Session{
		Project:     project,
		TimeRange:   timeRange,
		Identifier:  Fingerprint(project.DisplayName, timeRange),
		DisplayName: project.DisplayName,
	}
}

// Fingerprint derives the deterministic session identifier: SHA-256 over the
// project label concatenated with the formatted time range, base32-encoded,
// lowercased, truncated to ten characters. Same inputs always yield the same
// identifier across runs.
func Fingerprint(projectLabel string, timeRange TimeRange) string {
	sum := sha256.Sum256([]byte(projectLabel + timeRange.Format()))
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(sum[:])

	return strings.ToLower(encoded[:fingerprintLength])
}
