// Package wakapi reads heartbeats from a local Wakapi SQLite database. The
// database is consulted read-only; no writes ever happen through this
// adapter.
package wakapi

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/bnema/wakasync/internal/ports"
	_ "modernc.org/sqlite"
)

// Layouts Wakapi has stored heartbeat timestamps in, depending on version and
// driver. Tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

type Source struct {
	db *sql.DB
}

var _ ports.HeartbeatSource = (*Source)(nil)

// Open opens the Wakapi database read-only and verifies it is reachable.
func Open(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("wakapi database path is empty: %w", domain.ErrMissingConfig)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("wakapi database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open wakapi database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to wakapi database %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set query_only on wakapi database: %w", err)
	}

	return &Source{db: db}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

// Heartbeats returns all heartbeats in the window ordered by timestamp. The
// time column is TEXT in whatever layout the writing Wakapi version used, so
// comparing it in SQL would be lexical and unreliable; the window filter runs
// here, after parsing. A row with an unparseable timestamp or empty project
// fails the run; silently skipping rows would lose data.
func (s *Source) Heartbeats(ctx context.Context, timeRange domain.TimeRange) ([]domain.Heartbeat, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT time, project FROM heartbeats`)
	if err != nil {
		return nil, fmt.Errorf("query heartbeats: %w", err)
	}
	defer rows.Close()

	var heartbeats []domain.Heartbeat
	row := 0
	for rows.Next() {
		var rawTime, project any
		if err := rows.Scan(&rawTime, &project); err != nil {
			return nil, fmt.Errorf("scan heartbeat row: %w", err)
		}

		heartbeat, err := heartbeatFromRow(rawTime, project)
		if err != nil {
			return nil, fmt.Errorf("heartbeat row %d: %w", row, err)
		}
		row++

		if !heartbeat.Time.After(timeRange.From) || heartbeat.Time.After(timeRange.To) {
			continue
		}
		heartbeats = append(heartbeats, heartbeat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heartbeats: %w", err)
	}

	sort.Slice(heartbeats, func(i, j int) bool {
		return heartbeats[i].Time.Before(heartbeats[j].Time)
	})

	return heartbeats, nil
}

// Projects returns the distinct project labels active in the window, sorted.
func (s *Source) Projects(ctx context.Context, timeRange domain.TimeRange) ([]string, error) {
	heartbeats, err := s.Heartbeats(ctx, timeRange)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(heartbeats))
	var projects []string
	for _, heartbeat := range heartbeats {
		if _, found := seen[heartbeat.Project]; found {
			continue
		}
		seen[heartbeat.Project] = struct{}{}
		projects = append(projects, heartbeat.Project)
	}
	sort.Strings(projects)

	return projects, nil
}

func heartbeatFromRow(rawTime, rawProject any) (domain.Heartbeat, error) {
	project, ok := rawProject.(string)
	if !ok || project == "" {
		return domain.Heartbeat{}, fmt.Errorf("%w: missing project label", domain.ErrInvalidHeartbeat)
	}

	timestamp, err := parseRowTime(rawTime)
	if err != nil {
		return domain.Heartbeat{}, fmt.Errorf("%w: project %q: %v", domain.ErrInvalidHeartbeat, project, err)
	}

	return domain.Heartbeat{Time: timestamp, Project: project}, nil
}

func parseRowTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", v)
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case float64:
		seconds := int64(v)
		return time.Unix(seconds, int64((v-float64(seconds))*float64(time.Second))).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", raw)
	}
}
