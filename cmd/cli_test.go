package cmd

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func writeWakapiFixture(t *testing.T, stamps map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wakapi.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE heartbeats (id INTEGER PRIMARY KEY AUTOINCREMENT, time TEXT NOT NULL, project TEXT NOT NULL)`)
	require.NoError(t, err)
	for stamp, project := range stamps {
		_, err = db.Exec(`INSERT INTO heartbeats (time, project) VALUES (?, ?)`, stamp, project)
		require.NoError(t, err)
	}

	return path
}

type fakeProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fakeEntry struct {
	ID          string  `json:"id"`
	Start       string  `json:"start"`
	End         *string `json:"end"`
	Description *string `json:"description"`
	ProjectID   *string `json:"project_id"`
}

// fakeSolidtime is a minimal stateful Solidtime instance: created projects
// and entries show up in subsequent list calls.
type fakeSolidtime struct {
	*httptest.Server

	projects []fakeProject
	entries  []fakeEntry
	writes   int
}

func newFakeSolidtime(t *testing.T) *fakeSolidtime {
	t.Helper()

	fake := &fakeSolidtime{}
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, payload any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}

	mux.HandleFunc("GET /api/v1/organizations/org-1/projects", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"data": fake.projects})
	})
	mux.HandleFunc("POST /api/v1/organizations/org-1/projects", func(w http.ResponseWriter, r *http.Request) {
		fake.writes++
		var body struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		created := fakeProject{ID: fmt.Sprintf("proj-%d", len(fake.projects)+1), Name: body.Name}
		fake.projects = append(fake.projects, created)
		writeJSON(w, map[string]any{"data": created})
	})
	mux.HandleFunc("GET /api/v1/organizations/org-1/time-entries", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"data": fake.entries})
	})
	mux.HandleFunc("POST /api/v1/organizations/org-1/time-entries", func(w http.ResponseWriter, r *http.Request) {
		fake.writes++
		var body struct {
			Start       string `json:"start"`
			End         string `json:"end"`
			Description string `json:"description"`
			ProjectID   string `json:"project_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		created := fakeEntry{
			ID:          fmt.Sprintf("entry-%d", len(fake.entries)+1),
			Start:       body.Start,
			End:         &body.End,
			Description: &body.Description,
			ProjectID:   &body.ProjectID,
		}
		fake.entries = append(fake.entries, created)
		writeJSON(w, map[string]any{"data": created})
	})

	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Close)

	return fake
}

type exportJSON struct {
	Window   string `json:"window"`
	DryRun   bool   `json:"dry_run"`
	Pushed   []any  `json:"pushed"`
	Skipped  []any  `json:"skipped"`
	Projects []any  `json:"created_projects"`
}

func exportArgs(dbPath, serverURL string, extra ...string) []string {
	args := []string{
		"export",
		"--db", dbPath,
		"--from", "2026-03-01",
		"--to", "2026-03-01",
		"--solidtime-url", serverURL,
		"--solidtime-key", "test-key",
		"--organization", "org-1",
		"--json",
	}

	return append(args, extra...)
}

func TestExportEndToEndIsIdempotent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbPath := writeWakapiFixture(t, map[string]string{
		"2026-03-01 10:00:00": "api",
		"2026-03-01 10:04:00": "api",
	})
	fake := newFakeSolidtime(t)

	stdout, _, err := executeCLI(t, exportArgs(dbPath, fake.URL)...)
	require.NoError(t, err)

	var first exportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &first))
	assert.Len(t, first.Pushed, 1)
	assert.Empty(t, first.Skipped)
	assert.Len(t, first.Projects, 1)
	require.Len(t, fake.entries, 1)
	assert.Contains(t, *fake.entries[0].Description, "] api")

	stdout, _, err = executeCLI(t, exportArgs(dbPath, fake.URL)...)
	require.NoError(t, err)

	var second exportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &second))
	assert.Empty(t, second.Pushed)
	assert.Len(t, second.Skipped, 1)
	assert.Len(t, fake.entries, 1)
}

func TestExportDryRunPerformsNoWrites(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbPath := writeWakapiFixture(t, map[string]string{
		"2026-03-01 10:00:00": "api",
		"2026-03-01 10:04:00": "api",
	})
	fake := newFakeSolidtime(t)

	stdout, _, err := executeCLI(t, exportArgs(dbPath, fake.URL, "--dry-run")...)
	require.NoError(t, err)

	var payload exportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.True(t, payload.DryRun)
	assert.Len(t, payload.Pushed, 1)
	assert.Zero(t, fake.writes)
	assert.Empty(t, fake.entries)
}

func TestExportRequiresDateFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, _, err := executeCLI(t, "export", "--db", "x.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestExportMissingRemoteConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbPath := writeWakapiFixture(t, map[string]string{"2026-03-01 10:00:00": "api"})

	_, _, err := executeCLI(t,
		"export", "--db", dbPath, "--from", "2026-03-01", "--to", "2026-03-01", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solidtime.url")
}

func TestProjectsListsLocalProjects(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbPath := writeWakapiFixture(t, map[string]string{
		"2026-03-01 10:00:00": "api",
		"2026-03-01 11:00:00": "web",
	})

	stdout, _, err := executeCLI(t, "projects", "--db", dbPath, "--from", "2026-03-01", "--to", "2026-03-01")
	require.NoError(t, err)
	assert.Contains(t, stdout, "api")
	assert.Contains(t, stdout, "web")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestConfigPathCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	stdout, _, err := executeCLI(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(home, "wakasync", "config.toml"))
}
