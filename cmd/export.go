package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	renderreport "github.com/bnema/wakasync/internal/adapters/render/report"
	"github.com/bnema/wakasync/internal/adapters/solidtime"
	"github.com/bnema/wakasync/internal/adapters/wakapi"
	"github.com/bnema/wakasync/internal/application"
	"github.com/bnema/wakasync/internal/domain"
	"github.com/bnema/wakasync/internal/ports"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newExportCmd(app *app) *cobra.Command {
	var opts exportOptions
	var fromDate, toDate string
	var dryRun, asJSON bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Aggregate heartbeats into sessions and push them to Solidtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, app, opts, fromDate, toDate, dryRun, asJSON)
		},
	}

	cmd.Flags().StringVarP(&opts.databasePath, "db", "f", "", "Path to the Wakapi SQLite database")
	cmd.Flags().StringVar(&fromDate, "from", "", "Start date of the export window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "End date of the export window, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.solidtimeURL, "solidtime-url", "s", "", "URL of the Solidtime instance")
	cmd.Flags().StringVarP(&opts.apiKey, "solidtime-key", "k", "", "API key for the Solidtime instance")
	cmd.Flags().StringVarP(&opts.organizationID, "organization", "o", "", "Solidtime organization ID")
	cmd.Flags().IntVar(&opts.gapSeconds, "gap", 0, "Inactivity gap in seconds that splits sessions (default 900)")
	cmd.Flags().IntVar(&opts.minDurationSec, "min-duration", 0, "Drop sessions shorter than this many seconds")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Perform all reads but no remote writes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runExport(cmd *cobra.Command, app *app, opts exportOptions, fromDate, toDate string, dryRun, asJSON bool) error {
	cfg := app.effectiveConfig(opts)
	if err := cfg.ValidateSource(); err != nil {
		return err
	}
	if err := cfg.ValidateRemote(); err != nil {
		return err
	}

	window, err := parseWindow(fromDate, toDate)
	if err != nil {
		return err
	}

	source, err := wakapi.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer source.Close()

	client := solidtime.NewClient(cfg.SolidtimeURL, cfg.APIKey, cfg.OrganizationID, app.httpClient)
	query := solidtime.NewQuery(client)

	var mutator ports.RemoteMutator
	if dryRun {
		mutator = solidtime.NewDryRunMutator(cmd.ErrOrStderr())
	} else {
		mutator = solidtime.NewMutator(client, cmd.ErrOrStderr())
	}

	exporter := application.NewExporter(source, query, mutator, domain.AggregateOptions{
		Gap:         cfg.Gap,
		MinDuration: cfg.MinDuration,
	})

	var result application.ExportResult
	run := func(ctx context.Context) error {
		var runErr error
		result, runErr = exporter.Run(ctx, window)
		return runErr
	}

	started := app.clock.Now()
	if asJSON {
		err = run(cmd.Context())
	} else {
		err = runExportSpinner(cmd.Context(), cmd.ErrOrStderr(), run)
	}
	if err != nil {
		return err
	}

	if !asJSON {
		fmt.Fprintf(cmd.ErrOrStderr(), "completed in %s\n", app.clock.Now().Sub(started).Round(time.Millisecond))
	}

	return writeExportOutput(cmd, result, dryRun, asJSON)
}

func writeExportOutput(cmd *cobra.Command, result application.ExportResult, dryRun, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(exportResultPayload(result, dryRun))
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), renderreport.Render(result, renderreport.RenderOptions{DryRun: dryRun}))
	return err
}

type sessionPayload struct {
	Identifier string `json:"identifier"`
	Project    string `json:"project"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Duration   string `json:"duration"`
}

type exportPayload struct {
	Window   string           `json:"window"`
	DryRun   bool             `json:"dry_run"`
	Pushed   []sessionPayload `json:"pushed"`
	Skipped  []sessionPayload `json:"skipped"`
	Projects []string         `json:"created_projects"`
}

func exportResultPayload(result application.ExportResult, dryRun bool) exportPayload {
	payload := exportPayload{
		Window:   result.Input.TimeRange.Format(),
		DryRun:   dryRun,
		Pushed:   sessionPayloads(result.Pushed),
		Skipped:  sessionPayloads(result.Skipped),
		Projects: make([]string, 0, len(result.CreatedProjects)),
	}
	for _, project := range result.CreatedProjects {
		payload.Projects = append(payload.Projects, project.DisplayName)
	}

	return payload
}

func sessionPayloads(sessions []domain.Session) []sessionPayload {
	payloads := make([]sessionPayload, 0, len(sessions))
	for _, session := range sessions {
		payloads = append(payloads, sessionPayload{
			Identifier: session.Identifier,
			Project:    session.Project.DisplayName,
			Start:      session.TimeRange.From.UTC().Format(time.RFC3339),
			End:        session.TimeRange.To.UTC().Format(time.RFC3339),
			Duration:   session.TimeRange.FormatDuration(),
		})
	}

	return payloads
}

// parseWindow turns two dates into the export window. The end date is
// inclusive: exporting --from 2026-03-01 --to 2026-03-01 covers that whole
// day.
func parseWindow(fromDate, toDate string) (domain.TimeRange, error) {
	from, err := time.ParseInLocation(dateLayout, fromDate, time.UTC)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("parse --from date: %w", err)
	}
	to, err := time.ParseInLocation(dateLayout, toDate, time.UTC)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("parse --to date: %w", err)
	}

	window, err := domain.NewTimeRange(from, to.Add(24*time.Hour))
	if err != nil {
		return domain.TimeRange{}, err
	}

	return window, nil
}
