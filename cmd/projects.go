package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/wakasync/internal/adapters/solidtime"
	"github.com/bnema/wakasync/internal/adapters/wakapi"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *app) *cobra.Command {
	var opts exportOptions
	var fromDate, toDate string
	var withRemote, asJSON bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects active in the export window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjects(cmd, app, opts, fromDate, toDate, withRemote, asJSON)
		},
	}

	cmd.Flags().StringVarP(&opts.databasePath, "db", "f", "", "Path to the Wakapi SQLite database")
	cmd.Flags().StringVar(&fromDate, "from", "", "Start date of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "End date of the window, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.solidtimeURL, "solidtime-url", "s", "", "URL of the Solidtime instance")
	cmd.Flags().StringVarP(&opts.apiKey, "solidtime-key", "k", "", "API key for the Solidtime instance")
	cmd.Flags().StringVarP(&opts.organizationID, "organization", "o", "", "Solidtime organization ID")
	cmd.Flags().BoolVar(&withRemote, "remote", false, "Also list managed projects on the Solidtime side")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runProjects(cmd *cobra.Command, app *app, opts exportOptions, fromDate, toDate string, withRemote, asJSON bool) error {
	cfg := app.effectiveConfig(opts)
	if err := cfg.ValidateSource(); err != nil {
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

	local, err := source.Projects(cmd.Context(), window)
	if err != nil {
		return err
	}

	var remote []string
	if withRemote {
		if err := cfg.ValidateRemote(); err != nil {
			return err
		}

		client := solidtime.NewClient(cfg.SolidtimeURL, cfg.APIKey, cfg.OrganizationID, app.httpClient)
		managed, err := solidtime.NewQuery(client).Projects(cmd.Context())
		if err != nil {
			return err
		}
		for _, project := range managed {
			remote = append(remote, project.DisplayName)
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		payload := map[string][]string{"local": local}
		if withRemote {
			payload["remote"] = remote
		}
		return enc.Encode(payload)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "local projects (%d):\n", len(local))
	for _, name := range local {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
	if withRemote {
		fmt.Fprintf(cmd.OutOrStdout(), "remote managed projects (%d):\n", len(remote))
		for _, name := range remote {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}
	}

	return nil
}
