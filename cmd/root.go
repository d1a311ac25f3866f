package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wakasync",
		Short:         "Export Wakapi heartbeats to Solidtime as time entries",
		Long:          "wakasync aggregates the heartbeats in a local Wakapi SQLite database into coding sessions and pushes them to a Solidtime instance. Re-running is safe: sessions already present remotely are detected by their identifier tag and skipped.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newExportCmd(app),
		newProjectsCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
