package main

import (
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Coaching app: players, metrics, notes and drills for instructors",
		Long: `Runs the coaching web application and its maintenance tasks.

Configuration is read from config.yaml in the --config directory and from
environment variables (SERVER_ADDRESS, DATABASE_DRIVER, DATABASE_DSN,
INSTRUCTOR_MASTER_CODE, TWILIO_ACCOUNT_SID, ...).

  $ server                          # same as "server serve"
  $ server migrate up               # apply database migrations
  $ server players import roster.csv
  $ server instructors create "Sam"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", ".", "directory containing config.yaml")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newPlayersCmd(opts),
		newInstructorsCmd(opts),
	)
	return cmd
}
