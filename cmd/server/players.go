package main

import (
	"os"

	"alcyxob/coaching-app/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPlayersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Manage the player roster",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import players from a CSV roster (name, age, phone columns)",
		Long: `Creates one player per CSV row with a non-empty name, acting as the
master-code instructor (created on first use). Each new player gets a fresh
login code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open roster")
			}
			defer f.Close()

			a, err := openApp(opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			head, err := a.authService().EnsureMasterInstructor(ctx)
			if err != nil {
				return err
			}
			created, err := a.playerService().ImportCSV(ctx, domain.InstructorIdentity(head), f)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d players.\n", created)
			return nil
		},
	})
	return cmd
}
