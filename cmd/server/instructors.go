package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInstructorsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructors",
		Short: "Manage instructor accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create [name]",
		Short: "Create an instructor and print its login code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			a, err := openApp(opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			instructor, err := a.authService().CreateInstructor(cmd.Context(), name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			color.New(color.FgGreen).Fprintf(out, "Instructor %q created.\n", instructor.Name)
			color.New(color.Bold).Fprintf(out, "Login code: %s\n", instructor.Code)
			return nil
		},
	})
	return cmd
}
