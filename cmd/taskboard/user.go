package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete [username]",
		Short: "Delete an account together with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.users.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete user %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %q\n", args[0])
			return nil
		},
	})
	return cmd
}
