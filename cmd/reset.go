package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved study plan and its progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.state.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear saved plan: %w", err)
		}
		e.log.Info("saved plan cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "Saved plan cleared.")
		return nil
	},
}
