package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/planner"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved plan and its progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		done, _ := cmd.Flags().GetStringSlice("done")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		// Status never generates, so it runs without a provider.
		unavailable := llm.NewUnavailableProvider(errors.New("not needed"))
		svc := newPlanner(e, unavailable)

		ctx := cmd.Context()
		plan, err := svc.LoadSaved(ctx)
		if errors.Is(err, planner.ErrNoPlan) {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved plan. Run `cognito` or `cognito plan <topic>` to create one.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("load plan: %w", err)
		}

		for _, id := range done {
			if err := svc.MarkComplete(ctx, id); err != nil {
				return fmt.Errorf("mark %s complete: %w", id, err)
			}
		}

		out := cmd.OutOrStdout()
		printPlan(out, plan, svc)
		fmt.Fprintf(out, "\n%d/%d modules complete\n", len(svc.Completed()), len(plan.Modules))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringSlice("done", nil, "Mark module ids complete before printing")
}
