package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mahwas/Cognito/internal/curriculum"
	"github.com/Mahwas/Cognito/internal/planner"
	"github.com/Mahwas/Cognito/internal/study"
)

var planCmd = &cobra.Command{
	Use:   "plan <topic>",
	Short: "Generate or reopen a study plan without the TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, _ := cmd.Flags().GetInt("minutes")
		withGuidance, _ := cmd.Flags().GetBool("guidance")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, available := buildProvider(cmd.Context(), e)
		svc := newPlanner(e, provider)

		ctx := cmd.Context()
		plan, err := svc.Open(ctx, strings.Join(args, " "), minutes)
		if err != nil {
			if !available {
				return fmt.Errorf("create plan (no LLM provider): %w", err)
			}
			return fmt.Errorf("create plan: %w", err)
		}

		out := cmd.OutOrStdout()
		printPlan(out, plan, svc)

		if !withGuidance {
			return nil
		}
		for _, m := range plan.Modules {
			res, err := svc.ModuleContent(ctx, m.ID)
			if err != nil {
				return fmt.Errorf("module %s: %w", m.ID, err)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "── %s ", m.Title)
			if res.Degraded() {
				fmt.Fprint(out, "(offline guidance)")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, res.Content.Advice)
			for _, r := range res.Content.Resources {
				fmt.Fprintf(out, "  • %s  %s\n", r.Title, r.URL)
			}
		}
		return nil
	},
}

// printPlan writes the module list with completion marks and the total.
func printPlan(out io.Writer, plan study.Plan, svc *planner.Service) {
	fmt.Fprintf(out, "%s  (%s, %d modules)\n", plan.Topic, study.FormatMinutes(plan.TotalMinutes()), len(plan.Modules))
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for i, m := range plan.Modules {
		mark := "○"
		if svc.IsCompleted(m.ID) {
			mark = "✓"
		}
		fmt.Fprintf(out, "%s %2d. %-40s %6s\n", mark, i+1, truncate(m.Title, 40), study.FormatMinutes(m.EstimatedMinutes))
	}
}

func init() {
	planCmd.Flags().IntP("minutes", "m", curriculum.DefaultMinutes, "Time budget in minutes")
	planCmd.Flags().Bool("guidance", false, "Also fetch guidance for every module")
}
