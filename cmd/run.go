package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mahwas/Cognito/internal/app"
	"github.com/Mahwas/Cognito/internal/curriculum"
	"github.com/Mahwas/Cognito/internal/guidance"
	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/planner"
	"github.com/Mahwas/Cognito/internal/quiz"
	"github.com/Mahwas/Cognito/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	provider, available := buildProvider(cmd.Context(), e)
	if !available {
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	}

	return app.Run(app.Options{
		Planner:       newPlanner(e, provider),
		Quiz:          quiz.NewGenerator(provider, quiz.DefaultConfig()),
		Tutor:         tutor.New(provider, tutor.DefaultConfig(), e.log),
		Log:           e.log,
		AIUnavailable: !available,
	})
}

// buildProvider returns the configured provider, or one that fails every
// call when none can be built. The bool reports which.
func buildProvider(ctx context.Context, e *env) (llm.Provider, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := e.cfg.LLM.Resolve()
	if err == nil {
		var p llm.Provider
		p, err = llm.NewProvider(ctx, cfg, e.store.EventRepo(), e.log)
		if err == nil {
			e.log.Info("llm provider ready", "provider", cfg.Provider, "model", p.ModelID())
			return p, true
		}
	}
	fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	e.log.Warn("llm provider unavailable", "error", err)
	return llm.NewUnavailableProvider(err), false
}

func newPlanner(e *env, provider llm.Provider) *planner.Service {
	return planner.NewService(
		e.state,
		curriculum.NewGenerator(provider, curriculum.DefaultConfig()),
		guidance.NewFetcher(provider, guidance.DefaultConfig(), e.log),
		e.log,
	)
}
