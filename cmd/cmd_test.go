package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahwas/Cognito/internal/guidance"
	"github.com/Mahwas/Cognito/internal/store"
	"github.com/Mahwas/Cognito/internal/study"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func seedPlan(t *testing.T, dbPath string) {
	t.Helper()
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	err = s.StateRepo(nil).Save(context.Background(), store.PersistedState{
		Plan: study.Plan{
			Topic: "Rust",
			Modules: []study.Module{
				{ID: "borrowing", Title: "Borrowing", EstimatedMinutes: 60, Topics: []string{}},
				{ID: "lifetimes", Title: "Lifetimes", EstimatedMinutes: 45, Topics: []string{}},
			},
		},
		CompletedModules: []string{},
		LastUpdated:      1,
	})
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "cognito")
}

func TestStatus_NoSavedPlan(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cognito.db")
	out := execute(t, "status", "--db", db)
	assert.Contains(t, out, "No saved plan")
}

func TestStatus_MarksAndPrintsProgress(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cognito.db")
	seedPlan(t, db)

	out := execute(t, "status", "--db", db, "--done", "lifetimes")
	assert.Contains(t, out, "Rust")
	assert.Contains(t, out, "1h 45m")
	assert.Contains(t, out, "✓  2. Lifetimes")
	assert.Contains(t, out, "1/2 modules complete")
}

func TestReset_ClearsSavedPlan(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cognito.db")
	seedPlan(t, db)

	out := execute(t, "reset", "--db", db)
	assert.Contains(t, out, "Saved plan cleared.")

	out = execute(t, "status", "--db", db)
	assert.Contains(t, out, "No saved plan")
}

func TestLLMStats_GuidanceSummary(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cognito.db")
	s, err := store.Open(db)
	require.NoError(t, err)
	events := []store.LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: guidance.PurposeLive, Grounded: true, ErrorMessage: "grounding unsupported"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: guidance.PurposeFallback, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: guidance.PurposeLive, Grounded: true, ErrorMessage: "grounding unsupported"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: guidance.PurposeFallback, ErrorMessage: "timeout"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "study-plan", Success: true},
	}
	for _, e := range events {
		require.NoError(t, s.EventRepo().AppendLLMRequest(context.Background(), e))
	}
	stats, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, guidanceSummary{LiveCalls: 2, LiveFailed: 2, FallbackCalls: 2, FallbackFailed: 1}, summarizeGuidance(stats))

	out := execute(t, "llm", "stats", "--db", db)
	assert.Contains(t, out, "Module Guidance")
	assert.Contains(t, out, "Live (grounded)")
	assert.Contains(t, out, "100% failed")
	assert.Contains(t, out, "50% failed")
}

func TestPrintGuidanceSummary_SilentWithoutGuidance(t *testing.T) {
	var b bytes.Buffer
	printGuidanceSummary(&b, guidanceSummary{})
	assert.Empty(t, b.String())
	assert.Equal(t, "-", percent(0, 0))
}
