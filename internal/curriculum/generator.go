// Package curriculum turns a topic and a time budget into a study plan.
package curriculum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/study"
)

// ErrEmptyPlan is returned when the model answers with no modules.
var ErrEmptyPlan = errors.New("generated plan has no modules")

// Generator synthesizes study plans.
type Generator struct {
	provider llm.Provider
	cfg      Config
	now      func() time.Time
}

// NewGenerator creates a plan generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg, now: time.Now}
}

// Generate asks the provider for a plan covering topic within
// budgetMinutes (0 for no constraint). The returned plan is normalized:
// every module has a unique id and a positive duration. The plan's topic is
// the requested one, so later reuse checks compare like with like.
func (g *Generator) Generate(ctx context.Context, topic string, budgetMinutes int) (study.Plan, error) {
	ctx = llm.WithPurpose(ctx, "study-plan")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: planSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlanUserMessage(topic, budgetMinutes)},
		},
		Schema:      PlanSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return study.Plan{}, fmt.Errorf("plan generation: %w", err)
	}

	var plan study.Plan
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Text())), &plan); err != nil {
		return study.Plan{}, fmt.Errorf("parse plan response: %w", err)
	}
	if len(plan.Modules) == 0 {
		return study.Plan{}, ErrEmptyPlan
	}
	for i := range plan.Modules {
		// Content is never generated with the plan.
		plan.Modules[i].Content = nil
	}

	plan.Topic = strings.TrimSpace(topic)
	plan.Normalize(g.now())
	return plan, nil
}
