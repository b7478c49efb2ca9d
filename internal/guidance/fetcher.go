package guidance

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/logger"
	"github.com/Mahwas/Cognito/internal/study"
)

// Purposes recorded in the LLM request log for the two attempts.
const (
	PurposeLive     = "module-guidance"
	PurposeFallback = "module-guidance-fallback"
)

// Outcome is the terminal result of a fetch. Content is always set; Err
// holds the last attempt's error when State is not Success.
type Outcome struct {
	State   State
	Content study.Content
	Err     error
}

// Config holds guidance generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for guidance generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}

// Fetcher runs the live/fallback protocol against a provider.
type Fetcher struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewFetcher creates a guidance fetcher.
func NewFetcher(provider llm.Provider, cfg Config, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Fetcher{provider: provider, cfg: cfg, log: log.With("component", "guidance")}
}

// Fetch produces guidance for a module. It never returns an error: every
// failure is folded into the Outcome.
func (f *Fetcher) Fetch(ctx context.Context, in Input) Outcome {
	state := FetchingLive
	var out Outcome

	for !state.Terminal() {
		var (
			content study.Content
			err     error
		)
		switch state {
		case FetchingLive:
			content, err = f.live(ctx, in)
		case FetchingFallback:
			content, err = f.fallback(ctx, in)
		}

		next := Next(state, err)
		if err != nil {
			f.log.Warn("guidance attempt failed", "module", in.Title, "state", state.String(), "next", next.String(), "error", err)
			out.Err = err
		}
		out.Content = content
		state = next
	}

	if state == HardFailure {
		out.Content = study.Content{Advice: FailureAdvice, Resources: []study.Resource{}}
	}
	out.State = state
	return out
}

func (f *Fetcher) live(ctx context.Context, in Input) (study.Content, error) {
	resp, err := f.provider.Generate(llm.WithPurpose(ctx, PurposeLive), llm.Request{
		System:      liveSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildLiveUserMessage(in)}},
		Grounding:   true,
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
	})
	if err != nil {
		return study.Content{}, fmt.Errorf("live guidance: %w", err)
	}
	return study.Content{
		Advice:     adviceOrDefault(resp.Text()),
		Resources:  resourcesFromCitations(resp.Citations),
		IsFallback: false,
	}, nil
}

func (f *Fetcher) fallback(ctx context.Context, in Input) (study.Content, error) {
	resp, err := f.provider.Generate(llm.WithPurpose(ctx, PurposeFallback), llm.Request{
		System:      fallbackSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildFallbackUserMessage(in)}},
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
	})
	if err != nil {
		return study.Content{}, fmt.Errorf("fallback guidance: %w", err)
	}
	return study.Content{
		Advice:     adviceOrDefault(resp.Text()),
		Resources:  []study.Resource{},
		IsFallback: true,
	}, nil
}

func adviceOrDefault(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultAdvice
	}
	return strings.TrimSpace(text)
}
