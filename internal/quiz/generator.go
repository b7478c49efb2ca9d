package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Mahwas/Cognito/internal/llm"
)

// ErrNoQuestions is returned when no usable question was generated.
var ErrNoQuestions = errors.New("quiz has no usable questions")

// Config holds quiz generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for quiz generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Generator synthesizes quizzes.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a quiz generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

type quizOutput struct {
	Questions []Question `json:"questions"`
}

// Generate asks for QuestionCount questions on topic. Malformed questions
// are dropped, extras beyond QuestionCount are cut and the rest renumbered
// from 1.
func (g *Generator) Generate(ctx context.Context, topic string, d Difficulty) ([]Question, error) {
	if !d.Valid() {
		d = Medium
	}
	ctx = llm.WithPurpose(ctx, "quiz")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(strings.TrimSpace(topic), d)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Text())), &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	questions := make([]Question, 0, len(out.Questions))
	for _, q := range out.Questions {
		q.Question = strings.TrimSpace(q.Question)
		if !q.Valid() {
			continue
		}
		q.ID = len(questions) + 1
		questions = append(questions, q)
		if len(questions) == QuestionCount {
			break
		}
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}
