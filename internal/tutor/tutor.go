// Package tutor runs the per-module chat with a Socratic tutor.
package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/logger"
)

// Role is the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the chat transcript.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}

// Fixed replies used when the model cannot answer.
const (
	ErrorReply = "I'm sorry, I encountered an error. Please try again."
	EmptyReply = "I'm having trouble thinking of an answer right now."
)

// contextTurns is how many transcript messages still get the module prefix.
const contextTurns = 3

const systemPrompt = `You are a helpful, encouraging, and Socratic tutor. Don't just give answers; guide the student to understanding. Keep responses concise unless asked for elaboration.`

// Config holds tutor settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for tutor replies.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// Tutor answers chat turns. It keeps no state between calls.
type Tutor struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// New creates a tutor.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Tutor {
	if log == nil {
		log = logger.Nop()
	}
	return &Tutor{provider: provider, cfg: cfg, log: log.With("component", "tutor"), now: time.Now}
}

// NewMessage stamps a transcript entry with a fresh id and time.
func (t *Tutor) NewMessage(role Role, text string) Message {
	return Message{ID: uuid.NewString(), Role: role, Text: text, Timestamp: t.now()}
}

// Greeting opens a chat about a module.
func (t *Tutor) Greeting(title string, topics []string) Message {
	text := fmt.Sprintf(
		"Hi! I'm your tutor for the module %q. We're covering topics like: %s. What would you like to know first?",
		title, strings.Join(topics, ", "),
	)
	return t.NewMessage(RoleModel, text)
}

// Reply sends the transcript and the new user text and returns the model's
// answer. Failures become a fixed apology so the chat never breaks.
func (t *Tutor) Reply(ctx context.Context, moduleTitle string, transcript []Message, text string) Message {
	msgs := make([]llm.Message, 0, len(transcript)+1)
	for _, m := range transcript {
		msgs = append(msgs, llm.Message{Role: toLLMRole(m.Role), Content: m.Text})
	}
	outgoing := text
	if len(transcript) < contextTurns {
		outgoing = fmt.Sprintf("[Context: Teaching user about %q] %s", moduleTitle, text)
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: outgoing})

	resp, err := t.provider.Generate(llm.WithPurpose(ctx, "tutor-reply"), llm.Request{
		System:      systemPrompt,
		Messages:    msgs,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		t.log.Warn("tutor reply failed", "module", moduleTitle, "error", err)
		return t.NewMessage(RoleModel, ErrorReply)
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		reply = EmptyReply
	}
	return t.NewMessage(RoleModel, reply)
}

func toLLMRole(r Role) llm.Role {
	if r == RoleModel {
		return llm.RoleAssistant
	}
	return llm.RoleUser
}
