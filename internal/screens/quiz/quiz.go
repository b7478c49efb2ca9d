package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/Mahwas/Cognito/internal/quiz"
	"github.com/Mahwas/Cognito/internal/router"
	"github.com/Mahwas/Cognito/internal/screen"
	"github.com/Mahwas/Cognito/internal/screens"
	"github.com/Mahwas/Cognito/internal/ui/components"
	"github.com/Mahwas/Cognito/internal/ui/layout"
	"github.com/Mahwas/Cognito/internal/ui/theme"
)

// FailedText is shown when no quiz could be generated.
const FailedText = "Couldn't build a quiz right now."

// quizReadyMsg carries generated questions.
type quizReadyMsg struct {
	Questions []qz.Question
	Err       error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time

// QuizScreen runs a five-question quiz on the plan topic.
type QuizScreen struct {
	deps  screens.Deps
	topic string

	loading bool
	spin    int
	errMsg  string
	session *qz.Session
	choice  components.MultiChoice

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen for topic.
func New(deps screens.Deps, topic string) *QuizScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuizScreen{deps: deps, topic: topic, ctx: ctx, cancel: cancel}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.loading = true
	gen, ctx, topic := s.deps.Quiz, s.ctx, s.topic
	build := func() tea.Msg {
		qs, err := gen.Generate(ctx, topic, qz.Medium)
		return quizReadyMsg{Questions: qs, Err: err}
	}
	return tea.Batch(build, spinnerTick())
}

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.topic
}

// Close abandons quiz generation.
func (s *QuizScreen) Close() {
	s.cancel()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.session.Finished():
		return []layout.KeyHint{{Key: "Enter", Description: "Back to plan"}}
	case s.session.Answered():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		s.loading = false
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) {
				s.deps.Log.Warn("quiz generation failed", "topic", s.topic, "error", msg.Err)
			}
			s.errMsg = FailedText
			return s, nil
		}
		s.session = qz.NewSession(s.topic, msg.Questions)
		s.resetChoice()
		return s, nil

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.spin++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, nil
	}
	if s.session.Finished() {
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.session.Answered() {
		if msg.String() == "enter" {
			s.session.Next()
			s.resetChoice()
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.session.Answer(s.choice.ChosenIndex)
	}
	return s, nil
}

func (s *QuizScreen) resetChoice() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options, q.CorrectAnswerIndex)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *QuizScreen) View(width, height int) string {
	cw := min(width-4, 90)

	var body string
	switch {
	case s.loading:
		body = theme.Hint.Render(layout.Spinner(s.spin) + " Building your quiz...")
	case s.errMsg != "":
		body = theme.ErrorText.Render(s.errMsg)
	case s.session.Finished():
		body = s.renderResult(cw)
	default:
		body = s.renderQuestion(cw)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(body)
}

func (s *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d · Score: %d", s.session.Index()+1, s.session.Total(), s.session.Score())))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(width))

	if s.session.Answered() {
		q, _ := s.session.Current()
		verdict := theme.Incorrect.Render("Not quite.")
		if s.choice.IsCorrect() {
			verdict = theme.Correct.Render("Correct!")
		}
		b.WriteString("\n")
		b.WriteString(verdict)
		b.WriteString("\n")
		b.WriteString(layout.Wrap(q.Explanation, width))
	}
	return b.String()
}

func (s *QuizScreen) renderResult(width int) string {
	res := s.session.Result()
	var b strings.Builder
	b.WriteString(layout.Centered(theme.Title.Render("Quiz complete"), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d%%", s.session.Percentage())), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint.Render(fmt.Sprintf("%d of %d correct on %s", res.Score, res.Total, res.Topic)), width))
	return b.String()
}
