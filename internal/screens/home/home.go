package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Mahwas/Cognito/internal/curriculum"
	"github.com/Mahwas/Cognito/internal/router"
	"github.com/Mahwas/Cognito/internal/screen"
	"github.com/Mahwas/Cognito/internal/screens"
	planscreen "github.com/Mahwas/Cognito/internal/screens/plan"
	"github.com/Mahwas/Cognito/internal/study"
	"github.com/Mahwas/Cognito/internal/ui/components"
	"github.com/Mahwas/Cognito/internal/ui/layout"
	"github.com/Mahwas/Cognito/internal/ui/theme"
)

// CreateFailedText is shown when plan creation fails.
const CreateFailedText = "Failed to create study plan. Please try a different topic or try again later."

// savedCheckedMsg reports whether a saved plan exists.
type savedCheckedMsg struct {
	HasSaved bool
}

// planReadyMsg is sent when a plan was opened or generated.
type planReadyMsg struct {
	Plan study.Plan
	Err  error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time

// HomeScreen takes a topic and a time budget and opens a plan.
type HomeScreen struct {
	deps     screens.Deps
	input    components.TextInput
	budget   int // index into curriculum.TimeOptions
	hasSaved bool
	loading  bool
	spin     int
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	return &HomeScreen{
		deps:   deps,
		input:  components.NewTextInput("What do you want to learn?", 120),
		budget: curriculum.DefaultTimeOption(),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return tea.Batch(h.input.Init(), h.checkSaved())
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.loading {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Create plan"},
		{Key: "Tab", Description: "Time budget"},
	}
	if h.showContinue() {
		hints[0] = layout.KeyHint{Key: "Enter", Description: "Continue saved plan"}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// showContinue reports whether Enter resumes the saved plan.
func (h *HomeScreen) showContinue() bool {
	return h.hasSaved && h.input.Blank()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedCheckedMsg:
		h.hasSaved = msg.HasSaved
		return h, nil

	case planReadyMsg:
		h.loading = false
		if msg.Err != nil {
			h.deps.Log.Warn("open plan failed", "error", msg.Err)
			h.errMsg = CreateFailedText
			return h, nil
		}
		h.errMsg = ""
		h.hasSaved = true
		h.input.Reset()
		next := planscreen.New(h.deps)
		return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case spinnerTickMsg:
		if !h.loading {
			return h, nil
		}
		h.spin++
		return h, spinnerTick()

	case tea.KeyMsg:
		if h.loading {
			return h, nil
		}
		switch msg.String() {
		case "enter":
			return h, h.submit()
		case "tab":
			h.budget = (h.budget + 1) % len(curriculum.TimeOptions)
			return h, nil
		case "shift+tab":
			h.budget = (h.budget + len(curriculum.TimeOptions) - 1) % len(curriculum.TimeOptions)
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) submit() tea.Cmd {
	topic := strings.TrimSpace(h.input.Value())
	if topic == "" {
		if !h.hasSaved {
			return nil
		}
		h.loading = true
		h.errMsg = ""
		return tea.Batch(h.loadSaved(), spinnerTick())
	}

	h.loading = true
	h.errMsg = ""
	minutes := curriculum.TimeOptions[h.budget].Minutes
	return tea.Batch(h.openPlan(topic, minutes), spinnerTick())
}

func (h *HomeScreen) checkSaved() tea.Cmd {
	p := h.deps.Planner
	return func() tea.Msg {
		return savedCheckedMsg{HasSaved: p.HasSaved(context.Background())}
	}
}

func (h *HomeScreen) openPlan(topic string, minutes int) tea.Cmd {
	p := h.deps.Planner
	return func() tea.Msg {
		plan, err := p.Open(context.Background(), topic, minutes)
		return planReadyMsg{Plan: plan, Err: err}
	}
}

func (h *HomeScreen) loadSaved() tea.Cmd {
	p := h.deps.Planner
	return func() tea.Msg {
		plan, err := p.LoadSaved(context.Background())
		return planReadyMsg{Plan: plan, Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 72)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Learn anything, one module at a time"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Enter a topic and Cognito builds a study plan around your time."))
	b.WriteString("\n\n")

	b.WriteString(theme.Card.Width(cw).Render(h.input.View()))
	b.WriteString("\n\n")
	b.WriteString(h.renderBudgets(cw))
	b.WriteString("\n\n")

	switch {
	case h.loading:
		b.WriteString(layout.Centered(theme.Hint.Render(layout.Spinner(h.spin)+" Designing your curriculum..."), cw))
	case h.errMsg != "":
		b.WriteString(layout.Centered(theme.ErrorText.Render(h.errMsg), cw))
	case h.showContinue():
		b.WriteString(layout.Centered(theme.Warning.Render("Press Enter to continue your saved plan"), cw))
	}

	if h.deps.AIUnavailable {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Hint.Render("No AI provider configured: only saved plans are available."), cw))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func (h *HomeScreen) renderBudgets(width int) string {
	parts := make([]string, 0, len(curriculum.TimeOptions))
	for i, opt := range curriculum.TimeOptions {
		if i == h.budget {
			parts = append(parts, theme.ButtonActive.Render(opt.Label))
		} else {
			parts = append(parts, theme.TabInactive.Render(opt.Label))
		}
	}
	return layout.Centered(lipgloss.JoinHorizontal(lipgloss.Center, parts...), width)
}
