package plan

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Mahwas/Cognito/internal/router"
	"github.com/Mahwas/Cognito/internal/screen"
	"github.com/Mahwas/Cognito/internal/screens"
	modulescreen "github.com/Mahwas/Cognito/internal/screens/module"
	quizscreen "github.com/Mahwas/Cognito/internal/screens/quiz"
	"github.com/Mahwas/Cognito/internal/study"
	"github.com/Mahwas/Cognito/internal/ui/components"
	"github.com/Mahwas/Cognito/internal/ui/layout"
	"github.com/Mahwas/Cognito/internal/ui/theme"
)

// PlanScreen lists the modules of the current plan.
type PlanScreen struct {
	deps   screens.Deps
	cursor int
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates a PlanScreen over the planner's current plan.
func New(deps screens.Deps) *PlanScreen {
	return &PlanScreen{deps: deps}
}

func (s *PlanScreen) Init() tea.Cmd {
	return nil
}

func (s *PlanScreen) Title() string {
	if p, ok := s.deps.Planner.Plan(); ok {
		return p.Topic
	}
	return "Study Plan"
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open module"},
		{Key: "Q", Description: "Quiz"},
		{Key: "Esc", Description: "New topic"},
	}
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	p, ok := s.deps.Planner.Plan()
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(p.Modules)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(p.Modules) {
			next := modulescreen.New(s.deps, p.Modules[s.cursor])
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	case "q":
		next := quizscreen.New(s.deps, p.Topic)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *PlanScreen) View(width, height int) string {
	p, ok := s.deps.Planner.Plan()
	if !ok {
		return layout.Centered(theme.Hint.Render("No plan loaded."), width)
	}
	completed := s.deps.Planner.Completed()
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	cw := min(width-4, 96)
	var b strings.Builder

	b.WriteString(theme.Title.Render(p.Topic))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d modules · %s total", len(p.Modules), study.FormatMinutes(p.TotalMinutes()))))
	b.WriteString("\n\n")

	percent := 0.0
	if len(p.Modules) > 0 {
		percent = float64(len(completed)) / float64(len(p.Modules))
	}
	b.WriteString(components.NewProgressBar("Progress", percent, true, cw).View())
	b.WriteString("\n\n")

	for i, m := range p.Modules {
		b.WriteString(renderModule(i, m, done[m.ID], i == s.cursor, cw))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(b.String())
}

func renderModule(i int, m study.Module, done, selected bool, width int) string {
	mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
	if done {
		mark = theme.Done.Render("✓")
	}
	prefix := "  "
	titleStyle := theme.Unselected
	if selected {
		prefix = "▸ "
		titleStyle = theme.Selected
	}

	head := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, titleStyle.Render(m.Title))
	minutes := theme.Hint.Render(study.FormatMinutes(m.EstimatedMinutes))
	gap := max(width-lipgloss.Width(head)-lipgloss.Width(minutes), 1)

	line := head + strings.Repeat(" ", gap) + minutes
	if !selected {
		return line
	}
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width - 6).PaddingLeft(6).Render(m.Description)
	if len(m.Topics) > 0 {
		desc += "\n" + lipgloss.NewStyle().PaddingLeft(6).Render(theme.Tag.Render(strings.Join(m.Topics, " · ")))
	}
	return line + "\n" + desc
}
