package module

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Mahwas/Cognito/internal/guidance"
	"github.com/Mahwas/Cognito/internal/tutor"
	"github.com/Mahwas/Cognito/internal/ui/layout"
	"github.com/Mahwas/Cognito/internal/ui/theme"
)

func (s *ModuleScreen) View(width, height int) string {
	cw := min(width-4, 100)

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.module.Title))
	b.WriteString("\n")
	if len(s.module.Topics) > 0 {
		b.WriteString(theme.Tag.Render(strings.Join(s.module.Topics, " · ")))
		b.WriteString("\n")
	}
	if s.deps.Planner.IsCompleted(s.module.ID) {
		b.WriteString(theme.Done.Render("✓ Completed"))
		b.WriteString("\n")
	}
	if s.doneErr != "" {
		b.WriteString(theme.ErrorText.Render(s.doneErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.renderTabs())
	b.WriteString("\n\n")

	bodyHeight := max(height-lipgloss.Height(b.String())-1, 1)
	if s.tab == tabTutor {
		b.WriteString(s.renderChat(cw, bodyHeight))
	} else {
		b.WriteString(s.renderGuidance(cw))
	}

	return lipgloss.NewStyle().Width(width).MaxHeight(height).Padding(0, 2).Render(b.String())
}

func (s *ModuleScreen) renderTabs() string {
	guidanceTab, tutorTab := theme.TabInactive, theme.TabInactive
	if s.tab == tabGuidance {
		guidanceTab = theme.TabActive
	} else {
		tutorTab = theme.TabActive
	}
	return guidanceTab.Render("Resources & Guidance") + tutorTab.Render("Interactive Tutor")
}

func (s *ModuleScreen) renderGuidance(width int) string {
	if s.loading {
		return theme.Hint.Render(layout.Spinner(s.spin) + " Curating the best material for you...")
	}
	if s.errMsg != "" {
		return theme.ErrorText.Render(s.errMsg)
	}
	if s.content == nil {
		return ""
	}

	var b strings.Builder
	c := s.content.Content

	switch s.content.State {
	case guidance.SuccessDegraded:
		b.WriteString(theme.Warning.Render("Live search was unavailable. This guidance was written without web sources. Press R to retry."))
		b.WriteString("\n\n")
	case guidance.HardFailure:
		b.WriteString(theme.ErrorText.Render(c.Advice))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press R to retry."))
		return b.String()
	}

	b.WriteString(theme.Selected.Render("Strategic advice"))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(c.Advice, width))
	b.WriteString("\n\n")

	if len(c.Resources) == 0 {
		return b.String()
	}
	b.WriteString(theme.Selected.Render("Resources"))
	b.WriteString("\n")
	for i, r := range c.Resources {
		b.WriteString(fmt.Sprintf("%d. %s  %s\n", i+1, theme.Body.Render(r.Title), theme.Hint.Render(r.Source)))
		b.WriteString("   " + lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(r.URL) + "\n")
	}
	return b.String()
}

func (s *ModuleScreen) renderChat(width, height int) string {
	var lines []string
	for _, m := range s.transcript {
		lines = append(lines, renderMessage(m, width), "")
	}
	if s.waiting {
		lines = append(lines, theme.Hint.Render(layout.Spinner(s.spin)+" Tutor is thinking..."), "")
	}

	input := theme.Card.Width(width).Render(s.input.View())
	avail := max(height-lipgloss.Height(input), 1)

	// Keep the newest messages in view.
	chat := strings.Join(lines, "\n")
	if rows := strings.Split(chat, "\n"); len(rows) > avail {
		chat = strings.Join(rows[len(rows)-avail:], "\n")
	}
	return chat + "\n" + input
}

func renderMessage(m tutor.Message, width int) string {
	if m.Role == tutor.RoleUser {
		return theme.ChatUser.Render("You: ") + layout.Wrap(m.Text, width-5)
	}
	return theme.ChatModel.Render("Tutor: ") + layout.Wrap(m.Text, width-7)
}
