package module

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Mahwas/Cognito/internal/planner"
	"github.com/Mahwas/Cognito/internal/router"
	"github.com/Mahwas/Cognito/internal/screen"
	"github.com/Mahwas/Cognito/internal/screens"
	"github.com/Mahwas/Cognito/internal/study"
	"github.com/Mahwas/Cognito/internal/tutor"
	"github.com/Mahwas/Cognito/internal/ui/components"
	"github.com/Mahwas/Cognito/internal/ui/layout"
)

type tab int

const (
	tabGuidance tab = iota
	tabTutor
)

// ModuleScreen shows guidance for one module and hosts its tutor chat.
type ModuleScreen struct {
	deps   screens.Deps
	module study.Module

	tab     tab
	seq     int
	loading bool
	content *planner.ContentResult
	errMsg  string
	spin    int

	// doneErr reports a failed mark-done; it never enables retry.
	doneErr string

	transcript []tutor.Message
	input      components.TextInput
	waiting    bool

	// ctx scopes tutor requests to the screen's lifetime.
	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*ModuleScreen)(nil)
var _ screen.KeyHintProvider = (*ModuleScreen)(nil)
var _ screen.Closer = (*ModuleScreen)(nil)

// New creates a ModuleScreen for m.
func New(deps screens.Deps, m study.Module) *ModuleScreen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &ModuleScreen{
		deps:   deps,
		module: m,
		input:  components.NewTextInput("Ask your tutor...", 500),
		ctx:    ctx,
		cancel: cancel,
	}
	s.input.Blur()
	s.transcript = []tutor.Message{deps.Tutor.Greeting(m.Title, m.Topics)}
	return s
}

func (s *ModuleScreen) Init() tea.Cmd {
	return s.load(false)
}

func (s *ModuleScreen) Title() string {
	return s.module.Title
}

// Close cancels an in-flight tutor request. Guidance fetches keep running
// so their result still lands in the plan.
func (s *ModuleScreen) Close() {
	s.cancel()
}

func (s *ModuleScreen) KeyHints() []layout.KeyHint {
	if s.tab == tabTutor {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Tab", Description: "Guidance"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Tutor"},
		{Key: "D", Description: "Mark done"},
	}
	if s.canRetry() {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ModuleScreen) canRetry() bool {
	return !s.loading && (s.errMsg != "" || (s.content != nil && s.content.Degraded()))
}

func (s *ModuleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		res := msg.Result
		s.content = &res
		return s, nil

	case replyMsg:
		s.waiting = false
		s.transcript = append(s.transcript, msg.Message)
		return s, nil

	case completedMsg:
		if msg.Err != nil {
			s.doneErr = "Couldn't mark the module done: " + msg.Err.Error()
			return s, nil
		}
		s.doneErr = ""
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case spinnerTickMsg:
		if !s.loading && !s.waiting {
			return s, nil
		}
		s.spin++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.tab == tabTutor {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ModuleScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "tab" {
		if s.tab == tabGuidance {
			s.tab = tabTutor
			return s, s.input.Focus()
		}
		s.tab = tabGuidance
		s.input.Blur()
		return s, nil
	}

	if s.tab == tabTutor {
		if key == "enter" {
			return s, s.send()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "r":
		if s.canRetry() {
			return s, s.load(true)
		}
	case "d":
		return s, s.markDone()
	}
	return s, nil
}

// load requests guidance. force bypasses the module's cached content.
func (s *ModuleScreen) load(force bool) tea.Cmd {
	s.seq++
	s.loading = true
	seq, id, p := s.seq, s.module.ID, s.deps.Planner

	fetch := func() tea.Msg {
		var (
			res planner.ContentResult
			err error
		)
		if force {
			res, err = p.RetryModuleContent(context.Background(), id)
		} else {
			res, err = p.ModuleContent(context.Background(), id)
		}
		return contentMsg{Seq: seq, Result: res, Err: err}
	}
	return tea.Batch(fetch, spinnerTick())
}

func (s *ModuleScreen) send() tea.Cmd {
	if s.waiting || s.input.Blank() {
		return nil
	}
	text := s.input.Value()
	s.input.Reset()

	prior := make([]tutor.Message, len(s.transcript))
	copy(prior, s.transcript)
	s.transcript = append(s.transcript, s.deps.Tutor.NewMessage(tutor.RoleUser, text))
	s.waiting = true

	ctx, t, title := s.ctx, s.deps.Tutor, s.module.Title
	reply := func() tea.Msg {
		return replyMsg{Message: t.Reply(ctx, title, prior, text)}
	}
	return tea.Batch(reply, spinnerTick())
}

func (s *ModuleScreen) markDone() tea.Cmd {
	p, id := s.deps.Planner, s.module.ID
	return func() tea.Msg {
		return completedMsg{Err: p.MarkComplete(context.Background(), id)}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
