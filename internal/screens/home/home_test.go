package home

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahwas/Cognito/internal/curriculum"
	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/router"
	"github.com/Mahwas/Cognito/internal/screens/screenstest"
)

func TestHomeScreen_Title(t *testing.T) {
	h := New(screenstest.Deps(t, llm.NewMockProvider()))
	assert.Equal(t, "Home", h.Title())
}

func TestHomeScreen_BlankTopicWithoutSavedPlanDoesNothing(t *testing.T) {
	h := New(screenstest.Deps(t, llm.NewMockProvider()))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, h.loading)
}

func TestHomeScreen_CreatesPlan(t *testing.T) {
	mock := llm.NewMockProvider()
	h := New(screenstest.Deps(t, mock))
	h.input.Model.SetValue("  Rust  ")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, h.loading)

	mock.AddResponse(llm.MockResponse{Content: []byte(screenstest.PlanJSON)})
	msg := h.openPlan("Rust", curriculum.TimeOptions[h.budget].Minutes)()

	_, cmd = h.Update(msg)
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected push of the plan screen")
	assert.Equal(t, "Rust", push.Screen.Title())
	assert.False(t, h.loading)
	assert.True(t, h.input.Blank())

	assert.Contains(t, mock.Call(0).Messages[0].Content, "120 minutes")
}

func TestHomeScreen_CreateFailureShowsInlineError(t *testing.T) {
	h := New(screenstest.Deps(t, llm.NewMockProvider()))
	h.loading = true

	_, cmd := h.Update(planReadyMsg{Err: errors.New("quota")})
	assert.Nil(t, cmd)
	assert.False(t, h.loading)
	assert.Equal(t, CreateFailedText, h.errMsg)
	assert.Contains(t, h.View(100, 30), "Failed to create study plan")
}

func TestHomeScreen_ContinueSavedPlan(t *testing.T) {
	mock := llm.NewMockProvider()
	deps := screenstest.Deps(t, mock)
	screenstest.OpenPlan(t, deps, mock, "Rust")

	h := New(deps)
	h.Update(h.checkSaved()())
	require.True(t, h.showContinue())
	assert.Equal(t, "Continue saved plan", h.KeyHints()[0].Description)

	h.input.Model.SetValue("Go")
	assert.False(t, h.showContinue())
	h.input.Reset()

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, cmd = h.Update(h.loadSaved()())
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PushScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, mock.CallCount(), "continuing must not generate")
}

func TestHomeScreen_TabCyclesBudget(t *testing.T) {
	h := New(screenstest.Deps(t, llm.NewMockProvider()))
	start := h.budget

	for range curriculum.TimeOptions {
		h.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	assert.Equal(t, start, h.budget)

	h.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, (start+len(curriculum.TimeOptions)-1)%len(curriculum.TimeOptions), h.budget)
}
