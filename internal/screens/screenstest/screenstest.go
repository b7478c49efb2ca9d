// Package screenstest builds screen dependencies backed by a temporary
// store and a mock provider.
package screenstest

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/Mahwas/Cognito/internal/curriculum"
	"github.com/Mahwas/Cognito/internal/guidance"
	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/logger"
	"github.com/Mahwas/Cognito/internal/planner"
	"github.com/Mahwas/Cognito/internal/quiz"
	"github.com/Mahwas/Cognito/internal/screens"
	"github.com/Mahwas/Cognito/internal/store"
	"github.com/Mahwas/Cognito/internal/tutor"
)

// PlanJSON is a two-module plan of 120 minutes.
const PlanJSON = `{"topic":"Rust","modules":[
	{"id":"borrowing","title":"Borrowing","description":"References and the borrow checker.","estimatedMinutes":60,"topics":["references","mutability"]},
	{"id":"lifetimes","title":"Lifetimes","description":"How long references live.","estimatedMinutes":60,"topics":["annotations"]}
]}`

// QuizJSON is a two-question quiz whose answers are option 0 then option 1.
const QuizJSON = `{"questions":[
	{"id":1,"question":"First?","options":["a","b","c","d"],"correctAnswerIndex":0,"explanation":"a is right"},
	{"id":2,"question":"Second?","options":["a","b","c","d"],"correctAnswerIndex":1,"explanation":"b is right"}
]}`

// Deps wires every service to mock and a fresh SQLite store.
func Deps(t testing.TB, mock *llm.MockProvider) screens.Deps {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "cognito.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := logger.Nop()
	return screens.Deps{
		Planner: planner.NewService(
			st.StateRepo(log),
			curriculum.NewGenerator(mock, curriculum.DefaultConfig()),
			guidance.NewFetcher(mock, guidance.DefaultConfig(), log),
			log,
		),
		Quiz:  quiz.NewGenerator(mock, quiz.DefaultConfig()),
		Tutor: tutor.New(mock, tutor.DefaultConfig(), log),
		Log:   log,
	}
}

// OpenPlan generates PlanJSON for topic through the planner.
func OpenPlan(t testing.TB, deps screens.Deps, mock *llm.MockProvider, topic string) {
	t.Helper()
	mock.AddResponse(llm.MockResponse{Content: json.RawMessage(PlanJSON)})
	if _, err := deps.Planner.Open(context.Background(), topic, 120); err != nil {
		t.Fatalf("open plan: %v", err)
	}
}
