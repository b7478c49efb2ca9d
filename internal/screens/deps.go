// Package screens holds the dependencies shared by the Cognito screens.
package screens

import (
	"github.com/Mahwas/Cognito/internal/logger"
	"github.com/Mahwas/Cognito/internal/planner"
	"github.com/Mahwas/Cognito/internal/quiz"
	"github.com/Mahwas/Cognito/internal/tutor"
)

// Deps are the services screens call into.
type Deps struct {
	Planner *planner.Service
	Quiz    *quiz.Generator
	Tutor   *tutor.Tutor
	Log     *logger.Logger

	// AIUnavailable is set when no model provider is configured.
	AIUnavailable bool
}
