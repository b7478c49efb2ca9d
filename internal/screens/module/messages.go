package module

import (
	"time"

	"github.com/Mahwas/Cognito/internal/planner"
	"github.com/Mahwas/Cognito/internal/tutor"
)

// contentMsg carries fetched guidance. Seq identifies the request so that
// answers to superseded requests are dropped.
type contentMsg struct {
	Seq    int
	Result planner.ContentResult
	Err    error
}

// replyMsg carries a tutor answer.
type replyMsg struct {
	Message tutor.Message
}

// completedMsg reports the outcome of marking the module done.
type completedMsg struct {
	Err error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time
