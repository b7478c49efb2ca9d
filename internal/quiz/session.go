package quiz

import "math"

// Session scores one pass through a list of questions. Each question is
// locked on its first answer; the session only moves forward.
type Session struct {
	topic     string
	questions []Question
	current   int
	selected  int // -1 until the current question is answered
	score     int
	finished  bool
}

// NewSession starts a session. A session without questions is finished
// from the start.
func NewSession(topic string, questions []Question) *Session {
	return &Session{
		topic:     topic,
		questions: questions,
		selected:  -1,
		finished:  len(questions) == 0,
	}
}

// Current returns the question being asked.
func (s *Session) Current() (Question, bool) {
	if s.finished {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.current }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Answered reports whether the current question is locked.
func (s *Session) Answered() bool { return s.selected >= 0 }

// Selected returns the locked option of the current question, or -1.
func (s *Session) Selected() int { return s.selected }

// Finished reports whether every question has been answered and passed.
func (s *Session) Finished() bool { return s.finished }

// Answer locks option i for the current question and reports whether it was
// correct. Repeated answers and out-of-range options are ignored and return
// false.
func (s *Session) Answer(i int) bool {
	if s.finished || s.Answered() {
		return false
	}
	q := s.questions[s.current]
	if i < 0 || i >= len(q.Options) {
		return false
	}
	s.selected = i
	if i == q.CorrectAnswerIndex {
		s.score++
		return true
	}
	return false
}

// Next moves past an answered question. From the last question it finishes
// the session. Unanswered questions cannot be skipped.
func (s *Session) Next() {
	if s.finished || !s.Answered() {
		return
	}
	if s.current == len(s.questions)-1 {
		s.finished = true
		return
	}
	s.current++
	s.selected = -1
}

// Percentage returns the rounded share of correct answers, 0 for an empty
// session.
func (s *Session) Percentage() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.score) / float64(len(s.questions)) * 100))
}

// Result returns the session outcome so far.
func (s *Session) Result() Result {
	return Result{Score: s.score, Total: len(s.questions), Topic: s.topic}
}
