// Package quiz generates short multiple-choice quizzes and scores them.
package quiz

// QuestionCount is the number of questions requested per quiz.
const QuestionCount = 5

// OptionCount is the number of options every question must have.
const OptionCount = 4

// Difficulty is the requested quiz difficulty.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Question is a single multiple-choice question.
type Question struct {
	ID                 int      `json:"id"`
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Valid reports whether the question can be asked: it has text, exactly
// OptionCount options and an answer index within range.
func (q Question) Valid() bool {
	return q.Question != "" &&
		len(q.Options) == OptionCount &&
		q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < len(q.Options)
}

// Result is the outcome of a finished quiz.
type Result struct {
	Score int
	Total int
	Topic string
}
