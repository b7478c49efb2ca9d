package quiz

import "fmt"

const quizSystemPrompt = `You write multiple-choice quiz questions for self-study. Each question has exactly one correct option, plausible distractors and a short explanation. Return JSON only.`

func buildQuizUserMessage(topic string, d Difficulty) string {
	return fmt.Sprintf(
		"Generate %d multiple-choice questions about %q at a %s difficulty level.\nProvide %d options for each question.",
		QuestionCount, topic, d, OptionCount,
	)
}
