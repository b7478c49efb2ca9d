package guidance

import (
	"fmt"
	"strings"

	"github.com/Mahwas/Cognito/internal/study"
)

// Messages shown in place of generated advice.
const (
	DefaultAdvice = "Start with the basics and practice as you go."
	FailureAdvice = "Error fetching content. Please try again in a moment."
)

const liveSystemPrompt = `You are a study coach. Use web search to find high-quality, current learning material and give concise, practical advice.`

const fallbackSystemPrompt = `You are a study coach. Web search is unavailable, so explain from your own knowledge. Do not invent links, URLs or citations.`

// Input describes the module guidance is requested for.
type Input struct {
	PlanTopic string
	Title     string
	Topics    []string
	Minutes   int
}

// header names the plan, the module and its time budget.
func header(in Input) string {
	var b strings.Builder
	if in.PlanTopic != "" {
		fmt.Fprintf(&b, "Study plan: %s\n", in.PlanTopic)
	}
	fmt.Fprintf(&b, "Module: %s\n", in.Title)
	if in.Minutes > 0 {
		fmt.Fprintf(&b, "Time available: %s\n", study.FormatMinutes(in.Minutes))
	}
	return b.String()
}

func topicList(in Input) string {
	if len(in.Topics) == 0 {
		return in.Title
	}
	return strings.Join(in.Topics, ", ")
}

func buildLiveUserMessage(in Input) string {
	var b strings.Builder
	b.WriteString(header(in))
	fmt.Fprintf(&b, "Find the best online resources (articles, documentation, official guides, videos) to learn about: %s.\n", topicList(in))
	b.WriteString("Also provide brief strategic advice on how a student should approach learning this module specifically, within the time available.")
	return b.String()
}

func buildFallbackUserMessage(in Input) string {
	var b strings.Builder
	b.WriteString(header(in))
	fmt.Fprintf(&b, "Topics: %s\n", topicList(in))
	b.WriteString("Give concept-level guidance for studying this module: the key ideas in a sensible order, ")
	b.WriteString("common pitfalls, and how to practice in the time available. Describe kinds of resources worth looking for instead of naming links.")
	return b.String()
}
