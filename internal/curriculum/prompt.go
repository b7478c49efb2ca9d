package curriculum

import (
	"fmt"
	"strings"
)

const planSystemPrompt = `You are an expert curriculum designer. Create structured, engaging learning paths that respect the learner's time constraints.`

func buildPlanUserMessage(topic string, budgetMinutes int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a step-by-step study plan for learning: %q.\n", topic)
	if n := ModuleCount(budgetMinutes); n > 0 {
		fmt.Fprintf(&b, "The learner wants to spend approximately %d minutes in total. ", budgetMinutes)
		fmt.Fprintf(&b, "Plan %d module(s) and fit the depth of each to that timeframe; the module minutes should add up to roughly %d.\n", n, budgetMinutes)
	} else {
		b.WriteString("Create a comprehensive plan with a realistic timeframe.\n")
	}
	b.WriteString("Break it down into distinct modules, each with a unique id.\n")
	b.WriteString("Return JSON only.")

	return b.String()
}
