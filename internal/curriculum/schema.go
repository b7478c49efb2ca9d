package curriculum

import "github.com/Mahwas/Cognito/internal/llm"

// PlanSchema defines the JSON schema for study plan generation.
var PlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "An ordered study plan split into timed modules",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The subject being studied, as the learner phrased it",
			},
			"modules": map[string]any{
				"type":        "array",
				"description": "Modules in the order they should be studied",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Short unique kebab-case identifier",
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Module title (3-8 words)",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "What the learner will be able to do afterwards (1-2 sentences)",
						},
						"estimatedMinutes": map[string]any{
							"type":        "integer",
							"description": "Expected study time for this module in minutes",
						},
						"topics": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "3-6 subtopics covered",
						},
					},
					"required":             []any{"id", "title", "description", "estimatedMinutes", "topics"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topic", "modules"},
		"additionalProperties": false,
	},
}
