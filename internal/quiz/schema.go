package quiz

import "github.com/gravitdam/gravitdam/internal/llm"

// ExamSchema constrains the structured quiz response.
var ExamSchema = &llm.Schema{
	Name:        "exam_questions",
	Description: "A batch of multiple choice questions about gravity dam engineering",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type": "string",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
						},
						"correctAnswer": map[string]any{
							"type":        "number",
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type": "string",
						},
					},
					"required":             []any{"question", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
