package prompt

import "prepforge/internal/llm"

// QuestionSchema is the response contract for catalog question generation.
var QuestionSchema = &llm.Schema{
	Name: "catalog-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string", "minLength": 1},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"Easy", "Medium", "Hard"},
			},
			"category": map[string]any{"type": "string"},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"starterCode": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"javascript": map[string]any{"type": "string"},
					"python":     map[string]any{"type": "string"},
					"java":       map[string]any{"type": "string"},
					"cpp":        map[string]any{"type": "string"},
				},
				"required": []any{"javascript", "python", "java", "cpp"},
			},
			"examples": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"input":       map[string]any{"type": "string"},
						"output":      map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"input", "output"},
				},
			},
			"testCases": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"input":          map[string]any{"type": "string"},
						"expectedOutput": map[string]any{"type": "string"},
						"hidden":         map[string]any{"type": "boolean"},
					},
					"required": []any{"input", "expectedOutput"},
				},
			},
			"hints": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "description", "difficulty", "starterCode", "examples", "testCases"},
	},
}

// PracticeSchema is the response contract for per-user practice questions.
var PracticeSchema = &llm.Schema{
	Name: "practice-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":            map[string]any{"type": "string", "minLength": 1},
			"prompt":           map[string]any{"type": "string", "minLength": 1},
			"solutionTemplate": map[string]any{"type": "string"},
		},
		"required": []any{"title", "prompt", "solutionTemplate"},
	},
}

// FeedbackSchema is the response contract for the submission critique.
var FeedbackSchema = &llm.Schema{
	Name: "code-feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall":         map[string]any{"type": "string"},
			"codeQuality":     map[string]any{"type": "string"},
			"timeComplexity":  map[string]any{"type": "string"},
			"spaceComplexity": map[string]any{"type": "string"},
			"suggestions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
		},
		"required": []any{"overall", "codeQuality", "timeComplexity", "spaceComplexity", "suggestions", "score"},
	},
}

// VerdictSchema is the response contract for practice solution review.
var VerdictSchema = &llm.Schema{
	Name: "practice-verdict",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback":  map[string]any{"type": "string", "minLength": 1},
			"isCorrect": map[string]any{"type": "boolean"},
		},
		"required": []any{"feedback", "isCorrect"},
	},
}

// QuizSchema is the response contract for quiz generation: a JSON array of
// four-option multiple-choice items.
var QuizSchema = &llm.Schema{
	Name: "quiz",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"minItems": 4,
					"maxItems": 4,
					"items":    map[string]any{"type": "string"},
				},
				"correctAnswer": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	},
}

// ResumeSchema is the response contract for resume analysis.
var ResumeSchema = &llm.Schema{
	Name: "resume-report",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "minLength": 1},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"weaknesses": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"suggestions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
		},
		"required": []any{"summary", "strengths", "weaknesses", "suggestions", "score"},
	},
}
