package model

import "time"

type QuestionDifficulty string
type QuestionStatus string
type QuestionScope string

const (
	DifficultyEasy   QuestionDifficulty = "Easy"
	DifficultyMedium QuestionDifficulty = "Medium"
	DifficultyHard   QuestionDifficulty = "Hard"

	StatusGenerated QuestionStatus = "Generated"
	StatusSolved    QuestionStatus = "Solved"

	// Catalog questions are shared; practice questions belong to one user.
	ScopeCatalog  QuestionScope = "catalog"
	ScopePractice QuestionScope = "practice"
)

// PointsFor is the leaderboard value of a solved question.
func PointsFor(d QuestionDifficulty) int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 25
	case DifficultyHard:
		return 50
	default:
		return 0
	}
}

func ValidDifficulty(d QuestionDifficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type Question struct {
	ID          string             `json:"id"`
	Scope       QuestionScope      `json:"scope"`
	UserID      *string            `json:"user_id,omitempty"` // nil for catalog questions
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"` // Markdown for practice questions
	Difficulty  QuestionDifficulty `json:"difficulty"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags,omitempty"`
	StarterCode map[string]string  `json:"starter_code,omitempty"` // keyed by language slug
	Examples    []Example          `json:"examples,omitempty"`
	TestCases   []TestCase         `json:"-"` // judging only, never serialized
	Hints       []string           `json:"hints,omitempty"`
	Status      QuestionStatus     `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	Hidden         bool   `json:"hidden"`
}
