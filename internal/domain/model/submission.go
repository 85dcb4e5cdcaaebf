package model

import "time"

type SubmissionStatus string

const (
	StatusPending           SubmissionStatus = "Pending"
	StatusAccepted          SubmissionStatus = "Accepted"
	StatusWrongAnswer       SubmissionStatus = "WrongAnswer"
	StatusTimeLimitExceeded SubmissionStatus = "TimeLimitExceeded"
	StatusRuntimeError      SubmissionStatus = "RuntimeError"
	StatusCompilationError  SubmissionStatus = "CompilationError"
)

// Submission is append-only: code, status and score never change after creation.
type Submission struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	QuestionID      string           `json:"question_id"`
	Code            string           `json:"code"`
	Language        string           `json:"language"`
	Status          SubmissionStatus `json:"status"`
	ExecutionTimeMs int              `json:"execution_time_ms"`
	MemoryKb        int              `json:"memory_kb"` // simulated
	TestCasesPassed int              `json:"test_cases_passed"`
	TotalTestCases  int              `json:"total_test_cases"`
	Feedback        *Feedback        `json:"feedback,omitempty"`
	SubmittedAt     time.Time        `json:"submitted_at"`

	// Joined question metadata for history listings. A question deleted after
	// the submission shows up as "Deleted Question".
	QuestionTitle      *string             `json:"question_title,omitempty"`
	QuestionDifficulty *QuestionDifficulty `json:"question_difficulty,omitempty"`
	QuestionCategory   *string             `json:"question_category,omitempty"`
}

// Feedback is the structured AI critique of a submission.
type Feedback struct {
	Overall         string   `json:"overall"`
	CodeQuality     string   `json:"code_quality"`
	TimeComplexity  string   `json:"time_complexity"`
	SpaceComplexity string   `json:"space_complexity"`
	Suggestions     []string `json:"suggestions"`
	Score           int      `json:"score"` // 0-100
}
