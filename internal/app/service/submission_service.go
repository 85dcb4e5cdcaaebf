package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"prepforge/internal/app/judge"
	"prepforge/internal/app/prompt"
	"prepforge/internal/common"
	"prepforge/internal/domain/model"
	"prepforge/internal/domain/repository"
	"prepforge/internal/llm"

	"github.com/google/uuid"
)

// SubmissionService runs the catalog submission pipeline: judge the code,
// ask the model for a critique, persist the attempt, flip question status on
// acceptance.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	questionRepo   repository.QuestionRepository
	judge          judge.Judge
	provider       llm.Provider
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	questionRepo repository.QuestionRepository,
	j judge.Judge,
	provider llm.Provider,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		questionRepo:   questionRepo,
		judge:          j,
		provider:       provider,
	}
}

type CreateSubmissionRequest struct {
	QuestionID string `json:"questionId"`
	Code       string `json:"code"`
	Language   string `json:"language"`
}

// SubmissionResult pairs the stored record with the per-test breakdown,
// which is returned but never persisted.
type SubmissionResult struct {
	Submission  *model.Submission  `json:"submission"`
	TestResults []judge.TestResult `json:"test_results"`
}

func (s *SubmissionService) Create(ctx context.Context, userID string, req CreateSubmissionRequest) (*SubmissionResult, error) {
	if req.QuestionID == "" || req.Code == "" {
		return nil, fmt.Errorf("questionId and code are required: %w", common.ErrBadRequest)
	}
	if !model.ValidLanguage(req.Language) {
		return nil, fmt.Errorf("unsupported language %q: %w", req.Language, common.ErrValidation)
	}

	// Test cases are needed here for judging; they are stripped from every
	// client-facing serialization of the question itself.
	question, err := s.questionRepo.FindByID(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("question not found: %w", err)
	}

	result, err := s.judge.Execute(ctx, req.Code, req.Language, question.TestCases)
	if err != nil {
		return nil, fmt.Errorf("execution failed: %w", err)
	}

	feedback := s.generateFeedback(ctx, question, req.Code, req.Language, result)

	submission := &model.Submission{
		ID:              uuid.NewString(),
		UserID:          userID,
		QuestionID:      question.ID,
		Code:            req.Code,
		Language:        req.Language,
		Status:          result.Status,
		ExecutionTimeMs: result.ExecutionTimeMs,
		MemoryKb:        result.MemoryKb,
		TestCasesPassed: result.Passed,
		TotalTestCases:  result.Total,
		Feedback:        feedback,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	if result.Status == model.StatusAccepted {
		// Second, independent write; no atomicity with the insert above. A
		// crash in between leaves an Accepted submission against a
		// still-Generated question, reconciled by the next accepted submit.
		if err := s.questionRepo.MarkSolved(ctx, question.ID); err != nil {
			log.Printf("mark solved failed for question %s: %v", question.ID, err)
		}
	}

	return &SubmissionResult{Submission: submission, TestResults: result.Results}, nil
}

// generatedFeedback mirrors the code-feedback response contract.
type generatedFeedback struct {
	Overall         string   `json:"overall"`
	CodeQuality     string   `json:"codeQuality"`
	TimeComplexity  string   `json:"timeComplexity"`
	SpaceComplexity string   `json:"spaceComplexity"`
	Suggestions     []string `json:"suggestions"`
	Score           int      `json:"score"`
}

// generateFeedback asks the model for a structured critique. This path is
// best-effort: any upstream or parse failure yields the fixed neutral
// fallback instead of an error, unlike the user-blocking generation path.
func (s *SubmissionService) generateFeedback(ctx context.Context, question *model.Question, code, language string, result *judge.ExecutionResult) *model.Feedback {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: prompt.FeedbackSystem(),
		Prompt: prompt.BuildFeedbackPrompt(
			question.Title, question.Description, question.Difficulty,
			code, language, result.Status, result.Passed, result.Total,
		),
		Schema:    prompt.FeedbackSchema,
		MaxTokens: 2048,
	})
	if err != nil {
		log.Printf("feedback generation failed for question %s: %v", question.ID, err)
		return fallbackFeedback(result.Status)
	}

	var gen generatedFeedback
	if err := json.Unmarshal(resp.Content, &gen); err != nil {
		log.Printf("feedback decode failed for question %s: %v", question.ID, err)
		return fallbackFeedback(result.Status)
	}
	if gen.Score < 0 {
		gen.Score = 0
	}
	if gen.Score > 100 {
		gen.Score = 100
	}
	return &model.Feedback{
		Overall:         gen.Overall,
		CodeQuality:     gen.CodeQuality,
		TimeComplexity:  gen.TimeComplexity,
		SpaceComplexity: gen.SpaceComplexity,
		Suggestions:     gen.Suggestions,
		Score:           gen.Score,
	}
}

// fallbackFeedback is the fixed neutral critique used when the model call
// fails: 85 for accepted runs, 60 otherwise.
func fallbackFeedback(status model.SubmissionStatus) *model.Feedback {
	score := 60
	overall := "Your solution did not pass all test cases. Review the failing cases and edge conditions."
	if status == model.StatusAccepted {
		score = 85
		overall = "Your solution passed all test cases. Well done."
	}
	return &model.Feedback{
		Overall:         overall,
		CodeQuality:     "Automated review was unavailable for this submission.",
		TimeComplexity:  "Not analyzed",
		SpaceComplexity: "Not analyzed",
		Suggestions:     []string{"Resubmit later for a detailed AI review."},
		Score:           score,
	}
}

// GetByID returns one submission. Other users' submissions are reported as
// not found rather than forbidden so their ids cannot be probed.
func (s *SubmissionService) GetByID(ctx context.Context, userID, id string) (*model.Submission, error) {
	sub, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, common.ErrNotFound
	}
	return sub, nil
}

// ListByUser returns the user's submission history, newest first, with
// question metadata joined in.
func (s *SubmissionService) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Submission, int, error) {
	submissions, total, err := s.submissionRepo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, total, nil
}
