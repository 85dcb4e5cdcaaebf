package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"prepforge/internal/app/prompt"
	"prepforge/internal/common"
	"prepforge/internal/domain/model"
	"prepforge/internal/domain/repository"
	"prepforge/internal/llm"
	"prepforge/internal/platform/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PracticeService owns per-user practice questions: Markdown statements, a
// single solution template and an AI review verdict instead of test-case
// judging.
type PracticeService struct {
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	provider       llm.Provider
}

func NewPracticeService(
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	provider llm.Provider,
) *PracticeService {
	return &PracticeService{
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		provider:       provider,
	}
}

type GeneratePracticeRequest struct {
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic,omitempty"`
	Role       string `json:"role,omitempty"`
	Experience string `json:"experience,omitempty"`
	Language   string `json:"language,omitempty"`
}

type generatedPractice struct {
	Title            string `json:"title"`
	Prompt           string `json:"prompt"`
	SolutionTemplate string `json:"solutionTemplate"`
}

// Generate creates one practice question owned by the user. Same
// invariants as catalog generation: difficulty gate first, duplicate-title
// race under concurrency accepted.
func (s *PracticeService) Generate(ctx context.Context, userID string, req GeneratePracticeRequest) (*model.Question, error) {
	difficulty := model.QuestionDifficulty(req.Difficulty)
	if !model.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("difficulty must be one of Easy, Medium, Hard: %w", common.ErrValidation)
	}

	language := req.Language
	if language == "" {
		language = "javascript"
	}
	if !model.ValidLanguage(language) {
		return nil, fmt.Errorf("unsupported language %q: %w", req.Language, common.ErrValidation)
	}

	priorTitles, err := s.questionRepo.TitlesByDifficulty(ctx, model.ScopePractice, &userID, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior titles: %w", err)
	}

	userPrompt := prompt.BuildPracticePrompt(difficulty, req.Topic, req.Role, req.Experience, language, priorTitles, config.AppConfig.MaxPriorTitles)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      prompt.PracticeSystem(),
		Prompt:      userPrompt,
		Schema:      prompt.PracticeSchema,
		MaxTokens:   2048,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, wrapGenerationError(err)
	}

	var gen generatedPractice
	if err := json.Unmarshal(resp.Content, &gen); err != nil {
		return nil, fmt.Errorf("decode practice payload: %w", common.ErrUpstreamFormat)
	}

	question := &model.Question{
		ID:          uuid.NewString(),
		Scope:       model.ScopePractice,
		UserID:      &userID,
		Title:       gen.Title,
		Slug:        slug.Make(gen.Title),
		Description: gen.Prompt,
		Difficulty:  difficulty,
		Category:    req.Topic,
		StarterCode: map[string]string{language: gen.SolutionTemplate},
		Status:      model.StatusGenerated,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to store practice question: %w", err)
	}
	return question, nil
}

// ListByDifficulty returns the user's practice questions at one difficulty.
func (s *PracticeService) ListByDifficulty(ctx context.Context, userID, difficulty string, page, pageSize int) ([]model.Question, int, error) {
	if !model.ValidDifficulty(model.QuestionDifficulty(difficulty)) {
		return nil, 0, fmt.Errorf("invalid difficulty: %w", common.ErrValidation)
	}

	questions, total, err := s.questionRepo.List(ctx, repository.QuestionFilter{
		Scope:      model.ScopePractice,
		UserID:     &userID,
		Difficulty: model.QuestionDifficulty(difficulty),
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list practice questions: %w", err)
	}
	return questions, total, nil
}

// GetByID returns one of the user's practice questions. Another user's
// question is indistinguishable from an absent one.
func (s *PracticeService) GetByID(ctx context.Context, userID, questionID string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("practice question not found: %w", err)
	}
	if question.Scope != model.ScopePractice || question.UserID == nil || *question.UserID != userID {
		return nil, common.ErrNotFound
	}
	return question, nil
}

type SubmitPracticeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

type PracticeVerdict struct {
	Feedback  string `json:"feedback"` // Markdown review
	IsCorrect bool   `json:"isCorrect"`
}

// Submit reviews a practice solution. A correct verdict marks the question
// Solved exactly once (MarkSolved is idempotent); review failure degrades to
// a neutral incorrect verdict rather than blocking the user. The submission
// record and the question status update are two independent writes.
func (s *PracticeService) Submit(ctx context.Context, userID, questionID string, req SubmitPracticeRequest) (*PracticeVerdict, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("code is required: %w", common.ErrBadRequest)
	}
	language := req.Language
	if language == "" {
		language = "javascript"
	}
	if !model.ValidLanguage(language) {
		return nil, fmt.Errorf("unsupported language %q: %w", req.Language, common.ErrValidation)
	}

	question, err := s.GetByID(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}

	verdict := s.review(ctx, question, req.Code, language)

	status := model.StatusWrongAnswer
	if verdict.IsCorrect {
		status = model.StatusAccepted
	}
	submission := &model.Submission{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: question.ID,
		Code:       req.Code,
		Language:   language,
		Status:     status,
		Feedback:   &model.Feedback{Overall: verdict.Feedback},
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to store practice submission: %w", err)
	}

	if verdict.IsCorrect {
		if err := s.questionRepo.MarkSolved(ctx, question.ID); err != nil {
			// The submission is already persisted; a failed status flip is a
			// tolerable inconsistency reconciled by a later correct submit.
			log.Printf("mark solved failed for question %s: %v", question.ID, err)
		}
	}

	return verdict, nil
}

func (s *PracticeService) review(ctx context.Context, question *model.Question, code, language string) *PracticeVerdict {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    prompt.VerdictSystem(),
		Prompt:    prompt.BuildVerdictPrompt(question.Title, question.Description, code, language),
		Schema:    prompt.VerdictSchema,
		MaxTokens: 2048,
	})
	if err != nil {
		log.Printf("practice review unavailable for question %s: %v", question.ID, err)
		return &PracticeVerdict{
			Feedback:  "Automated review is temporarily unavailable. Your solution was recorded; try submitting again for feedback.",
			IsCorrect: false,
		}
	}

	verdict := &PracticeVerdict{}
	if err := json.Unmarshal(resp.Content, verdict); err != nil {
		log.Printf("practice verdict decode failed for question %s: %v", question.ID, err)
		return &PracticeVerdict{
			Feedback:  "Automated review is temporarily unavailable. Your solution was recorded; try submitting again for feedback.",
			IsCorrect: false,
		}
	}
	return verdict
}
