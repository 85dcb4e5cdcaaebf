package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"prepforge/internal/app/prompt"
	"prepforge/internal/common"
	"prepforge/internal/domain/model"
	"prepforge/internal/domain/repository"
	"prepforge/internal/llm"
	"prepforge/internal/platform/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// QuestionService owns the shared catalog: AI generation, filtered listing
// and single-question reads.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	provider     llm.Provider
}

func NewQuestionService(questionRepo repository.QuestionRepository, provider llm.Provider) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, provider: provider}
}

type GenerateQuestionRequest struct {
	Difficulty string `json:"difficulty"`
	Category   string `json:"category,omitempty"`
	// Language is accepted for compatibility and validated, but generated
	// questions always carry starter code for every supported language.
	Language string `json:"language,omitempty"`
}

// generatedQuestion mirrors the catalog-question response contract.
type generatedQuestion struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Difficulty  string            `json:"difficulty"`
	Category    string            `json:"category"`
	Tags        []string          `json:"tags"`
	StarterCode map[string]string `json:"starterCode"`
	Examples    []struct {
		Input       string `json:"input"`
		Output      string `json:"output"`
		Explanation string `json:"explanation"`
	} `json:"examples"`
	TestCases []struct {
		Input          string `json:"input"`
		ExpectedOutput string `json:"expectedOutput"`
		Hidden         bool   `json:"hidden"`
	} `json:"testCases"`
	Hints []string `json:"hints"`
}

// Generate creates one catalog question. The difficulty gate runs before any
// external call or write. Two concurrent generations can race on the
// prior-titles read and produce duplicate titles; that is accepted.
func (s *QuestionService) Generate(ctx context.Context, req GenerateQuestionRequest) (*model.Question, error) {
	difficulty := model.QuestionDifficulty(req.Difficulty)
	if !model.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("difficulty must be one of Easy, Medium, Hard: %w", common.ErrValidation)
	}
	if req.Language != "" && !model.ValidLanguage(req.Language) {
		return nil, fmt.Errorf("unsupported language %q: %w", req.Language, common.ErrValidation)
	}

	priorTitles, err := s.questionRepo.TitlesByDifficulty(ctx, model.ScopeCatalog, nil, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior titles: %w", err)
	}

	userPrompt := prompt.BuildQuestionPrompt(difficulty, req.Category, priorTitles, config.AppConfig.MaxPriorTitles)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      prompt.QuestionSystem(),
		Prompt:      userPrompt,
		Schema:      prompt.QuestionSchema,
		MaxTokens:   4096,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, wrapGenerationError(err)
	}

	var gen generatedQuestion
	if err := json.Unmarshal(resp.Content, &gen); err != nil {
		return nil, fmt.Errorf("decode question payload: %w", common.ErrUpstreamFormat)
	}

	question := &model.Question{
		ID:          uuid.NewString(),
		Scope:       model.ScopeCatalog,
		Title:       gen.Title,
		Slug:        slug.Make(gen.Title),
		Description: gen.Description,
		Difficulty:  difficulty,
		Category:    coalesce(gen.Category, req.Category),
		Tags:        gen.Tags,
		StarterCode: gen.StarterCode,
		Hints:       gen.Hints,
		Status:      model.StatusGenerated,
	}
	for _, ex := range gen.Examples {
		question.Examples = append(question.Examples, model.Example{
			Input:       ex.Input,
			Output:      ex.Output,
			Explanation: ex.Explanation,
		})
	}
	for _, tc := range gen.TestCases {
		question.TestCases = append(question.TestCases, model.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			Hidden:         tc.Hidden,
		})
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to store question: %w", err)
	}
	return question, nil
}

// List returns a page of catalog questions. Test cases never reach the
// response; the model strips them at serialization.
func (s *QuestionService) List(ctx context.Context, difficulty, category string, page, pageSize int) ([]model.Question, int, error) {
	if difficulty != "" && !model.ValidDifficulty(model.QuestionDifficulty(difficulty)) {
		return nil, 0, fmt.Errorf("invalid difficulty filter: %w", common.ErrValidation)
	}

	questions, total, err := s.questionRepo.List(ctx, repository.QuestionFilter{
		Scope:      model.ScopeCatalog,
		Difficulty: model.QuestionDifficulty(difficulty),
		Category:   category,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, total, nil
}

func (s *QuestionService) GetByID(ctx context.Context, id string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("question not found: %w", err)
	}
	if question.Scope != model.ScopeCatalog {
		return nil, common.ErrNotFound
	}
	return question, nil
}

// wrapGenerationError converts model-layer failures into the user-blocking
// generation error taxonomy. Malformed content is a format error; everything
// else surfaces as-is.
func wrapGenerationError(err error) error {
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return fmt.Errorf("%v: %w", invalid.Err, common.ErrUpstreamFormat)
	}
	return fmt.Errorf("question generation failed: %w", err)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
