package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"prepforge/internal/app/prompt"
	"prepforge/internal/common"
	"prepforge/internal/domain/model"
	"prepforge/internal/llm"
)

const (
	defaultQuizCount = 5
	maxQuizCount     = 20
)

// QuizService generates multiple-choice quizzes. Like question generation
// this path is strict: malformed model output is surfaced, never papered
// over.
type QuizService struct {
	provider llm.Provider
}

func NewQuizService(provider llm.Provider) *QuizService {
	return &QuizService{provider: provider}
}

type GenerateQuizRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty,omitempty"`
	Count      int    `json:"count,omitempty"`
}

type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

func (s *QuizService) Generate(ctx context.Context, req GenerateQuizRequest) ([]QuizItem, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("topic is required: %w", common.ErrBadRequest)
	}
	difficulty := model.QuestionDifficulty(req.Difficulty)
	if req.Difficulty != "" && !model.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("difficulty must be one of Easy, Medium, Hard: %w", common.ErrValidation)
	}
	count := req.Count
	if count <= 0 {
		count = defaultQuizCount
	}
	if count > maxQuizCount {
		return nil, fmt.Errorf("count must be at most %d: %w", maxQuizCount, common.ErrValidation)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      prompt.QuizSystem(),
		Prompt:      prompt.BuildQuizPrompt(req.Topic, difficulty, count),
		Schema:      prompt.QuizSchema,
		MaxTokens:   4096,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, wrapGenerationError(err)
	}

	var items []QuizItem
	if err := json.Unmarshal(resp.Content, &items); err != nil {
		return nil, fmt.Errorf("decode quiz payload: %w", common.ErrUpstreamFormat)
	}

	// The schema pins the option count; answer membership it cannot express.
	for i, item := range items {
		if !slices.Contains(item.Options, item.CorrectAnswer) {
			return nil, fmt.Errorf("quiz item %d: correct answer not among options: %w", i, common.ErrUpstreamFormat)
		}
	}

	return items, nil
}
