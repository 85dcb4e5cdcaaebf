package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepforge/internal/common"
	"prepforge/internal/llm"
)

const quizJSON = `[
	{
		"question": "Which channel operation blocks on an unbuffered channel with no receiver?",
		"options": ["send", "close", "len", "cap"],
		"correctAnswer": "send"
	},
	{
		"question": "What does the race detector instrument?",
		"options": ["memory accesses", "syscalls", "GC cycles", "stack growth"],
		"correctAnswer": "memory accesses"
	}
]`

func TestQuizGenerate_TopicRequired(t *testing.T) {
	svc := NewQuizService(llm.NewMockProvider())

	_, err := svc.Generate(context.Background(), GenerateQuizRequest{})
	require.ErrorIs(t, err, common.ErrBadRequest)
}

func TestQuizGenerate_InvalidDifficulty(t *testing.T) {
	svc := NewQuizService(llm.NewMockProvider())

	_, err := svc.Generate(context.Background(), GenerateQuizRequest{Topic: "Go", Difficulty: "Nightmare"})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestQuizGenerate_CountCapped(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewQuizService(mock)

	_, err := svc.Generate(context.Background(), GenerateQuizRequest{Topic: "Go", Count: 21})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 0, mock.CallCount())
}

func TestQuizGenerate_DefaultCountInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON)})
	svc := NewQuizService(mock)

	_, err := svc.Generate(context.Background(), GenerateQuizRequest{Topic: "Go"})
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Prompt, "Number of questions: 5")
}

func TestQuizGenerate_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON)})
	svc := NewQuizService(mock)

	items, err := svc.Generate(context.Background(), GenerateQuizRequest{Topic: "Go", Difficulty: "Medium", Count: 2})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Len(t, items[0].Options, 4)
	assert.Contains(t, items[0].Options, items[0].CorrectAnswer)
}

func TestQuizGenerate_WrongOptionCountRejectedBySchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[
		{"question": "q", "options": ["a", "b"], "correctAnswer": "a"}
	]`)})
	svc := NewQuizService(mock)

	_, err := svc.Generate(context.Background(), GenerateQuizRequest{Topic: "Go"})
	require.ErrorIs(t, err, common.ErrUpstreamFormat)
}

func TestQuizGenerate_AnswerMustBeAmongOptions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[
		{"question": "q", "options": ["a", "b", "c", "d"], "correctAnswer": "e"}
	]`)})
	svc := NewQuizService(mock)

	_, err := svc.Generate(context.Background(), GenerateQuizRequest{Topic: "Go"})
	require.ErrorIs(t, err, common.ErrUpstreamFormat)
}
