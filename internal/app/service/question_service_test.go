package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepforge/internal/common"
	"prepforge/internal/domain/model"
	"prepforge/internal/llm"
)

const catalogQuestionJSON = `{
	"title": "Reverse Words",
	"description": "Reverse the order of words in a sentence.",
	"difficulty": "Easy",
	"category": "Strings",
	"tags": ["string", "two-pointers"],
	"starterCode": {
		"javascript": "function reverseWords(s) {}",
		"python": "def reverse_words(s):",
		"java": "class Solution { String reverseWords(String s) {} }",
		"cpp": "string reverseWords(string s) {}"
	},
	"examples": [
		{"input": "hello world", "output": "world hello", "explanation": "Words swap order."}
	],
	"testCases": [
		{"input": "hello world", "expectedOutput": "world hello", "hidden": false},
		{"input": "a b c", "expectedOutput": "c b a", "hidden": true}
	],
	"hints": ["Split on spaces."]
}`

func TestQuestionGenerate_InvalidDifficultyRejectedBeforeProviderCall(t *testing.T) {
	repo := newFakeQuestionRepo()
	mock := llm.NewMockProvider()
	svc := NewQuestionService(repo, mock)

	_, err := svc.Generate(context.Background(), GenerateQuestionRequest{Difficulty: "Impossible"})

	require.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 0, mock.CallCount(), "provider must not be called")
	assert.Empty(t, repo.questions, "nothing must be stored")
}

func TestQuestionGenerate_UnsupportedLanguageRejected(t *testing.T) {
	repo := newFakeQuestionRepo()
	mock := llm.NewMockProvider()
	svc := NewQuestionService(repo, mock)

	_, err := svc.Generate(context.Background(), GenerateQuestionRequest{Difficulty: "Easy", Language: "brainfuck"})

	require.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 0, mock.CallCount(), "provider must not be called")
}

func TestQuestionGenerate_KnownLanguageAccepted(t *testing.T) {
	repo := newFakeQuestionRepo()
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(catalogQuestionJSON)},
	)
	svc := NewQuestionService(repo, mock)

	question, err := svc.Generate(context.Background(), GenerateQuestionRequest{Difficulty: "Easy", Language: "python"})
	require.NoError(t, err)
	assert.Len(t, question.StarterCode, 4, "starter code always covers every supported language")
}

func TestQuestionGenerate_StoresCatalogQuestion(t *testing.T) {
	repo := newFakeQuestionRepo()
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(catalogQuestionJSON)},
	)
	svc := NewQuestionService(repo, mock)

	question, err := svc.Generate(context.Background(), GenerateQuestionRequest{Difficulty: "Easy", Category: "Strings"})
	require.NoError(t, err)

	assert.NotEmpty(t, question.ID)
	assert.Equal(t, model.ScopeCatalog, question.Scope)
	assert.Nil(t, question.UserID)
	assert.Equal(t, "Reverse Words", question.Title)
	assert.Equal(t, "reverse-words", question.Slug)
	assert.Equal(t, model.DifficultyEasy, question.Difficulty)
	assert.Equal(t, model.StatusGenerated, question.Status)
	assert.Len(t, question.StarterCode, 4)
	require.Len(t, question.TestCases, 2)
	assert.True(t, question.TestCases[1].Hidden)

	require.Len(t, repo.questions, 1)
	assert.Equal(t, question.ID, repo.questions[0].ID)
}

func TestQuestionGenerate_PriorTitlesReachThePrompt(t *testing.T) {
	repo := newFakeQuestionRepo(&model.Question{
		ID: "q1", Scope: model.ScopeCatalog, Title: "FizzBuzz", Difficulty: model.DifficultyEasy,
	})
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(catalogQuestionJSON)},
	)
	svc := NewQuestionService(repo, mock)

	_, err := svc.Generate(context.Background(), GenerateQuestionRequest{Difficulty: "Easy"})
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Prompt, "FizzBuzz")
}

func TestQuestionGenerate_MalformedModelOutputIsUpstreamFormatError(t *testing.T) {
	repo := newFakeQuestionRepo()
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"title": "missing everything else"}`)},
	)
	svc := NewQuestionService(repo, mock)

	_, err := svc.Generate(context.Background(), GenerateQuestionRequest{Difficulty: "Medium"})

	require.ErrorIs(t, err, common.ErrUpstreamFormat)
	assert.Empty(t, repo.questions)
}

func TestQuestionGenerate_TestCasesNeverSerialized(t *testing.T) {
	repo := newFakeQuestionRepo()
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(catalogQuestionJSON)},
	)
	svc := NewQuestionService(repo, mock)

	question, err := svc.Generate(context.Background(), GenerateQuestionRequest{Difficulty: "Easy"})
	require.NoError(t, err)

	encoded, err := json.Marshal(question)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "expectedOutput")
	assert.NotContains(t, string(encoded), "c b a")
}

func TestQuestionList_FiltersCatalogScope(t *testing.T) {
	repo := newFakeQuestionRepo(
		&model.Question{ID: "q1", Scope: model.ScopeCatalog, Difficulty: model.DifficultyEasy},
		&model.Question{ID: "q2", Scope: model.ScopePractice, UserID: strPtr("u1"), Difficulty: model.DifficultyEasy},
	)
	svc := NewQuestionService(repo, llm.NewMockProvider())

	questions, total, err := svc.List(context.Background(), "", "", 1, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
}

func TestQuestionList_InvalidDifficultyFilter(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo(), llm.NewMockProvider())

	_, _, err := svc.List(context.Background(), "Extreme", "", 1, 20)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestQuestionGetByID_PracticeQuestionIsInvisible(t *testing.T) {
	repo := newFakeQuestionRepo(
		&model.Question{ID: "p1", Scope: model.ScopePractice, UserID: strPtr("u1")},
	)
	svc := NewQuestionService(repo, llm.NewMockProvider())

	_, err := svc.GetByID(context.Background(), "p1")
	require.ErrorIs(t, err, common.ErrNotFound)
}
