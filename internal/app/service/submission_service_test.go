package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepforge/internal/app/judge"
	"prepforge/internal/common"
	"prepforge/internal/domain/model"
	"prepforge/internal/llm"
)

func catalogQuestion() *model.Question {
	return &model.Question{
		ID:          "q1",
		Scope:       model.ScopeCatalog,
		Title:       "Two Sum",
		Description: "Find two indices summing to target.",
		Difficulty:  model.DifficultyEasy,
		Status:      model.StatusGenerated,
		TestCases: []model.TestCase{
			{Input: "1", ExpectedOutput: "1"},
			{Input: "2", ExpectedOutput: "2"},
			{Input: "3", ExpectedOutput: "3", Hidden: true},
			{Input: "4", ExpectedOutput: "4", Hidden: true},
			{Input: "5", ExpectedOutput: "5", Hidden: true},
		},
	}
}

const feedbackJSON = `{
	"overall": "Solid approach.",
	"codeQuality": "Readable and well named.",
	"timeComplexity": "O(n)",
	"spaceComplexity": "O(n)",
	"suggestions": ["Add input validation."],
	"score": 92
}`

func acceptedResult() *judge.ExecutionResult {
	return &judge.ExecutionResult{
		Status: model.StatusAccepted, Passed: 5, Total: 5,
		ExecutionTimeMs: 40, MemoryKb: 2048,
		Results: []judge.TestResult{{Passed: true}},
	}
}

func partialResult() *judge.ExecutionResult {
	return &judge.ExecutionResult{
		Status: model.StatusWrongAnswer, Passed: 3, Total: 5,
		ExecutionTimeMs: 40, MemoryKb: 2048,
		Results: []judge.TestResult{{Passed: true}, {Passed: false}},
	}
}

func TestSubmissionCreate_RequiredFields(t *testing.T) {
	svc := NewSubmissionService(&fakeSubmissionRepo{}, newFakeQuestionRepo(), &fakeJudge{}, llm.NewMockProvider())

	_, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{Language: "python"})
	require.ErrorIs(t, err, common.ErrBadRequest)
}

func TestSubmissionCreate_UnsupportedLanguage(t *testing.T) {
	svc := NewSubmissionService(&fakeSubmissionRepo{}, newFakeQuestionRepo(), &fakeJudge{}, llm.NewMockProvider())

	_, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
		QuestionID: "q1", Code: "x", Language: "cobol",
	})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestSubmissionCreate_UnknownQuestion(t *testing.T) {
	svc := NewSubmissionService(&fakeSubmissionRepo{}, newFakeQuestionRepo(), &fakeJudge{}, llm.NewMockProvider())

	_, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
		QuestionID: "missing", Code: "x", Language: "python",
	})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSubmissionCreate_PartialPassStoredAsWrongAnswer(t *testing.T) {
	questionRepo := newFakeQuestionRepo(catalogQuestion())
	subRepo := &fakeSubmissionRepo{}
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(feedbackJSON)})
	svc := NewSubmissionService(subRepo, questionRepo, &fakeJudge{result: partialResult()}, mock)

	result, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
		QuestionID: "q1", Code: "solution", Language: "python",
	})
	require.NoError(t, err)

	sub := result.Submission
	assert.Equal(t, model.StatusWrongAnswer, sub.Status)
	assert.Equal(t, 3, sub.TestCasesPassed)
	assert.Equal(t, 5, sub.TotalTestCases)
	require.Len(t, subRepo.submissions, 1)

	// A failed run never flips the question status.
	assert.Equal(t, 0, questionRepo.markSolvedCalls["q1"])
	assert.Equal(t, model.StatusGenerated, questionRepo.questions[0].Status)
}

func TestSubmissionCreate_AcceptedMarksQuestionSolved(t *testing.T) {
	questionRepo := newFakeQuestionRepo(catalogQuestion())
	subRepo := &fakeSubmissionRepo{}
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(feedbackJSON)})
	svc := NewSubmissionService(subRepo, questionRepo, &fakeJudge{result: acceptedResult()}, mock)

	result, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
		QuestionID: "q1", Code: "solution", Language: "python",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusAccepted, result.Submission.Status)
	assert.Equal(t, 1, questionRepo.markSolvedCalls["q1"])
	assert.Equal(t, model.StatusSolved, questionRepo.questions[0].Status)

	require.NotNil(t, result.Submission.Feedback)
	assert.Equal(t, "Solid approach.", result.Submission.Feedback.Overall)
	assert.Equal(t, "O(n)", result.Submission.Feedback.TimeComplexity)
	assert.Equal(t, 92, result.Submission.Feedback.Score)
}

func TestSubmissionCreate_FeedbackFallbackWhenProviderFails(t *testing.T) {
	questionRepo := newFakeQuestionRepo(catalogQuestion())
	svc := NewSubmissionService(&fakeSubmissionRepo{}, questionRepo, &fakeJudge{result: acceptedResult()}, llm.NewMockProvider())

	result, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
		QuestionID: "q1", Code: "solution", Language: "python",
	})
	require.NoError(t, err, "feedback failure must not block the submission")

	require.NotNil(t, result.Submission.Feedback)
	assert.Equal(t, 85, result.Submission.Feedback.Score)
}

func TestSubmissionCreate_FeedbackFallbackScoreForFailedRun(t *testing.T) {
	questionRepo := newFakeQuestionRepo(catalogQuestion())
	svc := NewSubmissionService(&fakeSubmissionRepo{}, questionRepo, &fakeJudge{result: partialResult()}, llm.NewMockProvider())

	result, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
		QuestionID: "q1", Code: "solution", Language: "python",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Submission.Feedback)
	assert.Equal(t, 60, result.Submission.Feedback.Score)
}

func TestSubmissionCreate_MalformedFeedbackFallsBack(t *testing.T) {
	questionRepo := newFakeQuestionRepo(catalogQuestion())
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"overall": 42}`)})
	svc := NewSubmissionService(&fakeSubmissionRepo{}, questionRepo, &fakeJudge{result: acceptedResult()}, mock)

	result, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
		QuestionID: "q1", Code: "solution", Language: "python",
	})
	require.NoError(t, err)
	assert.Equal(t, 85, result.Submission.Feedback.Score)
}

func TestSubmissionCreate_RepeatAcceptedIsIdempotentOnStatus(t *testing.T) {
	questionRepo := newFakeQuestionRepo(catalogQuestion())
	subRepo := &fakeSubmissionRepo{}
	svc := NewSubmissionService(subRepo, questionRepo, &fakeJudge{result: acceptedResult()}, llm.NewMockProvider())

	for range 2 {
		_, err := svc.Create(context.Background(), "u1", CreateSubmissionRequest{
			QuestionID: "q1", Code: "solution", Language: "python",
		})
		require.NoError(t, err)
	}

	// Both submissions are recorded; the question stays Solved.
	assert.Len(t, subRepo.submissions, 2)
	assert.Equal(t, model.StatusSolved, questionRepo.questions[0].Status)
}

func TestSubmissionList_PaginatesPerUser(t *testing.T) {
	subRepo := &fakeSubmissionRepo{submissions: []*model.Submission{
		{ID: "s1", UserID: "u1"},
		{ID: "s2", UserID: "u1"},
		{ID: "s3", UserID: "u2"},
	}}
	svc := NewSubmissionService(subRepo, newFakeQuestionRepo(), &fakeJudge{}, llm.NewMockProvider())

	submissions, total, err := svc.ListByUser(context.Background(), "u1", 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	assert.Len(t, submissions, 1)
}

func TestSubmissionGetByID_OwnSubmission(t *testing.T) {
	subRepo := &fakeSubmissionRepo{submissions: []*model.Submission{
		{ID: "s1", UserID: "u1", Status: model.StatusAccepted},
	}}
	svc := NewSubmissionService(subRepo, newFakeQuestionRepo(), &fakeJudge{}, llm.NewMockProvider())

	sub, err := svc.GetByID(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sub.ID)
}

func TestSubmissionGetByID_OtherUsersSubmissionIsNotFound(t *testing.T) {
	subRepo := &fakeSubmissionRepo{submissions: []*model.Submission{
		{ID: "s1", UserID: "u1"},
	}}
	svc := NewSubmissionService(subRepo, newFakeQuestionRepo(), &fakeJudge{}, llm.NewMockProvider())

	_, err := svc.GetByID(context.Background(), "intruder", "s1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSubmissionGetByID_UnknownID(t *testing.T) {
	svc := NewSubmissionService(&fakeSubmissionRepo{}, newFakeQuestionRepo(), &fakeJudge{}, llm.NewMockProvider())

	_, err := svc.GetByID(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}
