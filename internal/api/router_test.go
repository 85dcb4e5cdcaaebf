package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepforge/internal/app/judge"
	"prepforge/internal/app/service"
	"prepforge/internal/common"
	"prepforge/internal/common/security"
	"prepforge/internal/domain/model"
	"prepforge/internal/domain/repository"
	"prepforge/internal/llm"
	"prepforge/internal/platform/config"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		BaseURL:          "http://localhost:8080",
		JWTKey:           []byte("test-secret"),
		JWTExp:           time.Hour,
		JWTExternalExp:   time.Hour,
		ResetTokenTTL:    time.Minute,
		UploadDir:        os.TempDir(),
		MaxResumeBytes:   5 << 20,
		LeaderboardLimit: 20,
		DefaultPageSize:  20,
		MaxPriorTitles:   50,
	}
	security.InitJWT()
	os.Exit(m.Run())
}

// Empty repository stubs so the router can be exercised over HTTP without a
// database.
type stubQuestionRepo struct{}

func (stubQuestionRepo) Create(context.Context, *model.Question) error { return nil }
func (stubQuestionRepo) FindByID(context.Context, string) (*model.Question, error) {
	return nil, common.ErrNotFound
}
func (stubQuestionRepo) List(context.Context, repository.QuestionFilter) ([]model.Question, int, error) {
	return []model.Question{}, 0, nil
}
func (stubQuestionRepo) MarkSolved(context.Context, string) error { return common.ErrNotFound }
func (stubQuestionRepo) TitlesByDifficulty(context.Context, model.QuestionScope, *string, model.QuestionDifficulty) ([]string, error) {
	return nil, nil
}
func (stubQuestionRepo) SolvedTallies(context.Context) ([]model.SolvedTally, error) {
	return nil, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(context.Context, *model.User) error { return nil }
func (stubUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, common.ErrNotFound
}
func (stubUserRepo) FindByID(context.Context, string) (*model.User, error) {
	return nil, common.ErrNotFound
}
func (stubUserRepo) FindByExternalID(context.Context, string) (*model.User, error) {
	return nil, common.ErrNotFound
}
func (stubUserRepo) UpdatePassword(context.Context, string, string) error { return nil }

type stubSubmissionRepo struct{}

func (stubSubmissionRepo) Create(context.Context, *model.Submission) error { return nil }
func (stubSubmissionRepo) FindByID(context.Context, string) (*model.Submission, error) {
	return nil, common.ErrNotFound
}
func (stubSubmissionRepo) ListByUser(context.Context, string, int, int) ([]model.Submission, int, error) {
	return []model.Submission{}, 0, nil
}
func (stubSubmissionRepo) CountByUser(context.Context, string) (int, error) { return 0, nil }

type stubResetTokenStore struct{}

func (stubResetTokenStore) Save(context.Context, string, string, time.Duration) error { return nil }
func (stubResetTokenStore) Consume(context.Context, string) (string, error) {
	return "", common.ErrBadRequest
}

func testRouter(provider llm.Provider) http.Handler {
	questionRepo := stubQuestionRepo{}
	userRepo := stubUserRepo{}
	submissionRepo := stubSubmissionRepo{}

	return NewRouter(
		service.NewAuthService(userRepo, stubResetTokenStore{}),
		service.NewQuestionService(questionRepo, provider),
		service.NewPracticeService(questionRepo, submissionRepo, provider),
		service.NewSubmissionService(submissionRepo, questionRepo, judge.NewSeededJudge(1), provider),
		service.NewLeaderboardService(questionRepo, userRepo, 20),
		service.NewQuizService(provider),
		service.NewResumeService(provider),
	)
}

func TestRouter_Health(t *testing.T) {
	srv := httptest.NewServer(testRouter(llm.NewMockProvider()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_PublicQuestionList(t *testing.T) {
	srv := httptest.NewServer(testRouter(llm.NewMockProvider()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/questions")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success     bool             `json:"success"`
		Questions   []model.Question `json:"questions"`
		CurrentPage int              `json:"currentPage"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Questions)
	assert.Equal(t, 1, body.CurrentPage)
}

type failingQuestionRepo struct {
	stubQuestionRepo
}

func (failingQuestionRepo) List(context.Context, repository.QuestionFilter) ([]model.Question, int, error) {
	return nil, 0, errors.New("pgQuestionRepository.List query: dial tcp 10.0.0.5:5432: connect: connection refused")
}

func TestRouter_InternalErrorsAreGeneric(t *testing.T) {
	router := NewRouter(
		service.NewAuthService(stubUserRepo{}, stubResetTokenStore{}),
		service.NewQuestionService(failingQuestionRepo{}, llm.NewMockProvider()),
		service.NewPracticeService(stubQuestionRepo{}, stubSubmissionRepo{}, llm.NewMockProvider()),
		service.NewSubmissionService(stubSubmissionRepo{}, stubQuestionRepo{}, judge.NewSeededJudge(1), llm.NewMockProvider()),
		service.NewLeaderboardService(stubQuestionRepo{}, stubUserRepo{}, 20),
		service.NewQuizService(llm.NewMockProvider()),
		service.NewResumeService(llm.NewMockProvider()),
	)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/questions")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, body.Error, "dial tcp")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	srv := httptest.NewServer(testRouter(llm.NewMockProvider()))
	defer srv.Close()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/generate"},
		{http.MethodPost, "/code/generate"},
		{http.MethodGet, "/code/difficulty/Easy"},
		{http.MethodPost, "/submit"},
		{http.MethodGet, "/submissions"},
		{http.MethodGet, "/leaderboard"},
		{http.MethodPost, "/quiz/generate"},
		{http.MethodPost, "/resume/analyze"},
	} {
		req, err := http.NewRequest(tc.method, srv.URL+tc.path, strings.NewReader("{}"))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_BearerTokenGrantsAccess(t *testing.T) {
	srv := httptest.NewServer(testRouter(llm.NewMockProvider()))
	defer srv.Close()

	token, err := security.GenerateToken("u1", time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/leaderboard", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success     bool                     `json:"success"`
		Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Leaderboard)
}

func TestRouter_GarbageTokenRejected(t *testing.T) {
	srv := httptest.NewServer(testRouter(llm.NewMockProvider()))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/leaderboard", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_QuizGeneration(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[
		{"question": "What closes a channel?", "options": ["close", "delete", "free", "end"], "correctAnswer": "close"}
	]`)})
	srv := httptest.NewServer(testRouter(provider))
	defer srv.Close()

	token, err := security.GenerateToken("u1", time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/quiz/generate",
		strings.NewReader(`{"topic": "Go channels", "count": 1}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool               `json:"success"`
		Quiz    []service.QuizItem `json:"quiz"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Quiz, 1)
	assert.Equal(t, "close", body.Quiz[0].CorrectAnswer)
}
