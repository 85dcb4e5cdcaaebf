package api

import (
	"net/http"
	"time"

	"prepforge/internal/api/handler"
	"prepforge/internal/app/service"
	"prepforge/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	questionService *service.QuestionService,
	practiceService *service.PracticeService,
	submissionService *service.SubmissionService,
	leaderboardService *service.LeaderboardService,
	quizService *service.QuizService,
	resumeService *service.ResumeService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies "Authorization: Bearer T" tokens and puts claims in context.
	// Protected groups add the Authenticator middleware on top.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Route paths are part of the public contract; handlers register them
	// at the root rather than under a version prefix.
	handler.NewAuthHandler(authService).RegisterRoutes(r)
	handler.NewQuestionHandler(questionService).RegisterRoutes(r)

	r.Group(func(g chi.Router) {
		handler.NewPracticeHandler(practiceService).RegisterRoutes(g)
	})
	r.Group(func(g chi.Router) {
		handler.NewSubmissionHandler(submissionService).RegisterRoutes(g)
	})
	r.Group(func(g chi.Router) {
		handler.NewLeaderboardHandler(leaderboardService).RegisterRoutes(g)
	})
	r.Group(func(g chi.Router) {
		handler.NewQuizHandler(quizService).RegisterRoutes(g)
	})
	r.Group(func(g chi.Router) {
		handler.NewResumeHandler(resumeService).RegisterRoutes(g)
	})

	return r
}
