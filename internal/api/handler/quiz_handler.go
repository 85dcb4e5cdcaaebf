package handler

import (
	"encoding/json"
	"net/http"

	"prepforge/internal/api/middleware"
	"prepforge/internal/app/service"
	"prepforge/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(qs *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: qs}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/quiz/generate", h.generateQuiz)
}

func (h *QuizHandler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	quiz, err := h.quizService.Generate(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"quiz":    quiz,
	})
}
