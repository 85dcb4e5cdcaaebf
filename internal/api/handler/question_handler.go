package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"prepforge/internal/api/middleware"
	"prepforge/internal/app/service"
	"prepforge/internal/common"
	"prepforge/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(qs *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: qs}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/questions", h.listQuestions)
	r.Get("/questions/{questionID}", h.getQuestion)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Post("/generate", h.generateQuestion)
	})
}

func (h *QuestionHandler) generateQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	question, err := h.questionService.Generate(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"question": question,
	})
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	difficulty := r.URL.Query().Get("difficulty")
	category := r.URL.Query().Get("category")

	questions, total, err := h.questionService.List(r.Context(), difficulty, category, page, pageSize)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"questions":   questions,
		"totalPages":  totalPages(total, pageSize),
		"currentPage": page,
	})
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.questionService.GetByID(r.Context(), chi.URLParam(r, "questionID"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"question": question,
	})
}

// pagination reads page/limit query params with the configured defaults.
func pagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = config.AppConfig.DefaultPageSize
	}
	return page, pageSize
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
