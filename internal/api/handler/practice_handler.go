package handler

import (
	"encoding/json"
	"net/http"

	"prepforge/internal/api/middleware"
	"prepforge/internal/app/service"
	"prepforge/internal/common"

	"github.com/go-chi/chi/v5"
)

type PracticeHandler struct {
	practiceService *service.PracticeService
}

func NewPracticeHandler(ps *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: ps}
}

func (h *PracticeHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // the whole practice surface is per-user

	r.Post("/code/generate", h.generate)
	r.Get("/code/difficulty/{difficulty}", h.listByDifficulty)
	r.Get("/code/{questionID}", h.getQuestion)
	r.Post("/code/submit/{questionID}", h.submit)
}

func (h *PracticeHandler) generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.GeneratePracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	question, err := h.practiceService.Generate(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"question": question,
	})
}

func (h *PracticeHandler) listByDifficulty(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	page, pageSize := pagination(r)
	questions, total, err := h.practiceService.ListByDifficulty(r.Context(), userID, chi.URLParam(r, "difficulty"), page, pageSize)
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

func (h *PracticeHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	question, err := h.practiceService.GetByID(r.Context(), userID, chi.URLParam(r, "questionID"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"question": question,
	})
}

func (h *PracticeHandler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.SubmitPracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	verdict, err := h.practiceService.Submit(r.Context(), userID, chi.URLParam(r, "questionID"), req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"feedback":  verdict.Feedback,
		"isCorrect": verdict.IsCorrect,
	})
}
