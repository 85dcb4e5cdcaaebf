package handler

import (
	"net/http"

	"prepforge/internal/api/middleware"
	"prepforge/internal/app/service"
	"prepforge/internal/common"
	"prepforge/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type ResumeHandler struct {
	resumeService *service.ResumeService
}

func NewResumeHandler(rs *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: rs}
}

func (h *ResumeHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/resume/analyze", h.analyzeResume)
}

func (h *ResumeHandler) analyzeResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.AppConfig.MaxResumeBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	report, err := h.resumeService.Analyze(r.Context(), header.Filename, file, r.FormValue("role"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"report":  report,
	})
}
