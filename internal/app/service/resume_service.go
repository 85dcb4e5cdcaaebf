package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"prepforge/internal/app/prompt"
	"prepforge/internal/common"
	"prepforge/internal/llm"
	"prepforge/internal/platform/config"

	"github.com/ledongthuc/pdf"
)

// ResumeService analyzes uploaded resumes. The uploaded file is a scoped
// temporary resource: written to disk for extraction, removed on success and
// failure paths alike.
type ResumeService struct {
	provider llm.Provider
}

func NewResumeService(provider llm.Provider) *ResumeService {
	return &ResumeService{provider: provider}
}

type ResumeReport struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	Score       int      `json:"score"`
}

// Analyze extracts plain text from the upload and asks the model for a
// structured report. Supported formats: .pdf and .txt.
func (s *ResumeService) Analyze(ctx context.Context, fileName string, file io.Reader, targetRole string) (*ResumeReport, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".pdf" && ext != ".txt" {
		return nil, fmt.Errorf("unsupported resume format %q, use .pdf or .txt: %w", ext, common.ErrValidation)
	}

	tmp, err := os.CreateTemp(config.AppConfig.UploadDir, "resume-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, io.LimitReader(file, config.AppConfig.MaxResumeBytes)); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	tmp.Close()

	text, err := extractText(tmp.Name(), ext)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text could be extracted from the resume: %w", common.ErrValidation)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    prompt.ResumeSystem(),
		Prompt:    prompt.BuildResumePrompt(text, targetRole),
		Schema:    prompt.ResumeSchema,
		MaxTokens: 2048,
	})
	if err != nil {
		return nil, wrapGenerationError(err)
	}

	report := &ResumeReport{}
	if err := json.Unmarshal(resp.Content, report); err != nil {
		return nil, fmt.Errorf("decode resume report: %w", common.ErrUpstreamFormat)
	}
	return report, nil
}

func extractText(path, ext string) (string, error) {
	if ext == ".txt" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read resume: %w", err)
		}
		return string(data), nil
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", common.ErrValidation)
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", common.ErrValidation)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, content); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return b.String(), nil
}
