package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/mocks"
)

func newTestApp(service services.ResumeService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	h := NewResumeHandler(service, 1024, time.Second)
	api := app.Group("/api")
	api.Post("/analyze", h.HandleAnalyze)
	api.Post("/improve", h.HandleImprove)
	api.Post("/rewrite", h.HandleRewrite)

	return app
}

func multipartRequest(t *testing.T, path, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func TestHandleAnalyze_Success(t *testing.T) {
	service := new(mocks.MockResumeService)
	score := 77.0
	service.On("ExtractText", []byte("%PDF fake"), "resume.pdf").Return("Jane Doe", nil)
	service.On("Analyze", mock.Anything, "Jane Doe", "Go engineer", true).Return(models.AnalysisResult{
		Summary:          "Good fit",
		ExtractedSkills:  []string{"Go"},
		MatchScore:       &score,
		ImprovementAreas: []string{},
		MissingKeywords:  []string{},
		Status:           models.StatusCompleted,
	}, nil)

	req := multipartRequest(t, "/api/analyze", "resume.pdf", []byte("%PDF fake"), map[string]string{
		"job_description": "Go engineer",
		"use_similarity":  "true",
	})
	resp, err := newTestApp(service).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Good fit", body["summary"])
	assert.Equal(t, 77.0, body["match_score"])
	assert.Equal(t, "completed", body["status"])
	service.AssertExpectations(t)
}

func TestHandleAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     []byte
		extractErr  error
		analyzeErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing file",
			wantStatus:  fiber.StatusBadRequest,
			wantMessage: "missing required field(s): file",
		},
		{
			name:        "unsupported extension",
			filename:    "resume.txt",
			content:     []byte("plain"),
			wantStatus:  fiber.StatusUnsupportedMediaType,
			wantMessage: "unsupported file type: txt (allowed: pdf, doc, docx)",
		},
		{
			name:        "file too large",
			filename:    "resume.pdf",
			content:     bytes.Repeat([]byte("a"), 2048),
			wantStatus:  fiber.StatusBadRequest,
			wantMessage: "file too large. Max size: 1024 bytes",
		},
		{
			name:        "unreadable document",
			filename:    "resume.pdf",
			content:     []byte("broken"),
			extractErr:  fmt.Errorf("%w: malformed PDF", services.ErrExtractionFailed),
			wantStatus:  fiber.StatusUnprocessableEntity,
			wantMessage: services.ErrExtractionFailed.Error(),
		},
		{
			name:        "generation failure",
			filename:    "resume.docx",
			content:     []byte("docx"),
			analyzeErr:  fmt.Errorf("%w: quota exceeded", services.ErrGenerationFailed),
			wantStatus:  fiber.StatusInternalServerError,
			wantMessage: "AI analysis failed, please try again",
		},
		{
			name:        "unexpected error",
			filename:    "resume.docx",
			content:     []byte("docx"),
			analyzeErr:  errors.New("prompt template missing"),
			wantStatus:  fiber.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.MockResumeService)
			service.On("ExtractText", mock.Anything, mock.Anything).Return("text", tt.extractErr)
			service.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(models.AnalysisResult{}, tt.analyzeErr)

			req := multipartRequest(t, "/api/analyze", tt.filename, tt.content, nil)
			resp, err := newTestApp(service).Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body models.ErrorResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.Equal(t, tt.wantStatus, body.Code)
		})
	}
}

func TestHandleImprove(t *testing.T) {
	service := new(mocks.MockResumeService)
	service.On("ExtractText", mock.Anything, "resume.docx").Return("Jane Doe", nil)
	service.On("Improve", mock.Anything, "Jane Doe", "Go engineer").
		Return(services.Normalized{"suggestions": []any{"Add metrics"}}, nil)

	req := multipartRequest(t, "/api/improve", "resume.docx", []byte("docx"), map[string]string{
		"job_description": "Go engineer",
	})
	resp, err := newTestApp(service).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, []any{"Add metrics"}, body["suggestions"])
}

func TestHandleImprove_MissingJobDescription(t *testing.T) {
	service := new(mocks.MockResumeService)

	req := multipartRequest(t, "/api/improve", "resume.docx", []byte("docx"), nil)
	resp, err := newTestApp(service).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "missing required field(s): job_description", body.Error)
	service.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
}

func TestHandleRewrite_JSON(t *testing.T) {
	service := new(mocks.MockResumeService)
	service.On("Rewrite", mock.Anything, "Jane Doe, Go", "SRE").
		Return(services.AssembleRewrite(services.Normalized{"summary": "Reliable"}), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/rewrite",
		strings.NewReader(`{"resume_text": "Jane Doe, Go", "target_role": "SRE"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := newTestApp(service).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Reliable", body["summary"])
	assert.Equal(t, []any{}, body["experience"])
	assert.Contains(t, body, "contact_info")
	service.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
}

func TestHandleRewrite_JSONMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing target_role", `{"resume_text": "Jane"}`, "missing required field(s): target_role"},
		{"missing resume_text", `{"target_role": "SRE"}`, "missing required field(s): resume_text"},
		{"missing both", `{}`, "missing required field(s): resume_text, target_role"},
		{"blank values", `{"resume_text": " ", "target_role": ""}`, "missing required field(s): resume_text, target_role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.MockResumeService)

			req := httptest.NewRequest(http.MethodPost, "/api/rewrite", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := newTestApp(service).Test(req)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			var body models.ErrorResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.want, body.Error)
			service.AssertNotCalled(t, "Rewrite", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleRewrite_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rewrite", strings.NewReader(`{"resume_text":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := newTestApp(new(mocks.MockResumeService)).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleRewrite_Multipart(t *testing.T) {
	service := new(mocks.MockResumeService)
	service.On("ExtractText", mock.Anything, "cv.pdf").Return("Jane Doe", nil)
	service.On("Rewrite", mock.Anything, "Jane Doe", "Data Engineer").
		Return(services.AssembleRewrite(services.Normalized{}), nil)

	req := multipartRequest(t, "/api/rewrite", "cv.pdf", []byte("%PDF"), map[string]string{
		"target_role": "Data Engineer",
	})
	resp, err := newTestApp(service).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	service.AssertExpectations(t)
}

func TestHandleRewrite_MultipartMissingFields(t *testing.T) {
	req := multipartRequest(t, "/api/rewrite", "", nil, map[string]string{"note": "x"})
	resp, err := newTestApp(new(mocks.MockResumeService)).Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "missing required field(s): file, target_role", body.Error)
}
