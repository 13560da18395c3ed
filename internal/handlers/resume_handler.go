package handlers

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	localsUploadExt  = "upload_ext"
	localsUploadSize = "upload_size"
)

type ResumeHandler struct {
	service     services.ResumeService
	maxFileSize int64
	timeout     time.Duration
}

func NewResumeHandler(service services.ResumeService, maxFileSize int64, timeout time.Duration) *ResumeHandler {
	return &ResumeHandler{
		service:     service,
		maxFileSize: maxFileSize,
		timeout:     timeout,
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	resumeText, err := h.extractUpload(c)
	if err != nil {
		return respondError(c, err)
	}

	useSimilarity, _ := strconv.ParseBool(c.FormValue("use_similarity"))

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.service.Analyze(ctx, resumeText, c.FormValue("job_description"), useSimilarity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleImprove handles POST /api/improve
func (h *ResumeHandler) HandleImprove(c *fiber.Ctx) error {
	var missing []string
	if _, err := c.FormFile("file"); err != nil {
		missing = append(missing, "file")
	}
	if strings.TrimSpace(c.FormValue("job_description")) == "" {
		missing = append(missing, "job_description")
	}
	if len(missing) > 0 {
		return errorJSON(c, fiber.StatusBadRequest, missingFields(missing...))
	}

	resumeText, err := h.extractUpload(c)
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	suggestions, err := h.service.Improve(ctx, resumeText, c.FormValue("job_description"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(suggestions)
}

// HandleRewrite handles POST /api/rewrite with either a JSON body carrying
// resume_text or a multipart form carrying the file.
func (h *ResumeHandler) HandleRewrite(c *fiber.Ctx) error {
	var resumeText, targetRole string

	if c.Is("json") {
		var req models.RewriteRequest
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "invalid JSON body")
		}

		var missing []string
		if strings.TrimSpace(req.ResumeText) == "" {
			missing = append(missing, "resume_text")
		}
		if strings.TrimSpace(req.TargetRole) == "" {
			missing = append(missing, "target_role")
		}
		if len(missing) > 0 {
			return errorJSON(c, fiber.StatusBadRequest, missingFields(missing...))
		}

		resumeText, targetRole = req.ResumeText, req.TargetRole
	} else {
		var missing []string
		if _, err := c.FormFile("file"); err != nil {
			missing = append(missing, "file")
		}
		if strings.TrimSpace(c.FormValue("target_role")) == "" {
			missing = append(missing, "target_role")
		}
		if len(missing) > 0 {
			return errorJSON(c, fiber.StatusBadRequest, missingFields(missing...))
		}

		text, err := h.extractUpload(c)
		if err != nil {
			return respondError(c, err)
		}
		resumeText, targetRole = text, c.FormValue("target_role")
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	rewritten, err := h.service.Rewrite(ctx, resumeText, targetRole)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(rewritten)
}

// extractUpload reads the "file" form field and returns its text.
func (h *ResumeHandler) extractUpload(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("%w: %s", services.ErrValidation, missingFields("file"))
	}

	c.Locals(localsUploadExt, strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")))
	c.Locals(localsUploadSize, fileHeader.Size)

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return "", fmt.Errorf("%w: file too large. Max size: %d bytes", services.ErrValidation, h.maxFileSize)
	}

	// reject before reading the body
	if _, err := services.SupportedExtension(fileHeader.Filename); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", services.ErrExtractionFailed, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", services.ErrExtractionFailed, err)
	}

	return h.service.ExtractText(data, fileHeader.Filename)
}

func (h *ResumeHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}
