package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type RequestLogHandler struct {
	repo repositories.RequestLogRepository
}

func NewRequestLogHandler(repo repositories.RequestLogRepository) *RequestLogHandler {
	return &RequestLogHandler{repo: repo}
}

// HandleGetRequestLog handles GET /api/requests/:request_id
func (h *RequestLogHandler) HandleGetRequestLog(c *fiber.Ctx) error {
	requestID := strings.TrimSpace(c.Params("request_id"))
	if requestID == "" {
		return errorJSON(c, fiber.StatusBadRequest, missingFields("request_id"))
	}

	entry, err := h.repo.FindByRequestID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestLogNotFound) {
			return errorJSON(c, fiber.StatusNotFound, repositories.ErrRequestLogNotFound.Error())
		}
		return err
	}

	return c.JSON(entry)
}
