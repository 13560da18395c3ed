package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// NewAuditMiddleware records one request_logs row per request. Only metadata
// is stored.
func NewAuditMiddleware(repo repositories.RequestLogRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var errorMessage *string
		if err != nil {
			// the app's ErrorHandler has not written the response yet
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
			msg := err.Error()
			errorMessage = &msg
		} else if msg, ok := c.Locals(localsErrorMessage).(string); ok {
			errorMessage = &msg
		}

		entry := &models.RequestLog{
			Method:       c.Method(),
			Path:         utils.CopyString(c.Path()),
			StatusCode:   status,
			DurationMs:   time.Since(start).Milliseconds(),
			ErrorMessage: errorMessage,
		}
		if requestID, ok := c.Locals("requestid").(string); ok {
			entry.RequestID = utils.CopyString(requestID)
		}
		if ext, ok := c.Locals(localsUploadExt).(string); ok {
			entry.FileExt = ext
		}
		if size, ok := c.Locals(localsUploadSize).(int64); ok {
			entry.FileSize = size
		}

		if createErr := repo.Create(entry); createErr != nil {
			log.Printf("⚠️  Failed to write request log: %v", createErr)
		}

		return err
	}
}
