package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// localsErrorMessage carries the client-facing error to the audit middleware.
const localsErrorMessage = "error_message"

// respondError maps pipeline errors to status codes. Causes are logged, not
// returned to the client.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return errorJSON(c, fiber.StatusBadRequest,
			strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": "))
	case errors.Is(err, services.ErrUnsupportedFormat):
		return errorJSON(c, fiber.StatusUnsupportedMediaType,
			err.Error()+" (allowed: pdf, doc, docx)")
	case errors.Is(err, services.ErrExtractionFailed):
		log.Printf("❌ Extraction failed: %v", err)
		return errorJSON(c, fiber.StatusUnprocessableEntity, services.ErrExtractionFailed.Error())
	case errors.Is(err, services.ErrGenerationFailed):
		return errorJSON(c, fiber.StatusInternalServerError, services.ErrGenerationFailed.Error())
	default:
		return err
	}
}

func errorJSON(c *fiber.Ctx, code int, message string) error {
	c.Locals(localsErrorMessage, message)
	return c.Status(code).JSON(models.ErrorResponse{Error: message, Code: code})
}

func missingFields(fields ...string) string {
	return "missing required field(s): " + strings.Join(fields, ", ")
}

// ErrorHandler is the Fiber error handler for everything respondError does
// not map.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("❌ Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return errorJSON(c, code, message)
}
