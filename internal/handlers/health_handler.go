package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Features lists the optional components enabled at startup.
type Features struct {
	Similarity     bool `json:"similarity"`
	ReferenceIndex bool `json:"reference_index"`
	AuditLog       bool `json:"audit_log"`
}

type HealthHandler struct {
	appName  string
	model    string
	features Features
}

func NewHealthHandler(appName, model string, features Features) *HealthHandler {
	return &HealthHandler{appName: appName, model: model, features: features}
}

// HandleHealth handles GET /api/health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now(),
		"model":    h.model,
		"features": h.features,
	})
}

// HandleRoot handles GET /
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	endpoints := []string{
		"POST /api/analyze",
		"POST /api/improve",
		"POST /api/rewrite",
		"GET /api/health",
	}
	if h.features.AuditLog {
		endpoints = append(endpoints, "GET /api/requests/:request_id")
	}

	return c.JSON(fiber.Map{
		"message":   h.appName,
		"version":   "1.0.0",
		"endpoints": endpoints,
	})
}
