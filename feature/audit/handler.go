package audit

import (
	"errors"

	"enumeration-report/core/logger"
	"enumeration-report/core/reconcile"
	"enumeration-report/core/search"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for audit reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Post("/audit", h.HandleGenerate)
}

// HandleGenerate runs an audit report for the AOI in the request body.
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.AOIID == "" || req.AOIIndex == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "aoi_id and aoi_index are required"})
	}

	l.Info("Generating audit report", zap.String("aoi", req.AOIID))
	result, err := h.service.Generate(c.Context(), req)
	if err != nil {
		l.Error("Audit report failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, search.ErrAOINotFound) {
			status = fiber.StatusNotFound
		} else if errors.Is(err, reconcile.ErrTrackNotFound) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
