package enumeration

import (
	"errors"

	"enumeration-report/core/logger"
	"enumeration-report/core/reconcile"
	"enumeration-report/core/search"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for enumeration reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the enumeration report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Post("/enumeration", h.HandleGenerate)
}

// HandleGenerate runs an enumeration report for the AOI in the request body.
// Body: {"aoi_id": "...", "aoi_index": "...", "date_pairs": "20210105-20210101, ..."}
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.AOIID == "" || req.AOIIndex == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "aoi_id and aoi_index are required"})
	}

	l.Info("Generating enumeration report", zap.String("aoi", req.AOIID))
	result, err := h.service.Generate(c.Context(), req)
	if err != nil {
		l.Error("Enumeration report failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, search.ErrAOINotFound):
		return fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrTrackNotFound):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
