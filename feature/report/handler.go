package report

import (
	"enumeration-report/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the run ledger over HTTP.
type Handler struct {
	ledger *Ledger
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(ledger *Ledger, logger *zap.Logger) *Handler {
	return &Handler{ledger: ledger, logger: logger}
}

// RegisterRoutes registers the run ledger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Get("/runs", h.HandleListRuns)
}

// HandleListRuns returns the most recent published products.
// Query parameters: aoi (optional filter) and limit (default 20).
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	runs, err := h.ledger.Recent(c.Context(), c.Query("aoi"), c.QueryInt("limit", 20))
	if err != nil {
		l.Error("Listing runs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(runs)
}
