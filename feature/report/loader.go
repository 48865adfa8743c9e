package report

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface for the run ledger.
type Feature struct {
	ledger  *Ledger
	handler *Handler
}

// NewFeature creates the run ledger feature. A nil ledger disables it.
func NewFeature(ledger *Ledger, logger *zap.Logger) *Feature {
	return &Feature{ledger: ledger, handler: NewHandler(ledger, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "runs"
}

// IsEnabled reports whether a ledger database is available.
func (f *Feature) IsEnabled() bool {
	return f.ledger != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
