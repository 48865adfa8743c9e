package audit

import (
	"enumeration-report/feature/report"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new audit report feature.
func NewFeature(source report.Source, publisher *report.Publisher, cfg report.Config, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(source, publisher, cfg, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "audit"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
