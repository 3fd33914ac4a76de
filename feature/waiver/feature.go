package waiver

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the waiver feature. db may be nil when no student
// database is configured; the upload endpoints still work without it.
func NewFeature(logger *zap.Logger, cfg Config, db *gorm.DB) *Feature {
	svc := NewService(logger, cfg)

	var store *StudentStore
	if db != nil {
		store = NewStudentStore(db)
	}

	h := NewHandler(svc, store, logger)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "waiver"
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
