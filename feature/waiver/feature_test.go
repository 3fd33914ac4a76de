package waiver

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFeatureLoader(t *testing.T) {
	feature := NewFeature(zap.NewNop(), Config{}, nil)

	assert.Equal(t, "waiver", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
