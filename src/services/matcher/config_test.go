package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 50, cfg.MinCaptureQuality)
	assert.Equal(t, 45.0, cfg.VerifyThreshold)
	assert.Equal(t, 80.0, cfg.DuplicateThreshold)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestDuplicateThresholdStrictlyAboveVerify(t *testing.T) {
	t.Setenv("VERIFY_THRESHOLD", "70")
	t.Setenv("DUPLICATE_THRESHOLD", "60")

	cfg := LoadConfig()

	// enrollment must be harder to match than verification
	assert.Greater(t, cfg.DuplicateThreshold, cfg.VerifyThreshold)
}
