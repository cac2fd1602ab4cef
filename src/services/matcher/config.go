package matcher

import (
	"os"
	"strconv"
	"time"
)

// Config carries the engine thresholds. The historical sources disagreed on
// the exact values, so all of them are env-overridable.
type Config struct {
	MinCaptureQuality  int
	VerifyThreshold    float64
	DuplicateThreshold float64
	CacheTTL           time.Duration
	Timeout            time.Duration
}

// LoadConfig reads thresholds from the environment with production defaults.
// The duplicate threshold must stay strictly above the verify threshold:
// verification favors recall, enrollment favors precision.
func LoadConfig() Config {
	cfg := Config{
		MinCaptureQuality:  50,
		VerifyThreshold:    45,
		DuplicateThreshold: 80,
		CacheTTL:           5 * time.Minute,
		Timeout:            30 * time.Second,
	}

	if v, err := strconv.Atoi(os.Getenv("MIN_CAPTURE_QUALITY")); err == nil {
		cfg.MinCaptureQuality = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("VERIFY_THRESHOLD"), 64); err == nil {
		cfg.VerifyThreshold = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("DUPLICATE_THRESHOLD"), 64); err == nil {
		cfg.DuplicateThreshold = v
	}
	if v, err := time.ParseDuration(os.Getenv("POPULATION_CACHE_TTL")); err == nil {
		cfg.CacheTTL = v
	}
	if v, err := time.ParseDuration(os.Getenv("MATCHER_TIMEOUT")); err == nil {
		cfg.Timeout = v
	}
	if cfg.DuplicateThreshold <= cfg.VerifyThreshold {
		cfg.DuplicateThreshold = cfg.VerifyThreshold + 1
	}
	return cfg
}
