package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Tracking.validate(); err != nil {
		return fmt.Errorf("tracking: %w", err)
	}

	return nil
}

func (t *TrackingConfig) validate() error {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", t.Timezone, err)
	}
	t.Location = loc

	if t.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat_interval must be > 0 (got %v)", t.HeartbeatInterval)
	}
	if t.StalenessThreshold < t.HeartbeatInterval {
		return fmt.Errorf("staleness_threshold %v must be >= heartbeat_interval %v",
			t.StalenessThreshold, t.HeartbeatInterval)
	}
	if t.ReapInterval <= 0 {
		return fmt.Errorf("reap_interval must be > 0 (got %v)", t.ReapInterval)
	}
	if t.ReapBatchSize <= 0 {
		return fmt.Errorf("reap_batch_size must be > 0 (got %d)", t.ReapBatchSize)
	}
	if t.OverlapTolerance < 0 {
		return fmt.Errorf("overlap_tolerance must be >= 0 (got %v)", t.OverlapTolerance)
	}

	return nil
}
