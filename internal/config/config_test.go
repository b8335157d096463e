package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig(zap.NewNop())

	if cfg.PoolCapacity() != defaultPoolCapacity {
		t.Errorf("expected capacity %d, got %d", defaultPoolCapacity, cfg.PoolCapacity())
	}
	if cfg.WindowNear() != defaultWindowNear || cfg.WindowFar() != defaultWindowFar {
		t.Errorf("unexpected window radii: near=%d far=%d", cfg.WindowNear(), cfg.WindowFar())
	}
	if cfg.RetryBase() != defaultRetryBase {
		t.Errorf("expected retry base %s, got %s", defaultRetryBase, cfg.RetryBase())
	}
	if cfg.RetryMaxAttempts() != defaultRetryMaxAttempts {
		t.Errorf("expected %d retry attempts, got %d", defaultRetryMaxAttempts, cfg.RetryMaxAttempts())
	}
}

func TestNewAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PLAYBACK_POOL_CAPACITY", "8")
	t.Setenv("PLAYBACK_WINDOW_FAR", "4")
	t.Setenv("PLAYBACK_RETRY_BASE", "250ms")
	t.Setenv("PLAYBACK_RETRY_FACTOR", "1.5")
	t.Setenv("PLAYBACK_METRICS_ADDR", "127.0.0.1:9000")

	cfg := NewAppConfig(zap.NewNop())

	if cfg.PoolCapacity() != 8 {
		t.Errorf("expected capacity 8, got %d", cfg.PoolCapacity())
	}
	if cfg.WindowFar() != 4 {
		t.Errorf("expected far=4, got %d", cfg.WindowFar())
	}
	if cfg.RetryBase() != 250*time.Millisecond {
		t.Errorf("expected 250ms retry base, got %s", cfg.RetryBase())
	}
	if cfg.RetryFactor() != 1.5 {
		t.Errorf("expected factor 1.5, got %f", cfg.RetryFactor())
	}
	if cfg.MetricsAddr() != "127.0.0.1:9000" {
		t.Errorf("unexpected metrics addr %s", cfg.MetricsAddr())
	}
}

func TestNewAppConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PLAYBACK_POOL_CAPACITY", "not-a-number")
	t.Setenv("PLAYBACK_RETRY_BASE", "soon")

	cfg := NewAppConfig(zap.NewNop())

	if cfg.PoolCapacity() != defaultPoolCapacity {
		t.Errorf("expected fallback capacity, got %d", cfg.PoolCapacity())
	}
	if cfg.RetryBase() != defaultRetryBase {
		t.Errorf("expected fallback retry base, got %s", cfg.RetryBase())
	}
}
