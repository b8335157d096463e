// Package config loads the playback core tunables from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultPoolCapacity     = 3
	defaultWindowNear       = 1
	defaultWindowFar        = 2
	defaultRetryBase        = time.Second
	defaultRetryFactor      = 2.0
	defaultRetryMaxAttempts = 5
	defaultWarmupTimeout    = 15 * time.Second
	defaultMetricsAddr      = ":9877"
)

// AppConfig holds application configuration. It satisfies domain.Config.
type AppConfig struct {
	logger           *zap.Logger
	poolCapacity     int
	windowNear       int
	windowFar        int
	retryBase        time.Duration
	retryFactor      float64
	retryMaxAttempts int
	warmupTimeout    time.Duration
	metricsAddr      string
}

// NewAppConfig reads configuration from environment variables, falling back
// to defaults. A .env file in the working directory is loaded first if it
// exists (missing file is not an error).
func NewAppConfig(logger *zap.Logger) *AppConfig {
	_ = godotenv.Load()

	cfg := &AppConfig{
		logger:           logger,
		poolCapacity:     getEnvInt("PLAYBACK_POOL_CAPACITY", defaultPoolCapacity),
		windowNear:       getEnvInt("PLAYBACK_WINDOW_NEAR", defaultWindowNear),
		windowFar:        getEnvInt("PLAYBACK_WINDOW_FAR", defaultWindowFar),
		retryBase:        getEnvDuration("PLAYBACK_RETRY_BASE", defaultRetryBase),
		retryFactor:      getEnvFloat("PLAYBACK_RETRY_FACTOR", defaultRetryFactor),
		retryMaxAttempts: getEnvInt("PLAYBACK_RETRY_MAX_ATTEMPTS", defaultRetryMaxAttempts),
		warmupTimeout:    getEnvDuration("PLAYBACK_WARMUP_TIMEOUT", defaultWarmupTimeout),
		metricsAddr:      getEnv("PLAYBACK_METRICS_ADDR", defaultMetricsAddr),
	}

	logger.Info("Configuration loaded",
		zap.Int("poolCapacity", cfg.poolCapacity),
		zap.Int("windowNear", cfg.windowNear),
		zap.Int("windowFar", cfg.windowFar),
		zap.Duration("retryBase", cfg.retryBase),
		zap.Float64("retryFactor", cfg.retryFactor),
		zap.Int("retryMaxAttempts", cfg.retryMaxAttempts),
		zap.Duration("warmupTimeout", cfg.warmupTimeout),
		zap.String("metricsAddr", cfg.metricsAddr))

	return cfg
}

// PoolCapacity returns the hard ceiling on concurrently live decoders.
func (c *AppConfig) PoolCapacity() int { return c.poolCapacity }

// WindowNear returns the eager band radius.
func (c *AppConfig) WindowNear() int { return c.windowNear }

// WindowFar returns the priority window radius.
func (c *AppConfig) WindowFar() int { return c.windowFar }

// RetryBase returns the initial retry delay for Failed identifiers.
func (c *AppConfig) RetryBase() time.Duration { return c.retryBase }

// RetryFactor returns the backoff multiplier.
func (c *AppConfig) RetryFactor() float64 { return c.retryFactor }

// RetryMaxAttempts returns the automatic retry cap.
func (c *AppConfig) RetryMaxAttempts() int { return c.retryMaxAttempts }

// WarmupTimeout returns the hard deadline for one warm-up task.
func (c *AppConfig) WarmupTimeout() time.Duration { return c.warmupTimeout }

// MetricsAddr returns the listen address for the metrics endpoint.
func (c *AppConfig) MetricsAddr() string { return c.metricsAddr }

// getEnv returns the value of the environment variable named by key, or
// fallback if the variable is unset or empty.
func getEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// getEnvInt returns the integer value of the environment variable named by
// key, or fallback if unset, empty, or not a valid integer.
func getEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvFloat returns the float value of the environment variable named by
// key, or fallback.
func getEnvFloat(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration returns the duration value ("1s", "500ms") of the
// environment variable named by key, or fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return fallback
}
