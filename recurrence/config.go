package recurrence

import (
	"io"
	"log/slog"
	"time"
)

// EngineConfig holds configuration options for the recurrence engine
type EngineConfig struct {
	// Cache configuration
	CacheEnabled bool
	CacheConfig  CacheConfig

	// Performance tuning
	MaxExpansionOccurrences int           // Maximum occurrences to check in HasOccurrenceInRange
	LargeRangeThreshold     time.Duration // Threshold for "large" time ranges that get limited expansion
	LargeRangeLimit         time.Duration // Limit for expansion when range exceeds threshold
}

// DefaultEngineConfig provides sensible defaults for production use
var DefaultEngineConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,

	MaxExpansionOccurrences: 100,
	LargeRangeThreshold:     90 * 24 * time.Hour,
	LargeRangeLimit:         90 * 24 * time.Hour,
}

// HighPerformanceConfig is optimized for high-traffic scenarios
var HighPerformanceConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             30 * time.Minute,
		MaxEntries:      5000,
		CleanupInterval: 10 * time.Minute,
	},

	MaxExpansionOccurrences: 50,
	LargeRangeThreshold:     30 * 24 * time.Hour,
	LargeRangeLimit:         30 * 24 * time.Hour,
}

// LowMemoryConfig is optimized for memory-constrained environments
var LowMemoryConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},

	MaxExpansionOccurrences: 200,
	LargeRangeThreshold:     180 * 24 * time.Hour,
	LargeRangeLimit:         180 * 24 * time.Hour,
}

// DisabledCacheConfig turns off caching entirely
var DisabledCacheConfig = EngineConfig{
	CacheEnabled: false,

	MaxExpansionOccurrences: 1000,
	LargeRangeThreshold:     365 * 24 * time.Hour,
	LargeRangeLimit:         365 * 24 * time.Hour,
}

// Option represents a configuration option for the Engine
type Option func(*Engine)

// WithLogger sets the logger for the engine
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngineWithConfig creates a new recurrence engine with custom configuration.
// Engines with a cache must be closed.
func NewEngineWithConfig(config EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		config: config,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if config.CacheEnabled {
		e.cache = NewRecurrenceCache(config.CacheConfig)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}
