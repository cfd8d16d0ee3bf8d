// Package config provides YAML-based configuration for checkstyle.
package config

import "errors"

// Config is the top-level configuration struct for checkstyle.
// Field tags use mapstructure for viper unmarshalling; the checks
// section additionally carries yaml tags because it is decoded
// case-preserving (see loader.go).
type Config struct {
	Logging       LoggingConfig       `mapstructure:"logging"`
	Engine        EngineConfig        `mapstructure:"engine"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Checks        ChecksConfig        `mapstructure:"checks"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	LSP           LSPConfig           `mapstructure:"lsp"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// EngineConfig holds engine resource knobs.
type EngineConfig struct {
	// Parallel caps concurrent file checks. Zero means one per CPU.
	Parallel        int  `mapstructure:"parallel"`
	FailOnViolation bool `mapstructure:"fail_on_violation"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Directory string `mapstructure:"directory"`
	Enabled   bool   `mapstructure:"enabled"`
}

// ChecksConfig selects and configures the checks to run.
//
// Property names inside Properties are case-sensitive, so this section
// is decoded with yaml.v3 rather than viper (which folds keys to lower
// case).
type ChecksConfig struct {
	Enabled    []string                  `mapstructure:"enabled"    yaml:"enabled"`
	Properties map[string]map[string]any `mapstructure:"properties" yaml:"properties"`
	Kinds      map[string][]string       `mapstructure:"kinds"      yaml:"kinds"`
}

// ObservabilityConfig holds telemetry export settings. Empty endpoints
// disable the corresponding exporter.
type ObservabilityConfig struct {
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

// LSPConfig holds language server settings.
type LSPConfig struct {
	MaxDocuments int `mapstructure:"max_documents"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidLogLevel indicates an unknown logging level.
	ErrInvalidLogLevel = errors.New("logging.level must be one of debug, info, warn, error")
	// ErrInvalidLogFormat indicates an unknown logging format.
	ErrInvalidLogFormat = errors.New("logging.format must be json or text")
	// ErrInvalidParallel indicates a negative parallelism value.
	ErrInvalidParallel = errors.New("engine.parallel must be non-negative")
	// ErrInvalidCacheDir indicates the cache is enabled without a directory.
	ErrInvalidCacheDir = errors.New("cache.directory must be set when cache.enabled is true")
	// ErrInvalidMaxDocuments indicates a negative LSP document budget.
	ErrInvalidMaxDocuments = errors.New("lsp.max_documents must be non-negative")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return ErrInvalidLogFormat
	}

	if c.Engine.Parallel < 0 {
		return ErrInvalidParallel
	}

	if c.Cache.Enabled && c.Cache.Directory == "" {
		return ErrInvalidCacheDir
	}

	if c.LSP.MaxDocuments < 0 {
		return ErrInvalidMaxDocuments
	}

	return nil
}
