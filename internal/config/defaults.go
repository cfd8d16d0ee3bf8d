package config

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogOutput = "stderr"
)

// Engine defaults.
const (
	DefaultEngineParallel  = 0
	DefaultFailOnViolation = true
)

// Cache defaults.
const (
	DefaultCacheEnabled   = true
	DefaultCacheDirectory = "/tmp/checkstyle-cache"
)

// LSP defaults.
const (
	DefaultLSPMaxDocuments = 128
)
