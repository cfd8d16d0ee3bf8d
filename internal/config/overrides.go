package config

// positive constrains types eligible for skip-on-zero override application.
type positive interface {
	~int
}

// applyPositive sets *dst = value when value is positive.
// Zero values are skipped, keeping the loaded config value.
func applyPositive[T positive](dst *T, value T) {
	if value > 0 {
		*dst = value
	}
}

// applyNonEmpty sets *dst = value when value is non-empty.
func applyNonEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Overrides carries command-line values that take precedence over the
// config file. Zero values mean "flag not given" and are skipped;
// FailOnViolation is a pointer because false is a meaningful override.
type Overrides struct {
	FailOnViolation *bool
	LogLevel        string
	CacheDir        string
	Checks          []string
	Parallel        int
	NoCache         bool
}

// ApplyOverrides merges command-line overrides into the loaded config.
func (c *Config) ApplyOverrides(o Overrides) {
	if len(o.Checks) > 0 {
		c.Checks.Enabled = append([]string(nil), o.Checks...)
	}

	applyPositive(&c.Engine.Parallel, o.Parallel)
	applyNonEmpty(&c.Logging.Level, o.LogLevel)
	applyNonEmpty(&c.Cache.Directory, o.CacheDir)

	if o.NoCache {
		c.Cache.Enabled = false
	}

	if o.FailOnViolation != nil {
		c.Engine.FailOnViolation = *o.FailOnViolation
	}
}
