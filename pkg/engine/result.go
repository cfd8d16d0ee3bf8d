package engine

import (
	"time"

	"github.com/ningg/checkstyle/pkg/checks"
)

// FileResult holds the violations found in one file.
type FileResult struct {
	Path       string
	Violations []checks.Violation
	// Skipped marks files excluded from checking, such as generated code.
	Skipped bool

	cacheHits int
	bytes     int64
}

// FileFailure records a file the run could not check.
type FileFailure struct {
	Path   string
	Reason string
}

// Stats aggregates run counters.
type Stats struct {
	Files        int
	FilesFailed  int
	FilesSkipped int
	Violations   int
	CacheHits    int
	BytesScanned int64
	Duration     time.Duration
}

// Result is the outcome of one engine run, ordered by file path.
type Result struct {
	Files    []FileResult
	Failures []FileFailure
	Stats    Stats
}

// HasViolations reports whether any file produced violations.
func (r *Result) HasViolations() bool {
	return r.Stats.Violations > 0
}
