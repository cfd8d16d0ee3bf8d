package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ningg/checkstyle/pkg/engine"
)

// jsonIndent is the indentation for JSON reports.
const jsonIndent = "  "

// JSON renders results as a stable machine-readable report.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonViolation struct {
	Key     string `json:"key"`
	Message string `json:"message"`
	Check   string `json:"check"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
}

type jsonFile struct {
	Path       string          `json:"path"`
	Violations []jsonViolation `json:"violations"`
	Skipped    bool            `json:"skipped,omitempty"`
}

type jsonFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type jsonStats struct {
	Files        int   `json:"files"`
	FilesFailed  int   `json:"files_failed"`
	FilesSkipped int   `json:"files_skipped"`
	Violations   int   `json:"violations"`
	CacheHits    int   `json:"cache_hits"`
	BytesScanned int64 `json:"bytes_scanned"`
	DurationMS   int64 `json:"duration_ms"`
}

type jsonReport struct {
	Files    []jsonFile    `json:"files"`
	Failures []jsonFailure `json:"failures,omitempty"`
	Stats    jsonStats     `json:"stats"`
}

// Render implements Renderer.
func (j *JSON) Render(w io.Writer, result *engine.Result) error {
	report := jsonReport{
		Files: make([]jsonFile, 0, len(result.Files)),
		Stats: jsonStats{
			Files:        result.Stats.Files,
			FilesFailed:  result.Stats.FilesFailed,
			FilesSkipped: result.Stats.FilesSkipped,
			Violations:   result.Stats.Violations,
			CacheHits:    result.Stats.CacheHits,
			BytesScanned: result.Stats.BytesScanned,
			DurationMS:   result.Stats.Duration.Milliseconds(),
		},
	}

	for _, file := range result.Files {
		entry := jsonFile{
			Path:       file.Path,
			Violations: make([]jsonViolation, 0, len(file.Violations)),
			Skipped:    file.Skipped,
		}

		for _, violation := range file.Violations {
			entry.Violations = append(entry.Violations, jsonViolation{
				Key:     violation.Key,
				Message: violation.Message(),
				Check:   violation.Check,
				Line:    violation.Pos.Line,
				Col:     violation.Pos.Col,
			})
		}

		report.Files = append(report.Files, entry)
	}

	for _, failure := range result.Failures {
		report.Failures = append(report.Failures, jsonFailure{
			Path:   failure.Path,
			Reason: failure.Reason,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", jsonIndent)

	err := encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
