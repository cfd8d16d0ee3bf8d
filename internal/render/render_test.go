package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/engine"
	"github.com/ningg/checkstyle/pkg/javast"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Files: []engine.FileResult{
			{
				Path: "src/Clean.java",
			},
			{
				Path: "src/Person.java",
				Violations: []checks.Violation{
					{
						Pos:   javast.Position{Line: 2, Col: 5},
						Key:   "class.implied.modifier",
						Args:  []any{"static"},
						Check: "ClassMemberImpliedModifier",
					},
					{
						Pos:   javast.Position{Line: 4, Col: 12},
						Key:   "mod.order",
						Args:  []any{"public"},
						Check: "ModifierOrder",
					},
				},
			},
		},
		Failures: []engine.FileFailure{
			{Path: "src/Broken.java", Reason: "syntax error at 1:1"},
		},
		Stats: engine.Stats{
			Files:        2,
			FilesFailed:  1,
			Violations:   2,
			BytesScanned: 128,
			Duration:     42 * time.Millisecond,
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []string{FormatText, FormatJSON, FormatHTML} {
		renderer, err := New(format)
		require.NoError(t, err, format)
		assert.NotNil(t, renderer, format)
	}

	_, err := New("yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTextRender(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer

	require.NoError(t, NewText().Render(&buf, sampleResult()))

	out := buf.String()

	assert.Contains(t, out, "src/Person.java:2:5: Implied modifier 'static' should be explicit. [ClassMemberImpliedModifier]")
	assert.Contains(t, out, "src/Person.java:4:12: 'public' modifier out of order with the JLS suggestions. [ModifierOrder]")
	assert.Contains(t, out, "src/Broken.java: syntax error at 1:1")
	assert.Contains(t, out, "Files checked")
	assert.Contains(t, out, "Violations")
	assert.Contains(t, out, "42ms")

	// Violations come before the summary.
	assert.Less(t, strings.Index(out, "Person.java"), strings.Index(out, "Files checked"))
}

func TestTextRenderCleanResult(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer

	result := &engine.Result{Stats: engine.Stats{Files: 3}}
	require.NoError(t, NewText().Render(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "Files checked")
	assert.NotContains(t, out, ".java:")
}

func TestJSONRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewJSON().Render(&buf, sampleResult()))

	var report struct {
		Files []struct {
			Path       string `json:"path"`
			Violations []struct {
				Key     string `json:"key"`
				Message string `json:"message"`
				Check   string `json:"check"`
				Line    int    `json:"line"`
				Col     int    `json:"col"`
			} `json:"violations"`
		} `json:"files"`
		Failures []struct {
			Path   string `json:"path"`
			Reason string `json:"reason"`
		} `json:"failures"`
		Stats struct {
			Files      int   `json:"files"`
			Violations int   `json:"violations"`
			DurationMS int64 `json:"duration_ms"`
		} `json:"stats"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	require.Len(t, report.Files, 2)
	assert.Equal(t, "src/Clean.java", report.Files[0].Path)
	assert.Empty(t, report.Files[0].Violations)

	require.Len(t, report.Files[1].Violations, 2)
	first := report.Files[1].Violations[0]
	assert.Equal(t, "class.implied.modifier", first.Key)
	assert.Equal(t, "Implied modifier 'static' should be explicit.", first.Message)
	assert.Equal(t, "ClassMemberImpliedModifier", first.Check)
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 5, first.Col)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "src/Broken.java", report.Failures[0].Path)

	assert.Equal(t, 2, report.Stats.Files)
	assert.Equal(t, 2, report.Stats.Violations)
	assert.Equal(t, int64(42), report.Stats.DurationMS)
}

func TestHTMLRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewHTML().Render(&buf, sampleResult()))

	out := buf.String()

	assert.Contains(t, out, "<title>Checkstyle report</title>")
	assert.Contains(t, out, "echarts.min.js")
	assert.Contains(t, out, "2 files checked, 2 violations, 1 failures.")
	assert.Contains(t, out, "Implied modifier &#39;static&#39; should be explicit.")
	assert.Contains(t, out, "ClassMemberImpliedModifier")
}

func TestHTMLRenderNoViolations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	result := &engine.Result{Stats: engine.Stats{Files: 1}}
	require.NoError(t, NewHTML().Render(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "1 files checked, 0 violations, 0 failures.")
	assert.NotContains(t, out, "<table>")
}

func TestExtractChartContent(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html><html><head></head><body><div class="container"><div class="item"></div></body></html>`

	fragment := extractChartContent(page)
	assert.Equal(t, `<div class="container"><div class="item"></div>`, fragment)

	// Fragments without the page scaffold pass through unchanged.
	assert.Equal(t, "<div></div>", extractChartContent("<div></div>"))
}

func TestSortedCounts(t *testing.T) {
	t.Parallel()

	counts := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}

	labels, values := sortedCounts(counts, 3)

	assert.Equal(t, []string{"c", "a", "b"}, labels)
	assert.Equal(t, []int{5, 2, 2}, values)
}
