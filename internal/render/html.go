package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ningg/checkstyle/pkg/engine"
)

// echartsScript is the script tag for the charting runtime, served from
// the go-echarts asset host the chart fragments expect.
const echartsScript = `<script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>`

// maxChartFiles caps the files shown in the per-file chart.
const maxChartFiles = 20

// Chart dimensions.
const (
	chartWidth  = "100%"
	chartHeight = "420px"
)

// HTML renders results as a self-contained report page with charts.
type HTML struct{}

// NewHTML creates an HTML renderer.
func NewHTML() *HTML {
	return &HTML{}
}

type htmlRow struct {
	Path    string
	Pos     string
	Message string
	Check   string
}

type htmlData struct {
	Summary string
	Charts  []template.HTML
	Rows    []htmlRow
}

//nolint:lll // markup reads better unwrapped.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Checkstyle report</title>
` + echartsScript + `
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #24292f; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #d0d7de; font-size: 0.85rem; }
th { background: #f6f8fa; }
td.pos { white-space: nowrap; color: #57606a; }
</style>
</head>
<body>
<h1>Checkstyle report</h1>
<p>{{.Summary}}</p>
{{range .Charts}}{{.}}{{end}}
{{if .Rows}}
<table>
<tr><th>File</th><th>Position</th><th>Message</th><th>Check</th></tr>
{{range .Rows}}<tr><td>{{.Path}}</td><td class="pos">{{.Pos}}</td><td>{{.Message}}</td><td>{{.Check}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`

// Render implements Renderer.
func (h *HTML) Render(w io.Writer, result *engine.Result) error {
	data := htmlData{
		Summary: fmt.Sprintf("%d files checked, %d violations, %d failures.",
			result.Stats.Files, result.Stats.Violations, result.Stats.FilesFailed),
	}

	checkLabels, checkCounts := countByCheck(result)
	if len(checkLabels) > 0 {
		fragment, err := chartFragment(barChart("Violations by check", checkLabels, checkCounts))
		if err != nil {
			return err
		}

		data.Charts = append(data.Charts, fragment)
	}

	fileLabels, fileCounts := countByFile(result)
	if len(fileLabels) > 0 {
		fragment, err := chartFragment(barChart("Most affected files", fileLabels, fileCounts))
		if err != nil {
			return err
		}

		data.Charts = append(data.Charts, fragment)
	}

	for _, file := range result.Files {
		for _, violation := range file.Violations {
			data.Rows = append(data.Rows, htmlRow{
				Path:    file.Path,
				Pos:     violation.Pos.String(),
				Message: violation.Message(),
				Check:   violation.Check,
			})
		}
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	execErr := tmpl.Execute(w, data)
	if execErr != nil {
		return fmt.Errorf("render report: %w", execErr)
	}

	return nil
}

// barChart builds a bar chart with the shared options.
func barChart(title string, labels []string, counts []int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithGridOpts(opts.Grid{ContainLabel: opts.Bool(true)}),
	)

	barData := make([]opts.BarData, len(counts))
	for i, count := range counts {
		barData[i] = opts.BarData{Value: count}
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Violations", barData)

	return bar
}

// chartFragment renders a chart and extracts the embeddable fragment
// from the full page go-echarts emits.
func chartFragment(chart *charts.Bar) (template.HTML, error) {
	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}

	//nolint:gosec // the fragment is produced by go-echarts, not user input.
	return template.HTML(extractChartContent(buf.String())), nil
}

// extractChartContent pulls the chart container and script out of a
// full echarts HTML page.
func extractChartContent(html string) string {
	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	return html[start:end]
}

// countByCheck aggregates violations per check, ordered by count.
func countByCheck(result *engine.Result) ([]string, []int) {
	counts := make(map[string]int)

	for _, file := range result.Files {
		for _, violation := range file.Violations {
			counts[violation.Check]++
		}
	}

	return sortedCounts(counts, len(counts))
}

// countByFile aggregates violations per file, capped to the most
// affected ones.
func countByFile(result *engine.Result) ([]string, []int) {
	counts := make(map[string]int)

	for _, file := range result.Files {
		if len(file.Violations) > 0 {
			counts[file.Path] = len(file.Violations)
		}
	}

	return sortedCounts(counts, maxChartFiles)
}

// sortedCounts orders a count map by descending count, then by label,
// truncated to limit entries.
func sortedCounts(counts map[string]int, limit int) ([]string, []int) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}

	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}

		return labels[i] < labels[j]
	})

	if len(labels) > limit {
		labels = labels[:limit]
	}

	values := make([]int, len(labels))
	for i, label := range labels {
		values[i] = counts[label]
	}

	return labels, values
}
