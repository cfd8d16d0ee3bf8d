package render

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ningg/checkstyle/pkg/engine"
)

// Text renders results as compiler-style lines followed by a summary
// table. Coloring honors the package-global color.NoColor switch.
type Text struct{}

// NewText creates a text renderer.
func NewText() *Text {
	return &Text{}
}

// Render implements Renderer.
func (t *Text) Render(w io.Writer, result *engine.Result) error {
	violationColor := color.New(color.FgRed)
	failureColor := color.New(color.FgYellow)

	for _, file := range result.Files {
		for _, violation := range file.Violations {
			violationColor.Fprintf(w, "%s:%s: ", file.Path, violation.Pos)
			fmt.Fprintf(w, "%s [%s]\n", violation.Message(), violation.Check)
		}
	}

	for _, failure := range result.Failures {
		failureColor.Fprintf(w, "%s: %s\n", failure.Path, failure.Reason)
	}

	if result.Stats.Violations > 0 || result.Stats.FilesFailed > 0 {
		fmt.Fprintln(w)
	}

	t.renderSummary(w, result.Stats)

	return nil
}

func (t *Text) renderSummary(w io.Writer, stats engine.Stats) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendRow(table.Row{"Files checked", humanize.Comma(int64(stats.Files))})
	tbl.AppendRow(table.Row{"Violations", humanize.Comma(int64(stats.Violations))})

	if stats.FilesFailed > 0 {
		tbl.AppendRow(table.Row{"Failures", humanize.Comma(int64(stats.FilesFailed))})
	}

	if stats.FilesSkipped > 0 {
		tbl.AppendRow(table.Row{"Skipped", humanize.Comma(int64(stats.FilesSkipped))})
	}

	if stats.CacheHits > 0 {
		tbl.AppendRow(table.Row{"Cache hits", humanize.Comma(int64(stats.CacheHits))})
	}

	tbl.AppendRow(table.Row{"Scanned", humanize.Bytes(uint64(stats.BytesScanned))})
	tbl.AppendRow(table.Row{"Duration", stats.Duration.Round(time.Millisecond).String()})

	tbl.Render()
}
