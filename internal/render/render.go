// Package render turns engine results into the output formats the CLI
// offers: colored text for terminals, stable JSON for tooling, and an
// HTML report with charts.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/ningg/checkstyle/pkg/engine"
)

// Output format names accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ErrUnknownFormat indicates an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes an engine result to a writer in one format.
type Renderer interface {
	Render(w io.Writer, result *engine.Result) error
}

// New returns the renderer for the given format name.
func New(format string) (Renderer, error) {
	switch format {
	case FormatText:
		return NewText(), nil
	case FormatJSON:
		return NewJSON(), nil
	case FormatHTML:
		return NewHTML(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
